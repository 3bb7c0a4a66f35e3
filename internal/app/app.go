package app

import (
	"fmt"
	"net/http"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/predictaball/datacore/internal/config"
	"github.com/predictaball/datacore/internal/infrastructure/repository/postgres"
	"github.com/predictaball/datacore/internal/interfaces/httpapi"
	"github.com/predictaball/datacore/internal/platform/logging"
	"github.com/predictaball/datacore/internal/usecase"
)

// Services bundles the wired use-case layer for the binaries.
type Services struct {
	Resolver  *usecase.ResolverService
	Ingestion *usecase.IngestionService
	Form      *usecase.FormService
	Features  *usecase.FeatureService
}

// OpenDB connects to Postgres with query tracing enabled.
func OpenDB(cfg config.Config) (*sqlx.DB, error) {
	opts := []otelsql.Option{
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
	}
	if name := dbNameFromURL(cfg.DBURL); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Connect("postgres", cfg.DBURL, opts...)
	if err != nil {
		return nil, crerr.Wrap(err, "connect postgres")
	}

	return db, nil
}

func NewServices(cfg config.Config, db *sqlx.DB, logger *logging.Logger) *Services {
	if logger == nil {
		logger = logging.Default()
	}

	leagueRepo := postgres.NewLeagueRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	oddsRepo := postgres.NewOddsRepository(db)
	statRepo := postgres.NewStatRepository(db)

	resolver := usecase.NewResolverService(leagueRepo, teamRepo, logger)
	ingestion := usecase.NewIngestionService(
		resolver,
		matchRepo,
		oddsRepo,
		statRepo,
		cfg.DefaultSport,
		cfg.MarkMockData,
		logger,
	)
	form := usecase.NewFormService(cfg.FormWindowSize)
	features := usecase.NewFeatureService(matchRepo, form, cfg.FeatureWorkers, logger)

	return &Services{
		Resolver:  resolver,
		Ingestion: ingestion,
		Form:      form,
		Features:  features,
	}
}

func NewHTTPServer(cfg config.Config, services *Services, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	handler := httpapi.NewHandler(services.Features, logger)
	router := httpapi.NewRouter(handler, logger)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
