package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	crerr "github.com/cockroachdb/errors"

	"github.com/predictaball/datacore/internal/adapter/fivethirtyeight"
	"github.com/predictaball/datacore/internal/adapter/footballdata"
	"github.com/predictaball/datacore/internal/adapter/kaggle"
	"github.com/predictaball/datacore/internal/adapter/openfootball"
	"github.com/predictaball/datacore/internal/adapter/soccerdata"
	"github.com/predictaball/datacore/internal/adapter/thesportsdb"
	"github.com/predictaball/datacore/internal/app"
	"github.com/predictaball/datacore/internal/config"
	"github.com/predictaball/datacore/internal/domain/ingest"
	"github.com/predictaball/datacore/internal/platform/logging"
)

// sourceDirs maps data subdirectories to their adapter, in ingestion order.
// Entity seeds run first so match batches resolve against seeded leagues.
var sourceDirs = []string{
	"openfootball",
	"thesportsdb",
	"thesportsdb-events",
	"kaggle",
	"footballdata",
	"soccerdata",
	"fivethirtyeight",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	db, err := app.OpenDB(cfg)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	services := app.NewServices(cfg, db, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, services, logger); err != nil {
		logger.Error("ingestion run failed", "error", err)
		os.Exit(1)
	}
}

// run walks the data directory one source at a time. A failed file or batch
// is logged and skipped; only a missing data directory aborts the run.
func run(ctx context.Context, cfg config.Config, services *app.Services, logger *logging.Logger) error {
	if _, err := os.Stat(cfg.DataDir); err != nil {
		return crerr.Wrap(err, "data directory")
	}

	for _, dir := range sourceDirs {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		files, err := listFiles(filepath.Join(cfg.DataDir, dir))
		if err != nil {
			logger.Warn("skipping source directory", "dir", dir, "error", err)
			continue
		}

		for _, path := range files {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err := ingestFile(ctx, dir, path, services, logger); err != nil {
				logger.Error("file ingestion failed", "dir", dir, "file", path, "error", err)
			}
		}
	}

	return nil
}

func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func ingestFile(ctx context.Context, dir, path string, services *app.Services, logger *logging.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return crerr.Wrap(err, "open data file")
	}
	defer func() { _ = f.Close() }()

	switch dir {
	case "openfootball":
		repo := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		seed, err := openfootball.Parse(f, repo)
		if err != nil {
			return crerr.Wrap(err, "parse club list")
		}
		return seedEntities(ctx, []ingest.EntitySeed{seed}, services, logger)
	case "thesportsdb":
		seeds, err := thesportsdb.Parse(f)
		if err != nil {
			return crerr.Wrap(err, "parse team search")
		}
		return seedEntities(ctx, seeds, services, logger)
	case "thesportsdb-events":
		records, err := thesportsdb.ParseEvents(f)
		if err != nil {
			return crerr.Wrap(err, "parse events payload")
		}
		return runBatch(ctx, thesportsdb.Source, records, services, logger)
	case "kaggle":
		records, err := kaggle.Parse(f)
		if err != nil {
			return crerr.Wrap(err, "parse results csv")
		}
		return runBatch(ctx, kaggle.Source, records, services, logger)
	case "footballdata":
		records, err := footballdata.Parse(f)
		if err != nil {
			return crerr.Wrap(err, "parse matches payload")
		}
		return runBatch(ctx, footballdata.Source, records, services, logger)
	case "soccerdata":
		records, err := soccerdata.Parse(f)
		if err != nil {
			return crerr.Wrap(err, "parse season csv")
		}
		return runBatch(ctx, soccerdata.Source, records, services, logger)
	case "fivethirtyeight":
		records, err := fivethirtyeight.Parse(f)
		if err != nil {
			return crerr.Wrap(err, "parse spi csv")
		}
		return runBatch(ctx, fivethirtyeight.Source, records, services, logger)
	default:
		return fmt.Errorf("unknown source directory %q", dir)
	}
}

func seedEntities(ctx context.Context, seeds []ingest.EntitySeed, services *app.Services, logger *logging.Logger) error {
	for _, seed := range seeds {
		resolved, err := services.Ingestion.SeedEntities(ctx, seed)
		if err != nil {
			logger.Error("seed batch failed", "league", seed.LeagueName, "source", seed.Source, "error", err)
			continue
		}
		fmt.Printf("%s: seeded %d entities for %s\n", seed.Source, resolved, seed.LeagueName)
	}
	return nil
}

func runBatch(ctx context.Context, source string, records []ingest.Record, services *app.Services, logger *logging.Logger) error {
	summary, err := services.Ingestion.RunBatch(ctx, source, records)
	if err != nil {
		return crerr.Wrapf(err, "batch for %s", source)
	}

	fmt.Printf("%s: matches inserted=%d updated=%d skipped=%d odds inserted=%d updated=%d skipped=%d stats inserted=%d updated=%d skipped=%d failed=%d\n",
		source,
		summary.Matches.Inserted, summary.Matches.Updated, summary.Matches.Skipped,
		summary.Odds.Inserted, summary.Odds.Updated, summary.Odds.Skipped,
		summary.Stats.Inserted, summary.Stats.Updated, summary.Stats.Skipped,
		summary.Failed,
	)
	return nil
}
