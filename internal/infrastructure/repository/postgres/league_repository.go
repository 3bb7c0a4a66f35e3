package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/predictaball/datacore/internal/domain/league"
	qb "github.com/predictaball/datacore/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) GetByIdentity(ctx context.Context, name, sport string) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(
			qb.Eq("name", name),
			qb.Eq("sport", sport),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build select league query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("select league by identity: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *LeagueRepository) Insert(ctx context.Context, item league.League) (int64, error) {
	model := leagueInsertModel{
		Name:           item.Name,
		Sport:          item.Sport,
		Country:        nullString(item.Country),
		Source:         nullString(item.Source),
		SourceLeagueID: nullString(item.SourceLeagueID),
	}

	query, args, err := qb.InsertModel("leagues", model, "RETURNING id")
	if err != nil {
		return 0, fmt.Errorf("build insert league query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		if isUniqueViolation(err) {
			return 0, league.ErrDuplicateIdentity
		}
		return 0, fmt.Errorf("insert league: %w", err)
	}

	return id, nil
}

func (r *LeagueRepository) UpdateSourceRef(ctx context.Context, id int64, sourceLeagueID string) error {
	query, args, err := qb.Update("leagues").
		Set("source_league_id", nullString(sourceLeagueID)).
		Set("updated_at", time.Now().UTC()).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update league source ref query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update league source ref id=%d: %w", id, err)
	}

	return nil
}
