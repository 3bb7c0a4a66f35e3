package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/predictaball/datacore/internal/domain/stat"
	qb "github.com/predictaball/datacore/internal/platform/querybuilder"
)

type StatRepository struct {
	db *sqlx.DB
}

func NewStatRepository(db *sqlx.DB) *StatRepository {
	return &StatRepository{db: db}
}

func (r *StatRepository) GetByKey(ctx context.Context, matchID, teamID int64, statType, period string) (stat.Stat, bool, error) {
	query, args, err := qb.Select("*").From("stats").
		Where(
			qb.Eq("match_id", matchID),
			qb.Expr("COALESCE(team_id, 0) = ?", teamID),
			qb.Eq("stat_type", statType),
			qb.Expr("COALESCE(period, '') = ?", period),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return stat.Stat{}, false, fmt.Errorf("build select stat query: %w", err)
	}

	var row statTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return stat.Stat{}, false, nil
		}
		return stat.Stat{}, false, fmt.Errorf("select stat by key: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *StatRepository) Insert(ctx context.Context, item stat.Stat) (int64, error) {
	model := statInsertModel{
		MatchID:  item.MatchID,
		TeamID:   nullInt64(item.TeamID),
		StatType: item.StatType,
		Value:    item.Value,
		Period:   nullString(item.Period),
		Source:   nullString(item.Source),
	}

	query, args, err := qb.InsertModel("stats", model, "RETURNING id")
	if err != nil {
		return 0, fmt.Errorf("build insert stat query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert stat: %w", err)
	}
	return id, nil
}

func (r *StatRepository) UpdateValue(ctx context.Context, id int64, value string) error {
	query, args, err := qb.Update("stats").
		Set("stat_value", value).
		Set("updated_at", time.Now().UTC()).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update stat query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update stat id=%d: %w", id, err)
	}
	return nil
}
