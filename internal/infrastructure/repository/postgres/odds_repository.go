package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/predictaball/datacore/internal/domain/odds"
	qb "github.com/predictaball/datacore/internal/platform/querybuilder"
)

type OddsRepository struct {
	db *sqlx.DB
}

func NewOddsRepository(db *sqlx.DB) *OddsRepository {
	return &OddsRepository{db: db}
}

func (r *OddsRepository) GetByKey(ctx context.Context, matchID int64, bookmaker, marketType string) (odds.Odds, bool, error) {
	query, args, err := qb.Select("*").From("odds").
		Where(
			qb.Eq("match_id", matchID),
			qb.Eq("bookmaker", bookmaker),
			qb.Eq("market_type", marketType),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return odds.Odds{}, false, fmt.Errorf("build select odds query: %w", err)
	}

	var row oddsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return odds.Odds{}, false, nil
		}
		return odds.Odds{}, false, fmt.Errorf("select odds by key: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *OddsRepository) Insert(ctx context.Context, item odds.Odds) (int64, error) {
	model := oddsInsertModel{
		MatchID:    item.MatchID,
		Bookmaker:  item.Bookmaker,
		MarketType: item.MarketType,
		HomeOdds:   item.HomeOdds,
		DrawOdds:   item.DrawOdds,
		AwayOdds:   item.AwayOdds,
		ObservedAt: item.ObservedAt.UTC(),
		Source:     nullString(item.Source),
	}

	query, args, err := qb.InsertModel("odds", model, "RETURNING id")
	if err != nil {
		return 0, fmt.Errorf("build insert odds query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert odds: %w", err)
	}
	return id, nil
}

func (r *OddsRepository) UpdatePrices(ctx context.Context, id int64, item odds.Odds) error {
	query, args, err := qb.Update("odds").
		Set("home_odds", item.HomeOdds).
		Set("draw_odds", item.DrawOdds).
		Set("away_odds", item.AwayOdds).
		Set("observed_at", item.ObservedAt.UTC()).
		Set("updated_at", time.Now().UTC()).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update odds query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update odds id=%d: %w", id, err)
	}
	return nil
}
