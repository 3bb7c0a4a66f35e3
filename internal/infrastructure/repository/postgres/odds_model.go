package postgres

import (
	"database/sql"
	"time"

	"github.com/predictaball/datacore/internal/domain/odds"
)

type oddsTableModel struct {
	ID         int64           `db:"id"`
	MatchID    int64           `db:"match_id"`
	Bookmaker  string          `db:"bookmaker"`
	MarketType string          `db:"market_type"`
	HomeOdds   sql.NullFloat64 `db:"home_odds"`
	DrawOdds   sql.NullFloat64 `db:"draw_odds"`
	AwayOdds   sql.NullFloat64 `db:"away_odds"`
	ObservedAt sql.NullTime    `db:"observed_at"`
	Source     sql.NullString  `db:"source"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

func (m oddsTableModel) toDomain() odds.Odds {
	out := odds.Odds{
		ID:         m.ID,
		MatchID:    m.MatchID,
		Bookmaker:  m.Bookmaker,
		MarketType: m.MarketType,
		HomeOdds:   m.HomeOdds.Float64,
		DrawOdds:   m.DrawOdds.Float64,
		AwayOdds:   m.AwayOdds.Float64,
		Source:     nullStringValue(m.Source),
	}
	if m.ObservedAt.Valid {
		out.ObservedAt = m.ObservedAt.Time.UTC()
	}
	return out
}

type oddsInsertModel struct {
	MatchID    int64          `db:"match_id"`
	Bookmaker  string         `db:"bookmaker"`
	MarketType string         `db:"market_type"`
	HomeOdds   float64        `db:"home_odds"`
	DrawOdds   float64        `db:"draw_odds"`
	AwayOdds   float64        `db:"away_odds"`
	ObservedAt time.Time      `db:"observed_at"`
	Source     sql.NullString `db:"source"`
}
