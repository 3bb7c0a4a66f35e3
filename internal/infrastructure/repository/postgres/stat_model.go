package postgres

import (
	"database/sql"
	"time"

	"github.com/predictaball/datacore/internal/domain/stat"
)

type statTableModel struct {
	ID        int64          `db:"id"`
	MatchID   int64          `db:"match_id"`
	TeamID    sql.NullInt64  `db:"team_id"`
	StatType  string         `db:"stat_type"`
	Value     string         `db:"stat_value"`
	Period    sql.NullString `db:"period"`
	Source    sql.NullString `db:"source"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (m statTableModel) toDomain() stat.Stat {
	return stat.Stat{
		ID:       m.ID,
		MatchID:  m.MatchID,
		TeamID:   nullInt64Value(m.TeamID),
		StatType: m.StatType,
		Value:    m.Value,
		Period:   nullStringValue(m.Period),
		Source:   nullStringValue(m.Source),
	}
}

type statInsertModel struct {
	MatchID  int64          `db:"match_id"`
	TeamID   sql.NullInt64  `db:"team_id"`
	StatType string         `db:"stat_type"`
	Value    string         `db:"stat_value"`
	Period   sql.NullString `db:"period"`
	Source   sql.NullString `db:"source"`
}
