package postgres

import (
	"database/sql"
	"time"

	"github.com/predictaball/datacore/internal/domain/league"
)

type leagueTableModel struct {
	ID             int64          `db:"id"`
	Name           string         `db:"name"`
	Sport          string         `db:"sport"`
	Country        sql.NullString `db:"country"`
	Source         sql.NullString `db:"source"`
	SourceLeagueID sql.NullString `db:"source_league_id"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func (m leagueTableModel) toDomain() league.League {
	return league.League{
		ID:             m.ID,
		Name:           m.Name,
		Sport:          m.Sport,
		Country:        nullStringValue(m.Country),
		Source:         nullStringValue(m.Source),
		SourceLeagueID: nullStringValue(m.SourceLeagueID),
	}
}

type leagueInsertModel struct {
	Name           string         `db:"name"`
	Sport          string         `db:"sport"`
	Country        sql.NullString `db:"country"`
	Source         sql.NullString `db:"source"`
	SourceLeagueID sql.NullString `db:"source_league_id"`
}
