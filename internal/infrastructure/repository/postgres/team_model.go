package postgres

import (
	"database/sql"
	"time"

	"github.com/predictaball/datacore/internal/domain/team"
)

type teamTableModel struct {
	ID           int64          `db:"id"`
	Name         string         `db:"name"`
	Sport        string         `db:"sport"`
	ShortName    sql.NullString `db:"short_name"`
	Country      sql.NullString `db:"country"`
	LeagueID     sql.NullInt64  `db:"league_id"`
	Source       sql.NullString `db:"source"`
	SourceTeamID sql.NullString `db:"source_team_id"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:           m.ID,
		Name:         m.Name,
		Sport:        m.Sport,
		ShortName:    nullStringValue(m.ShortName),
		Country:      nullStringValue(m.Country),
		LeagueID:     nullInt64Value(m.LeagueID),
		Source:       nullStringValue(m.Source),
		SourceTeamID: nullStringValue(m.SourceTeamID),
	}
}

type teamInsertModel struct {
	Name         string         `db:"name"`
	Sport        string         `db:"sport"`
	ShortName    sql.NullString `db:"short_name"`
	Country      sql.NullString `db:"country"`
	LeagueID     sql.NullInt64  `db:"league_id"`
	Source       sql.NullString `db:"source"`
	SourceTeamID sql.NullString `db:"source_team_id"`
}
