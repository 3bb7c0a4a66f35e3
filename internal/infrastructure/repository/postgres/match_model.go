package postgres

import (
	"database/sql"
	"time"

	"github.com/predictaball/datacore/internal/domain/match"
)

type matchTableModel struct {
	ID            int64          `db:"id"`
	LeagueID      int64          `db:"league_id"`
	HomeTeamID    int64          `db:"home_team_id"`
	AwayTeamID    int64          `db:"away_team_id"`
	KickoffUTC    time.Time      `db:"kickoff_utc"`
	Status        string         `db:"status"`
	HomeScore     sql.NullInt64  `db:"home_score"`
	AwayScore     sql.NullInt64  `db:"away_score"`
	Winner        sql.NullString `db:"winner"`
	Stage         sql.NullString `db:"stage"`
	Matchday      sql.NullInt64  `db:"matchday"`
	Source        string         `db:"source"`
	SourceMatchID sql.NullString `db:"source_match_id"`
	IsMock        bool           `db:"is_mock"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:            m.ID,
		LeagueID:      m.LeagueID,
		HomeTeamID:    m.HomeTeamID,
		AwayTeamID:    m.AwayTeamID,
		KickoffUTC:    m.KickoffUTC.UTC(),
		Status:        m.Status,
		HomeScore:     intPtrFromNull(m.HomeScore),
		AwayScore:     intPtrFromNull(m.AwayScore),
		Winner:        nullStringValue(m.Winner),
		Stage:         nullStringValue(m.Stage),
		Matchday:      int(nullInt64Value(m.Matchday)),
		Source:        m.Source,
		SourceMatchID: nullStringValue(m.SourceMatchID),
		IsMock:        m.IsMock,
	}
}

type matchDetailedTableModel struct {
	matchTableModel
	LeagueName   string `db:"league_name"`
	HomeTeamName string `db:"home_team_name"`
	AwayTeamName string `db:"away_team_name"`
}

func (m matchDetailedTableModel) toDomain() match.Detailed {
	return match.Detailed{
		Match:        m.matchTableModel.toDomain(),
		LeagueName:   m.LeagueName,
		HomeTeamName: m.HomeTeamName,
		AwayTeamName: m.AwayTeamName,
	}
}

type matchInsertModel struct {
	LeagueID      int64          `db:"league_id"`
	HomeTeamID    int64          `db:"home_team_id"`
	AwayTeamID    int64          `db:"away_team_id"`
	KickoffUTC    time.Time      `db:"kickoff_utc"`
	Status        string         `db:"status"`
	HomeScore     sql.NullInt64  `db:"home_score"`
	AwayScore     sql.NullInt64  `db:"away_score"`
	Winner        sql.NullString `db:"winner"`
	Stage         sql.NullString `db:"stage"`
	Matchday      sql.NullInt64  `db:"matchday"`
	Source        string         `db:"source"`
	SourceMatchID sql.NullString `db:"source_match_id"`
	IsMock        bool           `db:"is_mock"`
}
