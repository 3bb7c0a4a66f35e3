package match

import (
	"fmt"
	"strings"
	"time"
)

const (
	StatusScheduled    = "SCHEDULED"
	StatusLive         = "LIVE"
	StatusFinished     = "FINISHED"
	StatusPostponed    = "POSTPONED"
	StatusUnknownScore = "UNKNOWN_SCORE"
)

const (
	WinnerHome = "HOME_TEAM"
	WinnerAway = "AWAY_TEAM"
	WinnerDraw = "DRAW"
)

// Match is the central fact entity of the canonical store. A match is
// uniquely identified by (source, source_match_id) when the source supplies a
// stable id, and by (kickoff, home, away, source) otherwise. Status, scores,
// winner and kickoff are mutable; league/team/source identity fields are
// immutable once written.
type Match struct {
	ID            int64
	LeagueID      int64
	HomeTeamID    int64
	AwayTeamID    int64
	KickoffUTC    time.Time
	Status        string
	HomeScore     *int
	AwayScore     *int
	Winner        string
	Stage         string
	Matchday      int
	Source        string
	SourceMatchID string
	IsMock        bool
}

// ErrDuplicateKey marks an insert that lost a natural-key uniqueness race.
var ErrDuplicateKey = fmt.Errorf("match key already exists")

func (m Match) Validate() error {
	if m.LeagueID <= 0 {
		return fmt.Errorf("match league id is required")
	}
	if m.HomeTeamID <= 0 || m.AwayTeamID <= 0 {
		return fmt.Errorf("match team ids are required")
	}
	if m.KickoffUTC.IsZero() {
		return fmt.Errorf("match kickoff is required")
	}
	if strings.TrimSpace(m.Source) == "" {
		return fmt.Errorf("match source is required")
	}

	return nil
}

// DeriveWinner computes the result label from full-time scores. It returns ""
// when either score is unknown.
func DeriveWinner(homeScore, awayScore *int) string {
	if homeScore == nil || awayScore == nil {
		return ""
	}
	switch {
	case *homeScore > *awayScore:
		return WinnerHome
	case *awayScore > *homeScore:
		return WinnerAway
	default:
		return WinnerDraw
	}
}

// NormalizeStatus maps the status aliases seen across sources onto the
// canonical lifecycle set. Unrecognized non-empty values pass through
// uppercased so provenance is not lost.
func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	switch status {
	case "":
		return StatusScheduled
	case "TIMED", "NOT STARTED", "NS":
		return StatusScheduled
	case "MATCH FINISHED", "FT", "AET", "PEN", "FULL-TIME":
		return StatusFinished
	case "IN_PLAY", "IN PLAY", "HT", "1H", "2H", "ET", "BREAK", "PAUSED":
		return StatusLive
	case "CANCELLED", "ABANDONED", "SUSPENDED":
		return StatusPostponed
	case "AWAITING_SCORES":
		return StatusUnknownScore
	default:
		return status
	}
}

// IsFinishedStatus reports whether a status label counts as a completed match.
func IsFinishedStatus(status string) bool {
	return NormalizeStatus(status) == StatusFinished
}

// HasSourceRef reports whether the source supplied a stable native match id,
// which selects the (source, source_match_id) identification strategy.
func (m Match) HasSourceRef() bool {
	return strings.TrimSpace(m.SourceMatchID) != ""
}
