package team

import (
	"fmt"
	"strings"
)

// Team is a club or national side. Identity is (name, sport). LeagueID is a
// soft reference recording the league of first sighting only; the row is kept
// unchanged when the team later appears in other competitions.
type Team struct {
	ID           int64
	Name         string
	Sport        string
	ShortName    string
	Country      string
	LeagueID     int64
	Source       string
	SourceTeamID string
}

// ErrDuplicateIdentity marks an insert that lost the (name, sport)
// uniqueness race to a concurrent writer.
var ErrDuplicateIdentity = fmt.Errorf("team identity already exists")

func (t Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if strings.TrimSpace(t.Sport) == "" {
		return fmt.Errorf("team sport is required")
	}

	return nil
}
