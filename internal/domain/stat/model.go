package stat

import (
	"fmt"
	"strings"
)

// Stat is one observed metric for a match, optionally scoped to one team and
// one period. The value is stored as text so sources can ship structured or
// non-integer values; numeric coercion happens at write time in the ingestion
// service. Identity is (match, team, stat type, period).
type Stat struct {
	ID       int64
	MatchID  int64
	TeamID   int64 // 0 for match-level stats
	StatType string
	Value    string
	Period   string
	Source   string
}

func (s Stat) Validate() error {
	if s.MatchID <= 0 {
		return fmt.Errorf("stat match id is required")
	}
	if strings.TrimSpace(s.StatType) == "" {
		return fmt.Errorf("stat type is required")
	}
	if strings.TrimSpace(s.Value) == "" {
		return fmt.Errorf("stat value is required")
	}

	return nil
}
