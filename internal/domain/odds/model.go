package odds

import (
	"fmt"
	"strings"
	"time"
)

// MarketThreeWay is the 1X2 market every soccer odds source in the pipeline
// quotes; other market types pass through as supplied.
const MarketThreeWay = "1X2"

// Odds is one bookmaker's quote for one market of one match. Identity is
// (match, bookmaker, market type); re-observing the same market updates the
// prices instead of adding a row.
type Odds struct {
	ID         int64
	MatchID    int64
	Bookmaker  string
	MarketType string
	HomeOdds   float64
	DrawOdds   float64
	AwayOdds   float64
	ObservedAt time.Time
	Source     string
}

func (o Odds) Validate() error {
	if o.MatchID <= 0 {
		return fmt.Errorf("odds match id is required")
	}
	if strings.TrimSpace(o.Bookmaker) == "" {
		return fmt.Errorf("odds bookmaker is required")
	}
	if strings.TrimSpace(o.MarketType) == "" {
		return fmt.Errorf("odds market type is required")
	}
	if o.HomeOdds <= 0 || o.DrawOdds <= 0 || o.AwayOdds <= 0 {
		return fmt.Errorf("odds prices must be positive")
	}

	return nil
}
