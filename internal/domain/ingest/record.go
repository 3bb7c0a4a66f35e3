package ingest

import (
	"strings"
	"time"
)

// Record is the normalized match record every source adapter must produce.
// The core never inspects raw CSV/JSON/YAML and never branches on source
// identity beyond stamping provenance; all format quirks end at the adapter
// boundary.
type Record struct {
	LeagueName     string `validate:"required"`
	Sport          string `validate:"required"`
	LeagueCountry  string
	LeagueSourceID string

	HomeTeam         string `validate:"required"`
	AwayTeam         string `validate:"required"`
	HomeTeamSourceID string
	AwayTeamSourceID string
	TeamCountry      string

	KickoffUTC time.Time `validate:"required"`
	Status     string
	HomeScore  *int
	AwayScore  *int
	Stage      string
	Matchday   int

	Source        string `validate:"required"`
	SourceMatchID string

	Odds  []OddsQuote
	Stats []StatLine
}

// OddsQuote carries one bookmaker's raw prices for the match. Prices stay
// strings until the ingestion service coerces them so that a malformed price
// can skip that single quote without dropping the match row.
type OddsQuote struct {
	Bookmaker  string
	MarketType string
	HomePrice  string
	DrawPrice  string
	AwayPrice  string
	ObservedAt time.Time
}

// StatLine carries one metric observation. TeamName selects the home or away
// side by name; empty means a match-level stat. Value stays a string for the
// same reason quote prices do.
type StatLine struct {
	TeamName string
	StatType string
	Value    string
	Period   string
}

// EntitySeed registers a league and its member teams without any match rows.
// Club-list sources (openfootball YAML, TheSportsDB league search) produce
// these instead of Records.
type EntitySeed struct {
	LeagueName     string `validate:"required"`
	Sport          string `validate:"required"`
	Country        string
	LeagueSourceID string
	Source         string `validate:"required"`
	Teams          []string
}

// Normalize trims the identity fields in place so adapters do not each have
// to remember to.
func (r *Record) Normalize() {
	r.LeagueName = strings.TrimSpace(r.LeagueName)
	r.Sport = strings.TrimSpace(r.Sport)
	r.HomeTeam = strings.TrimSpace(r.HomeTeam)
	r.AwayTeam = strings.TrimSpace(r.AwayTeam)
	r.Source = strings.TrimSpace(r.Source)
	r.SourceMatchID = strings.TrimSpace(r.SourceMatchID)
}
