package thesportsdb

import (
	"strings"
	"testing"
)

const samplePayload = `{
  "teams": [
    {"idTeam": "133604", "strTeam": "Arsenal", "strLeague": "English Premier League", "idLeague": "4328", "strCountry": "England", "strSport": "Soccer"},
    {"idTeam": "133610", "strTeam": "Chelsea", "strLeague": "English Premier League", "idLeague": "4328", "strCountry": "England", "strSport": "Soccer"},
    {"idTeam": "134301", "strTeam": "Boston Celtics", "strLeague": "NBA", "idLeague": "4387", "strCountry": "United States", "strSport": "Basketball"},
    {"idTeam": "0", "strTeam": "", "strLeague": "English Premier League"}
  ]
}`

func TestParse(t *testing.T) {
	seeds, err := Parse(strings.NewReader(samplePayload))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(seeds) != 2 {
		t.Fatalf("unexpected seed count: %d", len(seeds))
	}

	epl := seeds[0]
	if epl.LeagueName != "English Premier League" {
		t.Fatalf("unexpected first seed: %q", epl.LeagueName)
	}
	if epl.Sport != "Football" || epl.Country != "England" || epl.LeagueSourceID != "4328" {
		t.Fatalf("unexpected seed metadata: %+v", epl)
	}
	if len(epl.Teams) != 2 || epl.Teams[0] != "Arsenal" || epl.Teams[1] != "Chelsea" {
		t.Fatalf("unexpected teams: %+v", epl.Teams)
	}

	nba := seeds[1]
	if nba.LeagueName != "NBA" || nba.Sport != "Basketball" {
		t.Fatalf("unexpected second seed: %+v", nba)
	}
}

func TestParse_EmptyPayload(t *testing.T) {
	if _, err := Parse(strings.NewReader(`{"teams": []}`)); err == nil {
		t.Fatalf("expected error for empty team list")
	}
}
