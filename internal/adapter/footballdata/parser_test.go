package footballdata

import (
	"strings"
	"testing"
	"time"
)

const samplePayload = `{
  "area": {"name": "England"},
  "competition": {"id": 2021, "name": "Premier League", "code": "PL"},
  "matches": [
    {
      "id": 123,
      "utcDate": "2024-08-17T14:00:00Z",
      "status": "FINISHED",
      "matchday": 1,
      "stage": "REGULAR_SEASON",
      "homeTeam": {"id": 57, "name": "Arsenal", "shortName": "Arsenal"},
      "awayTeam": {"id": 76, "name": "Wolves", "shortName": "Wolves"},
      "score": {"winner": "HOME_TEAM", "fullTime": {"home": 2, "away": 0}}
    },
    {
      "id": 124,
      "utcDate": "2024-08-24T14:00:00Z",
      "status": "TIMED",
      "matchday": 2,
      "stage": "REGULAR_SEASON",
      "homeTeam": {"id": 58, "name": "Aston Villa"},
      "awayTeam": {"id": 57, "name": "Arsenal"},
      "score": {"winner": null, "fullTime": {"home": null, "away": null}}
    }
  ]
}`

func TestParse(t *testing.T) {
	records, err := Parse(strings.NewReader(samplePayload))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("unexpected record count: %d", len(records))
	}

	finished := records[0]
	if finished.LeagueName != "Premier League" || finished.LeagueCountry != "England" {
		t.Fatalf("unexpected league: %q country=%q", finished.LeagueName, finished.LeagueCountry)
	}
	if finished.LeagueSourceID != "2021" {
		t.Fatalf("unexpected league source id: %q", finished.LeagueSourceID)
	}
	if finished.SourceMatchID != "123" {
		t.Fatalf("unexpected source match id: %q", finished.SourceMatchID)
	}
	if finished.HomeTeamSourceID != "57" || finished.AwayTeamSourceID != "76" {
		t.Fatalf("unexpected team source ids: %q %q", finished.HomeTeamSourceID, finished.AwayTeamSourceID)
	}
	if finished.HomeScore == nil || *finished.HomeScore != 2 || finished.AwayScore == nil || *finished.AwayScore != 0 {
		t.Fatalf("unexpected scores: %v %v", finished.HomeScore, finished.AwayScore)
	}
	if !finished.KickoffUTC.Equal(time.Date(2024, 8, 17, 14, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected kickoff: %s", finished.KickoffUTC)
	}

	upcoming := records[1]
	if upcoming.Status != "TIMED" {
		t.Fatalf("unexpected status: %q", upcoming.Status)
	}
	if upcoming.HomeScore != nil || upcoming.AwayScore != nil {
		t.Fatalf("expected nil scores for timed match")
	}
	if upcoming.Matchday != 2 {
		t.Fatalf("unexpected matchday: %d", upcoming.Matchday)
	}
}

func TestParse_RejectsPayloadWithoutCompetition(t *testing.T) {
	if _, err := Parse(strings.NewReader(`{"matches": []}`)); err == nil {
		t.Fatalf("expected error for missing competition")
	}
}
