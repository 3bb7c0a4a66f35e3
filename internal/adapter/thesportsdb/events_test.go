package thesportsdb

import (
	"strings"
	"testing"
	"time"
)

const sampleEvents = `{
  "events": [
    {
      "idEvent": "1032723",
      "strEvent": "Arsenal vs Chelsea",
      "strLeague": "English Premier League",
      "idLeague": "4328",
      "strSport": "Soccer",
      "strHomeTeam": "Arsenal",
      "strAwayTeam": "Chelsea",
      "idHomeTeam": "133604",
      "idAwayTeam": "133610",
      "intHomeScore": "2",
      "intAwayScore": "1",
      "strStatus": "Match Finished",
      "strTimestamp": "2024-08-17T14:00:00",
      "intRound": "1",
      "strSeason": "2024-2025"
    },
    {
      "idEvent": "1032724",
      "strEvent": "Everton vs Brighton",
      "strLeague": "English Premier League",
      "strSport": "Soccer",
      "strHomeTeam": "Everton",
      "strAwayTeam": "Brighton",
      "intHomeScore": "",
      "intAwayScore": "",
      "strStatus": "Not Started",
      "dateEvent": "2024-08-24",
      "strTime": "14:00:00"
    },
    {
      "idEvent": "1032725",
      "strEvent": "Fulham vs Wolves",
      "strLeague": "English Premier League",
      "strSport": "Soccer",
      "strHomeTeam": "Fulham",
      "strAwayTeam": "Wolves",
      "intHomeScore": "1",
      "intAwayScore": "0",
      "strStatus": "",
      "dateEvent": "2024-08-10"
    },
    {
      "idEvent": "",
      "strLeague": "English Premier League",
      "strHomeTeam": "Luton",
      "strAwayTeam": "Burnley"
    },
    {
      "idEvent": "1032726",
      "strLeague": "English Premier League",
      "strHomeTeam": "Brentford",
      "strAwayTeam": "Palace",
      "strStatus": "Postponed",
      "intHomeScore": "1",
      "intAwayScore": "1",
      "dateEvent": "2024-08-31"
    }
  ]
}`

func TestParseEvents(t *testing.T) {
	records, err := ParseEvents(strings.NewReader(sampleEvents))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("unexpected record count: %d", len(records))
	}

	finished := records[0]
	if finished.SourceMatchID != "1032723" || finished.Source != Source {
		t.Fatalf("unexpected identity: %q %q", finished.SourceMatchID, finished.Source)
	}
	if finished.Sport != "Football" {
		t.Fatalf("unexpected sport: %q", finished.Sport)
	}
	if finished.Status != "FINISHED" {
		t.Fatalf("unexpected status: %q", finished.Status)
	}
	if finished.HomeScore == nil || *finished.HomeScore != 2 || finished.AwayScore == nil || *finished.AwayScore != 1 {
		t.Fatalf("unexpected scores: %v %v", finished.HomeScore, finished.AwayScore)
	}
	if !finished.KickoffUTC.Equal(time.Date(2024, 8, 17, 14, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected kickoff: %s", finished.KickoffUTC)
	}
	if finished.Matchday != 1 || finished.Stage != "2024-2025" {
		t.Fatalf("unexpected round/season: %d %q", finished.Matchday, finished.Stage)
	}
	if finished.HomeTeamSourceID != "133604" || finished.AwayTeamSourceID != "133610" {
		t.Fatalf("unexpected team source ids: %q %q", finished.HomeTeamSourceID, finished.AwayTeamSourceID)
	}

	upcoming := records[1]
	if upcoming.Status != "SCHEDULED" {
		t.Fatalf("unexpected status: %q", upcoming.Status)
	}
	if upcoming.HomeScore != nil || upcoming.AwayScore != nil {
		t.Fatalf("expected nil scores for scheduled event")
	}
	if !upcoming.KickoffUTC.Equal(time.Date(2024, 8, 24, 14, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected fallback kickoff: %s", upcoming.KickoffUTC)
	}

	// Empty status with scores present is inferred finished.
	inferred := records[2]
	if inferred.Status != "FINISHED" {
		t.Fatalf("unexpected inferred status: %q", inferred.Status)
	}
	if inferred.HomeScore == nil || *inferred.HomeScore != 1 {
		t.Fatalf("unexpected inferred score: %v", inferred.HomeScore)
	}

	// Postponed events drop whatever scores the payload carried.
	postponed := records[3]
	if postponed.Status != "POSTPONED" {
		t.Fatalf("unexpected status: %q", postponed.Status)
	}
	if postponed.HomeScore != nil || postponed.AwayScore != nil {
		t.Fatalf("expected nil scores for postponed event")
	}
}

func TestParseEvents_EmptyPayload(t *testing.T) {
	if _, err := ParseEvents(strings.NewReader(`{"events": []}`)); err == nil {
		t.Fatalf("expected error for empty event list")
	}
}
