package fivethirtyeight

import (
	"strings"
	"testing"
)

const sampleCSV = `season,date,league,team1,team2,score1,score2,xg1,xg2,nsxg1,nsxg2,adj_score1,adj_score2
2023,2023-08-12,Barclays Premier League,Arsenal,Nottingham Forest,2,1,1.84,0.62,1.52,0.71,2.10,1.05
2023,2023-08-20,Barclays Premier League,Crystal Palace,Arsenal,,,,,,,,
`

func TestParse(t *testing.T) {
	records, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("unexpected record count: %d", len(records))
	}

	played := records[0]
	if played.Status != "FINISHED" {
		t.Fatalf("unexpected status: %q", played.Status)
	}
	if len(played.Stats) != 6 {
		t.Fatalf("unexpected stat line count: %d", len(played.Stats))
	}
	if played.Stats[0].TeamName != "Arsenal" || played.Stats[0].StatType != "xg" || played.Stats[0].Value != "1.84" {
		t.Fatalf("unexpected first stat line: %+v", played.Stats[0])
	}
	if played.Stats[1].TeamName != "Nottingham Forest" || played.Stats[1].Value != "0.62" {
		t.Fatalf("unexpected second stat line: %+v", played.Stats[1])
	}

	upcoming := records[1]
	if upcoming.Status != "SCHEDULED" {
		t.Fatalf("unexpected status for unplayed match: %q", upcoming.Status)
	}
	if upcoming.HomeScore != nil || upcoming.AwayScore != nil {
		t.Fatalf("expected nil scores for unplayed match")
	}
	if len(upcoming.Stats) != 0 {
		t.Fatalf("expected no stat lines, got %d", len(upcoming.Stats))
	}
}
