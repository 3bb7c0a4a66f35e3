package kaggle

import (
	"strings"
	"testing"
	"time"
)

const sampleCSV = `date,home_team,away_team,home_score,away_score,tournament,city,country,neutral
2018-07-15,France,Croatia,4,2,FIFA World Cup,Moscow,Russia,TRUE
2022-03-29,Scotland,Austria,,,Friendly,Vienna,Austria,FALSE
not-a-date,England,Wales,1,0,Friendly,London,England,FALSE
`

func TestParse(t *testing.T) {
	records, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("unexpected record count: got=%d want=2", len(records))
	}

	first := records[0]
	if first.LeagueName != "FIFA World Cup" || first.LeagueCountry != "Russia" {
		t.Fatalf("unexpected league: %q country=%q", first.LeagueName, first.LeagueCountry)
	}
	if first.HomeTeam != "France" || first.AwayTeam != "Croatia" {
		t.Fatalf("unexpected teams: %q vs %q", first.HomeTeam, first.AwayTeam)
	}
	if first.HomeScore == nil || *first.HomeScore != 4 || first.AwayScore == nil || *first.AwayScore != 2 {
		t.Fatalf("unexpected scores: %v %v", first.HomeScore, first.AwayScore)
	}
	want := time.Date(2018, 7, 15, 0, 0, 0, 0, time.UTC)
	if !first.KickoffUTC.Equal(want) {
		t.Fatalf("unexpected kickoff: %s", first.KickoffUTC)
	}
	if first.Source != Source {
		t.Fatalf("unexpected source: %q", first.Source)
	}

	second := records[1]
	if second.HomeScore != nil || second.AwayScore != nil {
		t.Fatalf("expected nil scores for unplayed match")
	}
}

func TestParse_MissingColumns(t *testing.T) {
	if _, err := Parse(strings.NewReader("a,b,c\n1,2,3\n")); err == nil {
		t.Fatalf("expected error for missing columns")
	}
}
