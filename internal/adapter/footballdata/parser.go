// Package footballdata parses football-data.org v4 match-list JSON payloads.
package footballdata

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/bytedance/sonic"

	"github.com/predictaball/datacore/internal/domain/ingest"
)

const Source = "FootballDataOrg"

type payload struct {
	Area        area        `json:"area"`
	Competition competition `json:"competition"`
	Matches     []matchItem `json:"matches"`
}

type area struct {
	Name string `json:"name"`
}

type competition struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type matchItem struct {
	ID       int64    `json:"id"`
	UTCDate  string   `json:"utcDate"`
	Status   string   `json:"status"`
	Matchday int      `json:"matchday"`
	Stage    string   `json:"stage"`
	HomeTeam teamItem `json:"homeTeam"`
	AwayTeam teamItem `json:"awayTeam"`
	Score    score    `json:"score"`
}

type teamItem struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
}

type score struct {
	Winner   string    `json:"winner"`
	FullTime scorePair `json:"fullTime"`
}

type scorePair struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// Parse decodes one match-list response. Matches missing either side's name
// or a parseable kickoff are dropped; everything else is passed through with
// the API's own status string for the core to normalize.
func Parse(r io.Reader) ([]ingest.Record, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}

	var body payload
	if err := sonic.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if body.Competition.Name == "" {
		return nil, fmt.Errorf("payload has no competition name")
	}

	leagueSourceID := ""
	if body.Competition.ID > 0 {
		leagueSourceID = strconv.FormatInt(body.Competition.ID, 10)
	}

	out := make([]ingest.Record, 0, len(body.Matches))
	for _, item := range body.Matches {
		if item.HomeTeam.Name == "" || item.AwayTeam.Name == "" {
			continue
		}
		kickoff, err := time.Parse(time.RFC3339, item.UTCDate)
		if err != nil {
			continue
		}

		record := ingest.Record{
			LeagueName:       body.Competition.Name,
			LeagueCountry:    body.Area.Name,
			LeagueSourceID:   leagueSourceID,
			Sport:            "Football",
			HomeTeam:         item.HomeTeam.Name,
			AwayTeam:         item.AwayTeam.Name,
			HomeTeamSourceID: teamSourceID(item.HomeTeam),
			AwayTeamSourceID: teamSourceID(item.AwayTeam),
			KickoffUTC:       kickoff.UTC(),
			Status:           item.Status,
			HomeScore:        item.Score.FullTime.Home,
			AwayScore:        item.Score.FullTime.Away,
			Stage:            item.Stage,
			Matchday:         item.Matchday,
			Source:           Source,
			SourceMatchID:    strconv.FormatInt(item.ID, 10),
		}
		record.Normalize()
		out = append(out, record)
	}
	return out, nil
}

func teamSourceID(item teamItem) string {
	if item.ID <= 0 {
		return ""
	}
	return strconv.FormatInt(item.ID, 10)
}
