// Package fivethirtyeight parses the soccer SPI matches CSV
// (season,date,league,team1,team2,score1,score2,xg1,xg2,nsxg1,nsxg2,adj_score1,adj_score2,...).
package fivethirtyeight

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/predictaball/datacore/internal/domain/ingest"
)

const Source = "FiveThirtyEight/soccer-spi"

const dateLayout = "2006-01-02"

// statColumns are the per-team model outputs carried over as stat lines.
var statColumns = []string{"xg", "nsxg", "adj_score"}

func Parse(r io.Reader) ([]ingest.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := columnIndex(header)
	for _, name := range []string{"date", "league", "team1", "team2"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var out []ingest.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		kickoff, err := time.ParseInLocation(dateLayout, field(row, col, "date"), time.UTC)
		if err != nil {
			continue
		}

		homeScore := parseScore(field(row, col, "score1"))
		awayScore := parseScore(field(row, col, "score2"))
		status := "SCHEDULED"
		if homeScore != nil && awayScore != nil {
			status = "FINISHED"
		}

		record := ingest.Record{
			LeagueName: field(row, col, "league"),
			Sport:      "Football",
			HomeTeam:   field(row, col, "team1"),
			AwayTeam:   field(row, col, "team2"),
			KickoffUTC: kickoff,
			Status:     status,
			HomeScore:  homeScore,
			AwayScore:  awayScore,
			Source:     Source,
		}
		record.Normalize()
		record.Stats = statLines(row, col, record.HomeTeam, record.AwayTeam)
		out = append(out, record)
	}
	return out, nil
}

func statLines(row []string, col map[string]int, homeTeam, awayTeam string) []ingest.StatLine {
	var out []ingest.StatLine
	for _, statType := range statColumns {
		if value := field(row, col, statType+"1"); value != "" {
			out = append(out, ingest.StatLine{TeamName: homeTeam, StatType: statType, Value: value})
		}
		if value := field(row, col, statType+"2"); value != "" {
			out = append(out, ingest.StatLine{TeamName: awayTeam, StatType: statType, Value: value})
		}
	}
	return out
}

func columnIndex(header []string) map[string]int {
	out := make(map[string]int, len(header))
	for idx, name := range header {
		out[strings.ToLower(strings.TrimSpace(name))] = idx
	}
	return out
}

func field(row []string, col map[string]int, name string) string {
	idx, ok := col[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseScore(raw string) *int {
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return nil
	}
	return &value
}
