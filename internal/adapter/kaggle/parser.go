// Package kaggle parses the martj42 international football results CSV
// (date,home_team,away_team,home_score,away_score,tournament,city,country,neutral).
package kaggle

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/predictaball/datacore/internal/domain/ingest"
)

const Source = "Kaggle/martj42_intl_results"

const dateLayout = "2006-01-02"

// Parse reads the results CSV into normalized records. Rows with a malformed
// date are dropped; missing scores are kept as unknown results.
func Parse(r io.Reader) ([]ingest.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := columnIndex(header)
	for _, name := range []string{"date", "home_team", "away_team", "tournament"} {
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

		record := ingest.Record{
			LeagueName:    field(row, col, "tournament"),
			LeagueCountry: field(row, col, "country"),
			Sport:         "Football",
			HomeTeam:      field(row, col, "home_team"),
			AwayTeam:      field(row, col, "away_team"),
			KickoffUTC:    kickoff,
			Status:        "FINISHED",
			HomeScore:     parseScore(field(row, col, "home_score")),
			AwayScore:     parseScore(field(row, col, "away_score")),
			Source:        Source,
		}
		record.Normalize()
		out = append(out, record)
	}
	return out, nil
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
	if raw == "" || strings.EqualFold(raw, "na") {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return nil
	}
	return &value
}
