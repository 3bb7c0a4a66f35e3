// Package soccerdata parses football-data.co.uk style results CSVs
// (Div,Date,HomeTeam,AwayTeam,FTHG,FTAG,... plus per-bookmaker 1X2 columns).
package soccerdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/predictaball/datacore/internal/domain/ingest"
)

const Source = "SoccerDataUK"

var dateLayouts = []string{"02/01/2006", "02/01/06"}

// divisionNames maps the feed's division codes to league names; unknown codes
// pass through so new divisions still ingest under their raw code.
var divisionNames = map[string]string{
	"E0":  "Premier League",
	"E1":  "Championship",
	"E2":  "League One",
	"E3":  "League Two",
	"SC0": "Scottish Premiership",
	"SP1": "La Liga",
	"SP2": "La Liga 2",
	"D1":  "Bundesliga",
	"D2":  "2. Bundesliga",
	"I1":  "Serie A",
	"I2":  "Serie B",
	"F1":  "Ligue 1",
	"F2":  "Ligue 2",
	"N1":  "Eredivisie",
	"P1":  "Primeira Liga",
}

// bookmakerPrefixes maps the feed's column prefixes to bookmaker names.
type bookmakerColumns struct {
	prefix string
	name   string
}

var bookmakers = []bookmakerColumns{
	{prefix: "B365", name: "Bet365"},
	{prefix: "BW", name: "Bwin"},
	{prefix: "IW", name: "Interwetten"},
	{prefix: "PS", name: "Pinnacle"},
	{prefix: "WH", name: "William Hill"},
	{prefix: "VC", name: "VC Bet"},
}

func Parse(r io.Reader) ([]ingest.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := columnIndex(header)
	for _, name := range []string{"div", "date", "hometeam", "awayteam"} {
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

		kickoff, ok := parseKickoff(field(row, col, "date"), field(row, col, "time"))
		if !ok {
			continue
		}

		record := ingest.Record{
			LeagueName: divisionName(field(row, col, "div")),
			Sport:      "Football",
			HomeTeam:   field(row, col, "hometeam"),
			AwayTeam:   field(row, col, "awayteam"),
			KickoffUTC: kickoff,
			Status:     "FT",
			HomeScore:  parseScore(field(row, col, "fthg")),
			AwayScore:  parseScore(field(row, col, "ftag")),
			Source:     Source,
			Odds:       parseOdds(row, col, kickoff),
		}
		record.Normalize()
		out = append(out, record)
	}
	return out, nil
}

func divisionName(code string) string {
	if name, ok := divisionNames[strings.ToUpper(code)]; ok {
		return name
	}
	return code
}

func parseKickoff(date, clock string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		day, err := time.ParseInLocation(layout, date, time.UTC)
		if err != nil {
			continue
		}
		if clock != "" {
			if t, err := time.ParseInLocation("15:04", clock, time.UTC); err == nil {
				day = day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
			}
		}
		return day, true
	}
	return time.Time{}, false
}

// parseOdds lifts the per-bookmaker H/D/A columns into quotes. Prices stay
// raw strings; the ingestion service decides whether they parse.
func parseOdds(row []string, col map[string]int, observedAt time.Time) []ingest.OddsQuote {
	var out []ingest.OddsQuote
	for _, bm := range bookmakers {
		home := field(row, col, strings.ToLower(bm.prefix+"h"))
		draw := field(row, col, strings.ToLower(bm.prefix+"d"))
		away := field(row, col, strings.ToLower(bm.prefix+"a"))
		if home == "" && draw == "" && away == "" {
			continue
		}
		out = append(out, ingest.OddsQuote{
			Bookmaker:  bm.name,
			HomePrice:  home,
			DrawPrice:  draw,
			AwayPrice:  away,
			ObservedAt: observedAt,
		})
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
