package thesportsdb

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/predictaball/datacore/internal/domain/ingest"
)

type eventsPayload struct {
	Events []eventItem `json:"events"`
}

type eventItem struct {
	IDEvent    string `json:"idEvent"`
	Name       string `json:"strEvent"`
	League     string `json:"strLeague"`
	IDLeague   string `json:"idLeague"`
	Sport      string `json:"strSport"`
	HomeTeam   string `json:"strHomeTeam"`
	AwayTeam   string `json:"strAwayTeam"`
	IDHomeTeam string `json:"idHomeTeam"`
	IDAwayTeam string `json:"idAwayTeam"`
	HomeScore  string `json:"intHomeScore"`
	AwayScore  string `json:"intAwayScore"`
	Status     string `json:"strStatus"`
	DateEvent  string `json:"dateEvent"`
	Time       string `json:"strTime"`
	Timestamp  string `json:"strTimestamp"`
	Round      string `json:"intRound"`
	Season     string `json:"strSeason"`
}

var (
	finishedStatuses  = map[string]bool{"MATCH FINISHED": true, "FT": true, "AET": true, "PEN": true, "FINISHED": true}
	postponedStatuses = map[string]bool{"POSTPONED": true, "CANCELLED": true, "ABANDONED": true, "SUSPENDED": true}
	liveStatuses      = map[string]bool{"LIVE": true, "HT": true, "BREAK": true}
)

// ParseEvents reads an eventspastleague/eventsseason payload into match
// records. Events without a stable id, league, team names or any usable
// kickoff timestamp are dropped row by row.
func ParseEvents(r io.Reader) ([]ingest.Record, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}

	var body eventsPayload
	if err := sonic.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if len(body.Events) == 0 {
		return nil, fmt.Errorf("payload has no events")
	}

	records := make([]ingest.Record, 0, len(body.Events))
	for _, event := range body.Events {
		eventID := strings.TrimSpace(event.IDEvent)
		leagueName := strings.TrimSpace(event.League)
		homeTeam := strings.TrimSpace(event.HomeTeam)
		awayTeam := strings.TrimSpace(event.AwayTeam)
		if eventID == "" || leagueName == "" || homeTeam == "" || awayTeam == "" {
			continue
		}

		kickoff, ok := parseEventKickoff(event)
		if !ok {
			continue
		}

		homeScore := parseEventScore(event.HomeScore)
		awayScore := parseEventScore(event.AwayScore)
		status, homeScore, awayScore := normalizeEventStatus(event.Status, homeScore, awayScore)

		records = append(records, ingest.Record{
			LeagueName:       leagueName,
			Sport:            normalizeSport(event.Sport),
			LeagueSourceID:   strings.TrimSpace(event.IDLeague),
			HomeTeam:         homeTeam,
			AwayTeam:         awayTeam,
			HomeTeamSourceID: strings.TrimSpace(event.IDHomeTeam),
			AwayTeamSourceID: strings.TrimSpace(event.IDAwayTeam),
			KickoffUTC:       kickoff,
			Status:           status,
			HomeScore:        homeScore,
			AwayScore:        awayScore,
			Stage:            strings.TrimSpace(event.Season),
			Matchday:         parseRound(event.Round),
			Source:           Source,
			SourceMatchID:    eventID,
		})
	}

	return records, nil
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseEventKickoff prefers strTimestamp and falls back to dateEvent plus
// strTime (midnight when the time is missing).
func parseEventKickoff(event eventItem) (time.Time, bool) {
	if raw := strings.TrimSpace(event.Timestamp); raw != "" {
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, raw); err == nil {
				return parsed.UTC(), true
			}
		}
	}

	date := strings.TrimSpace(event.DateEvent)
	if date == "" {
		return time.Time{}, false
	}
	clock := strings.TrimSpace(event.Time)
	if clock == "" {
		clock = "00:00:00"
	}
	parsed, err := time.Parse("2006-01-02 15:04:05", date+" "+clock)
	if err != nil {
		return time.Time{}, false
	}
	return parsed.UTC(), true
}

func parseEventScore(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return nil
	}
	return &value
}

// normalizeEventStatus maps strStatus onto the canonical lifecycle. Scores
// survive only for finished and live matches; an empty status with scores
// present is inferred finished.
func normalizeEventStatus(raw string, homeScore, awayScore *int) (string, *int, *int) {
	status := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case finishedStatuses[status]:
		return "FINISHED", homeScore, awayScore
	case postponedStatuses[status]:
		return "POSTPONED", nil, nil
	case liveStatuses[status]:
		return "LIVE", homeScore, awayScore
	case status == "" && (homeScore != nil || awayScore != nil):
		return "FINISHED", homeScore, awayScore
	default:
		return "SCHEDULED", nil, nil
	}
}

func parseRound(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 0 {
		return 0
	}
	return value
}
