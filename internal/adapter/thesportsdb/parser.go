// Package thesportsdb parses TheSportsDB team-list JSON
// (search_all_teams.php style payloads) into entity seeds grouped by league.
package thesportsdb

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/predictaball/datacore/internal/domain/ingest"
)

const Source = "TheSportsDB"

type payload struct {
	Teams []teamItem `json:"teams"`
}

type teamItem struct {
	IDTeam     string `json:"idTeam"`
	Name       string `json:"strTeam"`
	League     string `json:"strLeague"`
	IDLeague   string `json:"idLeague"`
	Country    string `json:"strCountry"`
	Sport      string `json:"strSport"`
	ShortName  string `json:"strTeamShort"`
	Alternate  string `json:"strAlternate"`
	Stadium    string `json:"strStadium"`
	FormedYear string `json:"intFormedYear"`
}

// Parse groups the payload's teams by league and emits one seed per league.
// Seeds come back sorted by league name so repeat runs are deterministic.
func Parse(r io.Reader) ([]ingest.EntitySeed, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}

	var body payload
	if err := sonic.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if len(body.Teams) == 0 {
		return nil, fmt.Errorf("payload has no teams")
	}

	seeds := make(map[string]*ingest.EntitySeed)
	for _, item := range body.Teams {
		leagueName := strings.TrimSpace(item.League)
		teamName := strings.TrimSpace(item.Name)
		if leagueName == "" || teamName == "" {
			continue
		}

		seed, ok := seeds[leagueName]
		if !ok {
			seed = &ingest.EntitySeed{
				LeagueName:     leagueName,
				Sport:          normalizeSport(item.Sport),
				Country:        strings.TrimSpace(item.Country),
				LeagueSourceID: strings.TrimSpace(item.IDLeague),
				Source:         Source,
			}
			seeds[leagueName] = seed
		}
		seed.Teams = append(seed.Teams, teamName)
	}

	out := make([]ingest.EntitySeed, 0, len(seeds))
	for _, seed := range seeds {
		out = append(out, *seed)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LeagueName < out[j].LeagueName })
	return out, nil
}

// normalizeSport maps the API's "Soccer" label to the canonical sport name.
func normalizeSport(raw string) string {
	sport := strings.TrimSpace(raw)
	if sport == "" || strings.EqualFold(sport, "Soccer") {
		return "Football"
	}
	return sport
}
