package usecase

import (
	"sort"
	"time"

	"github.com/predictaball/datacore/internal/domain/match"
)

// VenueScope narrows a form window to one side of the fixture list.
type VenueScope int

const (
	VenueOverall VenueScope = iota
	VenueHome
	VenueAway
)

// FormResult is one rolling-window summary of a team's recent results.
// GamesConsidered can be short of the window when the team has not played
// enough, or when a window slot landed on a match with unknown scores; those
// slots are dropped without pulling older matches in.
type FormResult struct {
	Wins            int `json:"wins"`
	Draws           int `json:"draws"`
	Losses          int `json:"losses"`
	GamesConsidered int `json:"games_considered"`
}

// FormService computes time-windowed team form from match history. It is
// pure computation over rows the caller already loaded, so the feature engine
// can fan out across teams without touching the store per window.
type FormService struct {
	window int
}

func NewFormService(window int) *FormService {
	if window < 1 {
		window = 5
	}
	return &FormService{window: window}
}

func (s *FormService) Window() int { return s.window }

// TeamForm summarizes the team's last matches strictly before asOf using the
// service's configured window size.
func (s *FormService) TeamForm(teamID int64, asOf time.Time, history []match.Match, scope VenueScope) FormResult {
	return s.TeamFormWindow(teamID, asOf, history, scope, s.window)
}

// TeamFormWindow is TeamForm with an explicit window size.
func (s *FormService) TeamFormWindow(teamID int64, asOf time.Time, history []match.Match, scope VenueScope, window int) FormResult {
	if teamID <= 0 || window < 1 || asOf.IsZero() {
		return FormResult{}
	}

	eligible := make([]match.Match, 0, len(history))
	for _, item := range history {
		if !item.KickoffUTC.Before(asOf) {
			continue
		}
		switch scope {
		case VenueHome:
			if item.HomeTeamID != teamID {
				continue
			}
		case VenueAway:
			if item.AwayTeamID != teamID {
				continue
			}
		default:
			if item.HomeTeamID != teamID && item.AwayTeamID != teamID {
				continue
			}
		}
		eligible = append(eligible, item)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].KickoffUTC.After(eligible[j].KickoffUTC)
	})
	if len(eligible) > window {
		eligible = eligible[:window]
	}

	var out FormResult
	for _, item := range eligible {
		if item.HomeScore == nil || item.AwayScore == nil {
			// Unknown result occupies its window slot but contributes nothing.
			continue
		}
		out.GamesConsidered++
		switch {
		case *item.HomeScore == *item.AwayScore:
			out.Draws++
		case item.HomeTeamID == teamID && *item.HomeScore > *item.AwayScore:
			out.Wins++
		case item.AwayTeamID == teamID && *item.AwayScore > *item.HomeScore:
			out.Wins++
		default:
			out.Losses++
		}
	}
	return out
}
