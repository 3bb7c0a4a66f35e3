package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/predictaball/datacore/internal/domain/match"
	"github.com/predictaball/datacore/internal/platform/logging"
)

// FeatureRow is one match with the six rolling form windows both sides bring
// into it: each team's overall, home-venue and away-venue form, all computed
// strictly before kickoff.
type FeatureRow struct {
	MatchID      int64     `json:"match_id"`
	LeagueName   string    `json:"league"`
	HomeTeamName string    `json:"home_team"`
	AwayTeamName string    `json:"away_team"`
	KickoffUTC   time.Time `json:"kickoff_utc"`

	HomeOverall FormResult `json:"home_form"`
	HomeAtHome  FormResult `json:"home_form_home"`
	HomeAtAway  FormResult `json:"home_form_away"`
	AwayOverall FormResult `json:"away_form"`
	AwayAtHome  FormResult `json:"away_form_home"`
	AwayAtAway  FormResult `json:"away_form_away"`

	// Outcome is 1 for a home win, 0 for a draw, -1 for an away win, and nil
	// until the match is finished with both scores known.
	Outcome *int `json:"outcome"`
}

// FeatureService assembles form feature tables from the canonical store.
// Rows are independent, so the computation fans out over a worker pool.
type FeatureService struct {
	matchRepo match.Repository
	form      *FormService
	workers   int
	logger    *logging.Logger
}

func NewFeatureService(matchRepo match.Repository, form *FormService, workers int, logger *logging.Logger) *FeatureService {
	if workers < 1 {
		workers = 1
	}
	if form == nil {
		form = NewFormService(0)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &FeatureService{
		matchRepo: matchRepo,
		form:      form,
		workers:   workers,
		logger:    logger,
	}
}

// FeatureTable computes one FeatureRow per match selected by the filter.
// Form windows draw on the full match history, not just the filtered slice,
// so a league-scoped table still sees cross-competition results.
func (s *FeatureService) FeatureTable(ctx context.Context, filter match.Filter) ([]FeatureRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeatureService.FeatureTable")
	defer span.End()

	targets, err := s.matchRepo.ListDetailed(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	if len(targets) == 0 {
		return []FeatureRow{}, nil
	}

	history, err := s.matchRepo.List(ctx, match.Filter{IncludeMock: filter.IncludeMock})
	if err != nil {
		return nil, fmt.Errorf("list match history: %w", err)
	}

	workerCount := s.workers
	if workerCount > len(targets) {
		workerCount = len(targets)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	rows := make([]FeatureRow, len(targets))
	var workers sync.WaitGroup
	for idx := range targets {
		idx := idx
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			rows[idx] = s.buildRow(targets[idx], history)
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit feature row to worker pool: %w", err)
		}
	}
	workers.Wait()

	s.logger.DebugContext(ctx, "feature table built",
		"rows", len(rows),
		"history", len(history),
		"workers", workerCount,
	)
	return rows, nil
}

func (s *FeatureService) buildRow(target match.Detailed, history []match.Match) FeatureRow {
	window := s.form.Window()
	asOf := target.KickoffUTC

	return FeatureRow{
		MatchID:      target.ID,
		LeagueName:   target.LeagueName,
		HomeTeamName: target.HomeTeamName,
		AwayTeamName: target.AwayTeamName,
		KickoffUTC:   target.KickoffUTC,

		HomeOverall: s.form.TeamFormWindow(target.HomeTeamID, asOf, history, VenueOverall, window),
		HomeAtHome:  s.form.TeamFormWindow(target.HomeTeamID, asOf, history, VenueHome, window),
		HomeAtAway:  s.form.TeamFormWindow(target.HomeTeamID, asOf, history, VenueAway, window),
		AwayOverall: s.form.TeamFormWindow(target.AwayTeamID, asOf, history, VenueOverall, window),
		AwayAtHome:  s.form.TeamFormWindow(target.AwayTeamID, asOf, history, VenueHome, window),
		AwayAtAway:  s.form.TeamFormWindow(target.AwayTeamID, asOf, history, VenueAway, window),

		Outcome: matchOutcome(target.Match),
	}
}

// matchOutcome labels only finished matches with both scores known; live
// interim scores stay nil.
func matchOutcome(item match.Match) *int {
	if item.Status != match.StatusFinished {
		return nil
	}
	if item.HomeScore == nil || item.AwayScore == nil {
		return nil
	}
	out := 0
	switch {
	case *item.HomeScore > *item.AwayScore:
		out = 1
	case *item.HomeScore < *item.AwayScore:
		out = -1
	}
	return &out
}
