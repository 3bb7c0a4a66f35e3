package usecase

import (
	"context"
	"testing"

	"github.com/predictaball/datacore/internal/domain/match"
)

func TestFeatureService_FeatureTable(t *testing.T) {
	ctx := context.Background()
	const t10, t11, t12 = int64(10), int64(11), int64(12)

	store := &fakeMatchStore{}
	store.rows = []match.Match{
		withID(1, finishedMatch(t10, t11, 2, 1, day(1))),
		withID(2, finishedMatch(t11, t10, 1, 2, day(2))),
		withID(3, finishedMatch(t10, t12, 0, 0, day(3))),
		withID(4, match.Match{
			HomeTeamID: t10,
			AwayTeamID: t11,
			KickoffUTC: day(4),
			Status:     match.StatusScheduled,
		}),
	}

	svc := NewFeatureService(store, NewFormService(5), 4, nil)
	rows, err := svc.FeatureTable(ctx, match.Filter{})
	if err != nil {
		t.Fatalf("feature table: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("unexpected row count: %d", len(rows))
	}

	// Row for the scheduled day-4 match: T10 brings W,W,D overall.
	last := rows[3]
	if last.MatchID != 4 {
		t.Fatalf("rows out of order: got match id %d", last.MatchID)
	}
	wantHome := FormResult{Wins: 2, Draws: 1, GamesConsidered: 3}
	if last.HomeOverall != wantHome {
		t.Fatalf("unexpected home overall form: got=%+v want=%+v", last.HomeOverall, wantHome)
	}
	wantHomeAtHome := FormResult{Wins: 1, Draws: 1, GamesConsidered: 2}
	if last.HomeAtHome != wantHomeAtHome {
		t.Fatalf("unexpected home venue form: got=%+v want=%+v", last.HomeAtHome, wantHomeAtHome)
	}
	wantAway := FormResult{Losses: 2, GamesConsidered: 2}
	if last.AwayOverall != wantAway {
		t.Fatalf("unexpected away overall form: got=%+v want=%+v", last.AwayOverall, wantAway)
	}
	if last.Outcome != nil {
		t.Fatalf("expected nil outcome for scheduled match, got %v", *last.Outcome)
	}

	// First match has no history before it.
	first := rows[0]
	if first.HomeOverall != (FormResult{}) || first.AwayOverall != (FormResult{}) {
		t.Fatalf("expected zero form for first match, got home=%+v away=%+v", first.HomeOverall, first.AwayOverall)
	}
	if first.Outcome == nil || *first.Outcome != 1 {
		t.Fatalf("unexpected outcome for home win: %v", first.Outcome)
	}

	// Draw outcome.
	third := rows[2]
	if third.Outcome == nil || *third.Outcome != 0 {
		t.Fatalf("unexpected outcome for draw: %v", third.Outcome)
	}
}

func TestFeatureService_VenueWindows(t *testing.T) {
	ctx := context.Background()
	const t10, t11, t12 = int64(10), int64(11), int64(12)

	store := &fakeMatchStore{}
	store.rows = []match.Match{
		withID(1, finishedMatch(t12, t10, 0, 1, day(1))),
		withID(2, finishedMatch(t12, t10, 2, 0, day(2))),
		withID(3, finishedMatch(t10, t12, 1, 1, day(3))),
		withID(4, finishedMatch(t11, t12, 3, 0, day(3))),
		withID(5, match.Match{
			HomeTeamID: t10,
			AwayTeamID: t11,
			KickoffUTC: day(5),
			Status:     match.StatusScheduled,
		}),
	}

	svc := NewFeatureService(store, NewFormService(5), 2, nil)
	rows, err := svc.FeatureTable(ctx, match.Filter{})
	if err != nil {
		t.Fatalf("feature table: %v", err)
	}
	target := rows[len(rows)-1]
	if target.MatchID != 5 {
		t.Fatalf("rows out of order: got match id %d", target.MatchID)
	}

	// Each side carries overall, home-venue and away-venue windows.
	wantHomeAway := FormResult{Wins: 1, Losses: 1, GamesConsidered: 2}
	if target.HomeAtAway != wantHomeAway {
		t.Fatalf("unexpected home away-venue form: got=%+v want=%+v", target.HomeAtAway, wantHomeAway)
	}
	wantHomeHome := FormResult{Draws: 1, GamesConsidered: 1}
	if target.HomeAtHome != wantHomeHome {
		t.Fatalf("unexpected home home-venue form: got=%+v want=%+v", target.HomeAtHome, wantHomeHome)
	}
	wantHomeOverall := FormResult{Wins: 1, Draws: 1, Losses: 1, GamesConsidered: 3}
	if target.HomeOverall != wantHomeOverall {
		t.Fatalf("unexpected home overall form: got=%+v want=%+v", target.HomeOverall, wantHomeOverall)
	}
	wantAwayHome := FormResult{Wins: 1, GamesConsidered: 1}
	if target.AwayAtHome != wantAwayHome {
		t.Fatalf("unexpected away home-venue form: got=%+v want=%+v", target.AwayAtHome, wantAwayHome)
	}
	if target.AwayAtAway != (FormResult{}) {
		t.Fatalf("expected zero away-venue form for side with no away history, got %+v", target.AwayAtAway)
	}
}

func TestMatchOutcome_FinishedOnly(t *testing.T) {
	live := finishedMatch(10, 11, 1, 0, day(1))
	live.Status = match.StatusLive
	if got := matchOutcome(live); got != nil {
		t.Fatalf("expected nil outcome for live match, got %d", *got)
	}

	unknown := finishedMatch(10, 11, 1, 0, day(1))
	unknown.Status = match.StatusUnknownScore
	if got := matchOutcome(unknown); got != nil {
		t.Fatalf("expected nil outcome for unknown-score match, got %d", *got)
	}

	finished := finishedMatch(10, 11, 1, 0, day(1))
	if got := matchOutcome(finished); got == nil || *got != 1 {
		t.Fatalf("unexpected outcome for finished home win: %v", got)
	}
}

func TestFeatureService_FeatureTable_Empty(t *testing.T) {
	svc := NewFeatureService(&fakeMatchStore{}, NewFormService(5), 2, nil)
	rows, err := svc.FeatureTable(context.Background(), match.Filter{})
	if err != nil {
		t.Fatalf("feature table: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty table, got %d rows", len(rows))
	}
}

func withID(id int64, item match.Match) match.Match {
	item.ID = id
	return item
}
