package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/predictaball/datacore/internal/domain/league"
	"github.com/predictaball/datacore/internal/domain/team"
)

type fakeLeagueRepo struct {
	rows       map[string]league.League
	nextID     int64
	insertErr  error
	missOnce   bool
	backfilled map[int64]string
}

func newFakeLeagueRepo() *fakeLeagueRepo {
	return &fakeLeagueRepo{
		rows:       make(map[string]league.League),
		backfilled: make(map[int64]string),
	}
}

func (r *fakeLeagueRepo) key(name, sport string) string { return name + "|" + sport }

func (r *fakeLeagueRepo) GetByIdentity(_ context.Context, name, sport string) (league.League, bool, error) {
	if r.missOnce {
		r.missOnce = false
		return league.League{}, false, nil
	}
	item, ok := r.rows[r.key(name, sport)]
	return item, ok, nil
}

func (r *fakeLeagueRepo) Insert(_ context.Context, item league.League) (int64, error) {
	if r.insertErr != nil {
		err := r.insertErr
		r.insertErr = nil
		return 0, err
	}
	if _, exists := r.rows[r.key(item.Name, item.Sport)]; exists {
		return 0, league.ErrDuplicateIdentity
	}
	r.nextID++
	item.ID = r.nextID
	r.rows[r.key(item.Name, item.Sport)] = item
	return item.ID, nil
}

func (r *fakeLeagueRepo) UpdateSourceRef(_ context.Context, id int64, sourceLeagueID string) error {
	r.backfilled[id] = sourceLeagueID
	for key, item := range r.rows {
		if item.ID == id {
			item.SourceLeagueID = sourceLeagueID
			r.rows[key] = item
		}
	}
	return nil
}

type fakeTeamRepo struct {
	rows       map[string]team.Team
	nextID     int64
	insertErr  error
	backfilled map[int64]string
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{
		rows:       make(map[string]team.Team),
		backfilled: make(map[int64]string),
	}
}

func (r *fakeTeamRepo) key(name, sport string) string { return name + "|" + sport }

func (r *fakeTeamRepo) GetByIdentity(_ context.Context, name, sport string) (team.Team, bool, error) {
	item, ok := r.rows[r.key(name, sport)]
	return item, ok, nil
}

func (r *fakeTeamRepo) Insert(_ context.Context, item team.Team) (int64, error) {
	if r.insertErr != nil {
		err := r.insertErr
		r.insertErr = nil
		return 0, err
	}
	if _, exists := r.rows[r.key(item.Name, item.Sport)]; exists {
		return 0, team.ErrDuplicateIdentity
	}
	r.nextID++
	item.ID = r.nextID
	r.rows[r.key(item.Name, item.Sport)] = item
	return item.ID, nil
}

func (r *fakeTeamRepo) UpdateSourceRef(_ context.Context, id int64, sourceTeamID string) error {
	r.backfilled[id] = sourceTeamID
	for key, item := range r.rows {
		if item.ID == id {
			item.SourceTeamID = sourceTeamID
			r.rows[key] = item
		}
	}
	return nil
}

func TestResolverService_ResolveLeague(t *testing.T) {
	ctx := context.Background()

	t.Run("creates missing league", func(t *testing.T) {
		leagues := newFakeLeagueRepo()
		svc := NewResolverService(leagues, newFakeTeamRepo(), nil)

		id, err := svc.ResolveLeague(ctx, ResolveInput{
			Kind:   KindLeague,
			Name:   "Premier League",
			Sport:  "Football",
			Source: "FootballDataOrg",
		})
		if err != nil {
			t.Fatalf("resolve league: %v", err)
		}
		if id != 1 {
			t.Fatalf("unexpected league id: got=%d want=1", id)
		}
	})

	t.Run("reuses existing league", func(t *testing.T) {
		leagues := newFakeLeagueRepo()
		svc := NewResolverService(leagues, newFakeTeamRepo(), nil)

		first, err := svc.ResolveLeague(ctx, ResolveInput{Name: "La Liga", Sport: "Football"})
		if err != nil {
			t.Fatalf("first resolve: %v", err)
		}
		second, err := svc.ResolveLeague(ctx, ResolveInput{Name: "La Liga", Sport: "Football"})
		if err != nil {
			t.Fatalf("second resolve: %v", err)
		}
		if first != second {
			t.Fatalf("expected stable id: first=%d second=%d", first, second)
		}
		if len(leagues.rows) != 1 {
			t.Fatalf("unexpected league count: %d", len(leagues.rows))
		}
	})

	t.Run("same name different sport creates distinct rows", func(t *testing.T) {
		leagues := newFakeLeagueRepo()
		svc := NewResolverService(leagues, newFakeTeamRepo(), nil)

		footballID, err := svc.ResolveLeague(ctx, ResolveInput{Name: "National League", Sport: "Football"})
		if err != nil {
			t.Fatalf("resolve football league: %v", err)
		}
		basketballID, err := svc.ResolveLeague(ctx, ResolveInput{Name: "National League", Sport: "Basketball"})
		if err != nil {
			t.Fatalf("resolve basketball league: %v", err)
		}
		if footballID == basketballID {
			t.Fatalf("expected distinct ids, both got %d", footballID)
		}
	})

	t.Run("backfills missing source ref", func(t *testing.T) {
		leagues := newFakeLeagueRepo()
		svc := NewResolverService(leagues, newFakeTeamRepo(), nil)

		id, err := svc.ResolveLeague(ctx, ResolveInput{Name: "Serie A", Sport: "Football"})
		if err != nil {
			t.Fatalf("first resolve: %v", err)
		}
		if _, err := svc.ResolveLeague(ctx, ResolveInput{
			Name:        "Serie A",
			Sport:       "Football",
			SourceRefID: "SA",
		}); err != nil {
			t.Fatalf("second resolve: %v", err)
		}
		if leagues.backfilled[id] != "SA" {
			t.Fatalf("expected source ref backfill, got %q", leagues.backfilled[id])
		}
	})

	t.Run("stale source ref is replaced", func(t *testing.T) {
		leagues := newFakeLeagueRepo()
		svc := NewResolverService(leagues, newFakeTeamRepo(), nil)

		id, err := svc.ResolveLeague(ctx, ResolveInput{Name: "Serie A", Sport: "Football", SourceRefID: "old-99"})
		if err != nil {
			t.Fatalf("first resolve: %v", err)
		}
		if _, err := svc.ResolveLeague(ctx, ResolveInput{
			Name:        "Serie A",
			Sport:       "Football",
			SourceRefID: "new-2021",
		}); err != nil {
			t.Fatalf("second resolve: %v", err)
		}
		if leagues.backfilled[id] != "new-2021" {
			t.Fatalf("expected stored source ref to move to the new id, got %q", leagues.backfilled[id])
		}
	})

	t.Run("duplicate insert race re-reads winner", func(t *testing.T) {
		leagues := newFakeLeagueRepo()
		// A concurrent writer claims the identity between our read and insert:
		// the initial read misses, the insert hits the unique index, and the
		// re-read finds the winning row.
		leagues.rows[leagues.key("Bundesliga", "Football")] = league.League{ID: 42, Name: "Bundesliga", Sport: "Football"}
		leagues.missOnce = true
		leagues.insertErr = league.ErrDuplicateIdentity

		svc := NewResolverService(leagues, newFakeTeamRepo(), nil)
		id, err := svc.ResolveLeague(ctx, ResolveInput{Name: "Bundesliga", Sport: "Football"})
		if err != nil {
			t.Fatalf("resolve league: %v", err)
		}
		if id != 42 {
			t.Fatalf("unexpected winner id: got=%d want=42", id)
		}
	})

	t.Run("empty identity rejected", func(t *testing.T) {
		svc := NewResolverService(newFakeLeagueRepo(), newFakeTeamRepo(), nil)

		if _, err := svc.ResolveLeague(ctx, ResolveInput{Name: "  ", Sport: "Football"}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if _, err := svc.ResolveLeague(ctx, ResolveInput{Name: "Ligue 1", Sport: ""}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestResolverService_ResolveTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and reuses team", func(t *testing.T) {
		teams := newFakeTeamRepo()
		svc := NewResolverService(newFakeLeagueRepo(), teams, nil)

		first, err := svc.ResolveTeam(ctx, ResolveInput{Name: "Arsenal", Sport: "Football", LeagueID: 3})
		if err != nil {
			t.Fatalf("first resolve: %v", err)
		}
		second, err := svc.ResolveTeam(ctx, ResolveInput{Name: "Arsenal", Sport: "Football"})
		if err != nil {
			t.Fatalf("second resolve: %v", err)
		}
		if first != second {
			t.Fatalf("expected stable id: first=%d second=%d", first, second)
		}
	})

	t.Run("backfills missing source ref", func(t *testing.T) {
		teams := newFakeTeamRepo()
		svc := NewResolverService(newFakeLeagueRepo(), teams, nil)

		id, err := svc.ResolveTeam(ctx, ResolveInput{Name: "Chelsea", Sport: "Football"})
		if err != nil {
			t.Fatalf("first resolve: %v", err)
		}
		if _, err := svc.ResolveTeam(ctx, ResolveInput{Name: "Chelsea", Sport: "Football", SourceRefID: "61"}); err != nil {
			t.Fatalf("second resolve: %v", err)
		}
		if teams.backfilled[id] != "61" {
			t.Fatalf("expected source ref backfill, got %q", teams.backfilled[id])
		}
	})

	t.Run("differing source ref is updated", func(t *testing.T) {
		teams := newFakeTeamRepo()
		svc := NewResolverService(newFakeLeagueRepo(), teams, nil)

		id, err := svc.ResolveTeam(ctx, ResolveInput{Name: "Liverpool", Sport: "Football", SourceRefID: "64"})
		if err != nil {
			t.Fatalf("first resolve: %v", err)
		}
		if _, err := svc.ResolveTeam(ctx, ResolveInput{Name: "Liverpool", Sport: "Football", SourceRefID: "other-999"}); err != nil {
			t.Fatalf("second resolve: %v", err)
		}
		if teams.backfilled[id] != "other-999" {
			t.Fatalf("expected source ref update, got %q", teams.backfilled[id])
		}
	})

	t.Run("matching source ref is left alone", func(t *testing.T) {
		teams := newFakeTeamRepo()
		svc := NewResolverService(newFakeLeagueRepo(), teams, nil)

		id, err := svc.ResolveTeam(ctx, ResolveInput{Name: "Everton", Sport: "Football", SourceRefID: "62"})
		if err != nil {
			t.Fatalf("first resolve: %v", err)
		}
		if _, err := svc.ResolveTeam(ctx, ResolveInput{Name: "Everton", Sport: "Football", SourceRefID: "62"}); err != nil {
			t.Fatalf("second resolve: %v", err)
		}
		if _, touched := teams.backfilled[id]; touched {
			t.Fatalf("expected no write for matching source ref")
		}
	})
}

func TestResolverService_ResolveDispatch(t *testing.T) {
	ctx := context.Background()
	svc := NewResolverService(newFakeLeagueRepo(), newFakeTeamRepo(), nil)

	if _, err := svc.Resolve(ctx, ResolveInput{Kind: KindLeague, Name: "MLS", Sport: "Football"}); err != nil {
		t.Fatalf("resolve league via dispatch: %v", err)
	}
	if _, err := svc.Resolve(ctx, ResolveInput{Kind: KindTeam, Name: "LA Galaxy", Sport: "Football"}); err != nil {
		t.Fatalf("resolve team via dispatch: %v", err)
	}
	if _, err := svc.Resolve(ctx, ResolveInput{Kind: EntityKind(99), Name: "x", Sport: "y"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown kind, got %v", err)
	}
}
