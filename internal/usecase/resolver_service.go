package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/predictaball/datacore/internal/domain/league"
	"github.com/predictaball/datacore/internal/domain/team"
	"github.com/predictaball/datacore/internal/platform/logging"
)

// EntityKind selects the target table for a resolution request.
type EntityKind int

const (
	KindLeague EntityKind = iota + 1
	KindTeam
)

func (k EntityKind) String() string {
	switch k {
	case KindLeague:
		return "league"
	case KindTeam:
		return "team"
	default:
		return "unknown"
	}
}

// ResolveInput carries the identity and provenance of one entity to resolve.
// LeagueID and ShortName are only meaningful for KindTeam.
type ResolveInput struct {
	Kind        EntityKind
	Name        string
	Sport       string
	Country     string
	ShortName   string
	LeagueID    int64
	Source      string
	SourceRefID string
}

// ResolverService maps source-provided entity names onto canonical row ids.
// Resolution is get-or-create: an existing row is reused as-is, a missing row
// is inserted, and a unique-violation race resolves by re-reading the winner.
type ResolverService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	logger     *logging.Logger
}

func NewResolverService(leagueRepo league.Repository, teamRepo team.Repository, logger *logging.Logger) *ResolverService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ResolverService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		logger:     logger,
	}
}

func (s *ResolverService) Resolve(ctx context.Context, in ResolveInput) (int64, error) {
	switch in.Kind {
	case KindLeague:
		return s.ResolveLeague(ctx, in)
	case KindTeam:
		return s.ResolveTeam(ctx, in)
	default:
		return 0, fmt.Errorf("%w: unsupported entity kind %d", ErrInvalidInput, in.Kind)
	}
}

func (s *ResolverService) ResolveLeague(ctx context.Context, in ResolveInput) (int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolverService.ResolveLeague")
	defer span.End()

	name := strings.TrimSpace(in.Name)
	sport := strings.TrimSpace(in.Sport)
	if name == "" || sport == "" {
		return 0, fmt.Errorf("%w: league name and sport are required", ErrInvalidInput)
	}

	existing, found, err := s.leagueRepo.GetByIdentity(ctx, name, sport)
	if err != nil {
		return 0, fmt.Errorf("get league by identity: %w", err)
	}
	if found {
		// A supplied source id overwrites a missing or stale stored one.
		if ref := strings.TrimSpace(in.SourceRefID); ref != "" && existing.SourceLeagueID != ref {
			if err := s.leagueRepo.UpdateSourceRef(ctx, existing.ID, ref); err != nil {
				return 0, fmt.Errorf("update league source ref: %w", err)
			}
		}
		return existing.ID, nil
	}

	item := league.League{
		Name:           name,
		Sport:          sport,
		Country:        strings.TrimSpace(in.Country),
		Source:         strings.TrimSpace(in.Source),
		SourceLeagueID: strings.TrimSpace(in.SourceRefID),
	}
	id, err := s.leagueRepo.Insert(ctx, item)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, league.ErrDuplicateIdentity) {
		return 0, fmt.Errorf("insert league name=%s sport=%s: %w", name, sport, err)
	}

	// Lost the insert race; the winning row is authoritative.
	s.logger.DebugContext(ctx, "league insert raced, re-reading", "name", name, "sport", sport)
	winner, found, err := s.leagueRepo.GetByIdentity(ctx, name, sport)
	if err != nil {
		return 0, fmt.Errorf("re-read league after duplicate: %w", err)
	}
	if !found {
		return 0, fmt.Errorf("%w: league name=%s sport=%s vanished after duplicate insert", ErrResolution, name, sport)
	}
	return winner.ID, nil
}

func (s *ResolverService) ResolveTeam(ctx context.Context, in ResolveInput) (int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolverService.ResolveTeam")
	defer span.End()

	name := strings.TrimSpace(in.Name)
	sport := strings.TrimSpace(in.Sport)
	if name == "" || sport == "" {
		return 0, fmt.Errorf("%w: team name and sport are required", ErrInvalidInput)
	}

	existing, found, err := s.teamRepo.GetByIdentity(ctx, name, sport)
	if err != nil {
		return 0, fmt.Errorf("get team by identity: %w", err)
	}
	if found {
		if ref := strings.TrimSpace(in.SourceRefID); ref != "" && existing.SourceTeamID != ref {
			if err := s.teamRepo.UpdateSourceRef(ctx, existing.ID, ref); err != nil {
				return 0, fmt.Errorf("update team source ref: %w", err)
			}
		}
		return existing.ID, nil
	}

	item := team.Team{
		Name:         name,
		Sport:        sport,
		ShortName:    strings.TrimSpace(in.ShortName),
		Country:      strings.TrimSpace(in.Country),
		LeagueID:     in.LeagueID,
		Source:       strings.TrimSpace(in.Source),
		SourceTeamID: strings.TrimSpace(in.SourceRefID),
	}
	id, err := s.teamRepo.Insert(ctx, item)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, team.ErrDuplicateIdentity) {
		return 0, fmt.Errorf("insert team name=%s sport=%s: %w", name, sport, err)
	}

	s.logger.DebugContext(ctx, "team insert raced, re-reading", "name", name, "sport", sport)
	winner, found, err := s.teamRepo.GetByIdentity(ctx, name, sport)
	if err != nil {
		return 0, fmt.Errorf("re-read team after duplicate: %w", err)
	}
	if !found {
		return 0, fmt.Errorf("%w: team name=%s sport=%s vanished after duplicate insert", ErrResolution, name, sport)
	}
	return winner.ID, nil
}
