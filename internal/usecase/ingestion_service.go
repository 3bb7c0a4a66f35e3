package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/predictaball/datacore/internal/domain/ingest"
	"github.com/predictaball/datacore/internal/domain/match"
	"github.com/predictaball/datacore/internal/domain/odds"
	"github.com/predictaball/datacore/internal/domain/stat"
	"github.com/predictaball/datacore/internal/platform/logging"
)

// RowOutcome is the result of writing one record against the store.
type RowOutcome int

const (
	OutcomeInserted RowOutcome = iota + 1
	OutcomeUpdated
	OutcomeSkipped
)

type Counts struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
}

func (c *Counts) add(outcome RowOutcome) {
	switch outcome {
	case OutcomeInserted:
		c.Inserted++
	case OutcomeUpdated:
		c.Updated++
	case OutcomeSkipped:
		c.Skipped++
	}
}

// RunSummary reports what one ingestion batch did. Counts are only non-zero
// when the match transaction committed; a failed commit zeroes everything
// because none of the writes survived.
type RunSummary struct {
	Source  string `json:"source"`
	Matches Counts `json:"matches"`
	Odds    Counts `json:"odds"`
	Stats   Counts `json:"stats"`
	Failed  int    `json:"failed"`
}

type entityResolver interface {
	Resolve(ctx context.Context, in ResolveInput) (int64, error)
}

// IngestionService turns normalized records into idempotent store writes.
// Match rows for one batch share a transaction; odds and stats are written
// after that transaction commits so a late price failure cannot unwind
// already-persisted results.
type IngestionService struct {
	resolver  entityResolver
	matchRepo match.Repository
	oddsRepo  odds.Repository
	statRepo  stat.Repository
	validate  *validator.Validate
	logger    *logging.Logger

	defaultSport string
	markMock     bool
}

func NewIngestionService(
	resolver entityResolver,
	matchRepo match.Repository,
	oddsRepo odds.Repository,
	statRepo stat.Repository,
	defaultSport string,
	markMock bool,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		resolver:     resolver,
		matchRepo:    matchRepo,
		oddsRepo:     oddsRepo,
		statRepo:     statRepo,
		validate:     validator.New(),
		logger:       logger,
		defaultSport: strings.TrimSpace(defaultSport),
		markMock:     markMock,
	}
}

// ingestedRow links a committed match row back to its record so odds and
// stats can be attached after the batch transaction lands.
type ingestedRow struct {
	matchID    int64
	homeTeamID int64
	awayTeamID int64
	record     ingest.Record
}

func (s *IngestionService) RunBatch(ctx context.Context, source string, records []ingest.Record) (RunSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.RunBatch")
	defer span.End()

	source = strings.TrimSpace(source)
	if source == "" {
		return RunSummary{}, fmt.Errorf("%w: source is required", ErrInvalidInput)
	}

	summary := RunSummary{Source: source}
	if len(records) == 0 {
		return summary, nil
	}

	batch, err := s.matchRepo.Begin(ctx)
	if err != nil {
		return summary, fmt.Errorf("%w: begin match batch: %w", ErrPersistence, err)
	}
	defer batch.Rollback()

	committed := make([]ingestedRow, 0, len(records))
	for idx := range records {
		record := records[idx]
		record.Normalize()
		if record.Source == "" {
			record.Source = source
		}
		if record.Sport == "" {
			record.Sport = s.defaultSport
		}

		row, outcome, err := s.writeMatch(ctx, batch, record)
		if err != nil {
			summary.Failed++
			s.logger.WarnContext(ctx, "match row rejected",
				"source", source,
				"home", record.HomeTeam,
				"away", record.AwayTeam,
				"error", err,
			)
			continue
		}
		summary.Matches.add(outcome)
		committed = append(committed, row)
	}

	if err := batch.Commit(); err != nil {
		// Nothing from this batch survived; report it that way.
		failed := summary.Failed + summary.Matches.Inserted + summary.Matches.Updated + summary.Matches.Skipped
		return RunSummary{Source: source, Failed: failed}, fmt.Errorf("%w: %v", ErrCommit, err)
	}

	for _, row := range committed {
		s.writeSideChannels(ctx, row, &summary)
	}

	s.logger.InfoContext(ctx, "ingestion batch finished",
		"source", source,
		"records", len(records),
		"matches_inserted", summary.Matches.Inserted,
		"matches_updated", summary.Matches.Updated,
		"matches_skipped", summary.Matches.Skipped,
		"failed", summary.Failed,
	)
	return summary, nil
}

func (s *IngestionService) writeMatch(ctx context.Context, batch match.Batch, record ingest.Record) (ingestedRow, RowOutcome, error) {
	if err := s.validate.Struct(record); err != nil {
		return ingestedRow{}, 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	leagueID, err := s.resolver.Resolve(ctx, ResolveInput{
		Kind:        KindLeague,
		Name:        record.LeagueName,
		Sport:       record.Sport,
		Country:     record.LeagueCountry,
		Source:      record.Source,
		SourceRefID: record.LeagueSourceID,
	})
	if err != nil {
		return ingestedRow{}, 0, fmt.Errorf("resolve league: %w", err)
	}

	homeTeamID, err := s.resolver.Resolve(ctx, ResolveInput{
		Kind:        KindTeam,
		Name:        record.HomeTeam,
		Sport:       record.Sport,
		Country:     record.TeamCountry,
		LeagueID:    leagueID,
		Source:      record.Source,
		SourceRefID: record.HomeTeamSourceID,
	})
	if err != nil {
		return ingestedRow{}, 0, fmt.Errorf("resolve home team: %w", err)
	}
	awayTeamID, err := s.resolver.Resolve(ctx, ResolveInput{
		Kind:        KindTeam,
		Name:        record.AwayTeam,
		Sport:       record.Sport,
		Country:     record.TeamCountry,
		LeagueID:    leagueID,
		Source:      record.Source,
		SourceRefID: record.AwayTeamSourceID,
	})
	if err != nil {
		return ingestedRow{}, 0, fmt.Errorf("resolve away team: %w", err)
	}
	if homeTeamID == awayTeamID {
		return ingestedRow{}, 0, fmt.Errorf("%w: home and away resolve to the same team %q", ErrInvalidInput, record.HomeTeam)
	}

	status := match.NormalizeStatus(record.Status)
	if status == "" {
		status = match.StatusScheduled
	}
	// A finished match without both scores cannot yield a winner; keep it out
	// of completed-match queries until the scores arrive.
	if match.IsFinishedStatus(status) && (record.HomeScore == nil || record.AwayScore == nil) {
		status = match.StatusUnknownScore
	}

	item := match.Match{
		LeagueID:      leagueID,
		HomeTeamID:    homeTeamID,
		AwayTeamID:    awayTeamID,
		KickoffUTC:    record.KickoffUTC.UTC(),
		Status:        status,
		HomeScore:     record.HomeScore,
		AwayScore:     record.AwayScore,
		Winner:        match.DeriveWinner(record.HomeScore, record.AwayScore),
		Stage:         record.Stage,
		Matchday:      record.Matchday,
		Source:        record.Source,
		SourceMatchID: record.SourceMatchID,
		IsMock:        s.markMock,
	}
	if err := item.Validate(); err != nil {
		return ingestedRow{}, 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	existing, found, err := s.lookupMatch(ctx, batch, item)
	if err != nil {
		return ingestedRow{}, 0, fmt.Errorf("%w: lookup match: %w", ErrPersistence, err)
	}

	row := ingestedRow{homeTeamID: homeTeamID, awayTeamID: awayTeamID, record: record}
	if !found {
		id, err := batch.Insert(ctx, item)
		if err != nil {
			return ingestedRow{}, 0, fmt.Errorf("%w: insert match: %w", ErrPersistence, err)
		}
		row.matchID = id
		return row, OutcomeInserted, nil
	}

	row.matchID = existing.ID
	change, dirty := diffMatch(existing, item)
	if !dirty {
		return row, OutcomeSkipped, nil
	}
	if err := batch.Update(ctx, existing.ID, change); err != nil {
		return ingestedRow{}, 0, fmt.Errorf("%w: update match id=%d: %w", ErrPersistence, existing.ID, err)
	}
	return row, OutcomeUpdated, nil
}

// lookupMatch prefers the source reference and falls back to the natural key,
// so a source that starts shipping stable ids still converges on the rows it
// created before it did.
func (s *IngestionService) lookupMatch(ctx context.Context, batch match.Batch, item match.Match) (match.Match, bool, error) {
	if item.HasSourceRef() {
		existing, found, err := batch.GetBySourceRef(ctx, item.Source, item.SourceMatchID)
		if err != nil || found {
			return existing, found, err
		}
	}
	return batch.GetByNaturalKey(ctx, item.KickoffUTC, item.HomeTeamID, item.AwayTeamID, item.Source)
}

func diffMatch(existing, incoming match.Match) (match.ChangeSet, bool) {
	change := match.ChangeSet{
		Status:     incoming.Status,
		HomeScore:  incoming.HomeScore,
		AwayScore:  incoming.AwayScore,
		Winner:     incoming.Winner,
		KickoffUTC: incoming.KickoffUTC,
	}

	dirty := existing.Status != incoming.Status ||
		existing.Winner != incoming.Winner ||
		!existing.KickoffUTC.Equal(incoming.KickoffUTC) ||
		!scoreEqual(existing.HomeScore, incoming.HomeScore) ||
		!scoreEqual(existing.AwayScore, incoming.AwayScore)
	return change, dirty
}

func scoreEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// writeSideChannels attaches odds and stats to an already-committed match
// row. Failures here are row-local: a malformed quote drops that quote only.
func (s *IngestionService) writeSideChannels(ctx context.Context, row ingestedRow, summary *RunSummary) {
	for _, quote := range row.record.Odds {
		outcome, err := s.upsertOdds(ctx, row.matchID, row.record.Source, quote)
		if err != nil {
			summary.Failed++
			s.logger.WarnContext(ctx, "odds quote rejected",
				"match_id", row.matchID,
				"bookmaker", quote.Bookmaker,
				"error", err,
			)
			continue
		}
		summary.Odds.add(outcome)
	}

	for _, line := range row.record.Stats {
		outcome, err := s.upsertStat(ctx, row, line)
		if err != nil {
			summary.Failed++
			s.logger.WarnContext(ctx, "stat line rejected",
				"match_id", row.matchID,
				"stat_type", line.StatType,
				"error", err,
			)
			continue
		}
		summary.Stats.add(outcome)
	}
}

func (s *IngestionService) upsertOdds(ctx context.Context, matchID int64, source string, quote ingest.OddsQuote) (RowOutcome, error) {
	bookmaker := strings.TrimSpace(quote.Bookmaker)
	if bookmaker == "" {
		return 0, fmt.Errorf("%w: bookmaker is required", ErrInvalidInput)
	}
	marketType := strings.TrimSpace(quote.MarketType)
	if marketType == "" {
		marketType = odds.MarketThreeWay
	}

	home, err := parsePrice(quote.HomePrice)
	if err != nil {
		return 0, fmt.Errorf("%w: home price %q: %v", ErrInvalidInput, quote.HomePrice, err)
	}
	draw, err := parsePrice(quote.DrawPrice)
	if err != nil {
		return 0, fmt.Errorf("%w: draw price %q: %v", ErrInvalidInput, quote.DrawPrice, err)
	}
	away, err := parsePrice(quote.AwayPrice)
	if err != nil {
		return 0, fmt.Errorf("%w: away price %q: %v", ErrInvalidInput, quote.AwayPrice, err)
	}

	observedAt := quote.ObservedAt
	if observedAt.IsZero() {
		observedAt = time.Now().UTC()
	}

	item := odds.Odds{
		MatchID:    matchID,
		Bookmaker:  bookmaker,
		MarketType: marketType,
		HomeOdds:   home,
		DrawOdds:   draw,
		AwayOdds:   away,
		ObservedAt: observedAt.UTC(),
		Source:     source,
	}
	if err := item.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	existing, found, err := s.oddsRepo.GetByKey(ctx, matchID, bookmaker, marketType)
	if err != nil {
		return 0, fmt.Errorf("%w: get odds by key: %w", ErrPersistence, err)
	}
	if !found {
		if _, err := s.oddsRepo.Insert(ctx, item); err != nil {
			return 0, fmt.Errorf("%w: insert odds: %w", ErrPersistence, err)
		}
		return OutcomeInserted, nil
	}

	if existing.HomeOdds == item.HomeOdds && existing.DrawOdds == item.DrawOdds && existing.AwayOdds == item.AwayOdds {
		return OutcomeSkipped, nil
	}
	if err := s.oddsRepo.UpdatePrices(ctx, existing.ID, item); err != nil {
		return 0, fmt.Errorf("%w: update odds id=%d: %w", ErrPersistence, existing.ID, err)
	}
	return OutcomeUpdated, nil
}

func (s *IngestionService) upsertStat(ctx context.Context, row ingestedRow, line ingest.StatLine) (RowOutcome, error) {
	statType := strings.TrimSpace(line.StatType)
	value := strings.TrimSpace(line.Value)
	if statType == "" || value == "" {
		return 0, fmt.Errorf("%w: stat type and value are required", ErrInvalidInput)
	}

	var teamID int64
	switch teamName := strings.TrimSpace(line.TeamName); {
	case teamName == "":
		// Match-level stat.
	case strings.EqualFold(teamName, row.record.HomeTeam):
		teamID = row.homeTeamID
	case strings.EqualFold(teamName, row.record.AwayTeam):
		teamID = row.awayTeamID
	default:
		return 0, fmt.Errorf("%w: stat team %q is not a participant", ErrInvalidInput, teamName)
	}

	item := stat.Stat{
		MatchID:  row.matchID,
		TeamID:   teamID,
		StatType: statType,
		Value:    value,
		Period:   strings.TrimSpace(line.Period),
		Source:   row.record.Source,
	}
	if err := item.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	existing, found, err := s.statRepo.GetByKey(ctx, row.matchID, teamID, statType, item.Period)
	if err != nil {
		return 0, fmt.Errorf("%w: get stat by key: %w", ErrPersistence, err)
	}
	if !found {
		if _, err := s.statRepo.Insert(ctx, item); err != nil {
			return 0, fmt.Errorf("%w: insert stat: %w", ErrPersistence, err)
		}
		return OutcomeInserted, nil
	}
	if existing.Value == value {
		return OutcomeSkipped, nil
	}
	if err := s.statRepo.UpdateValue(ctx, existing.ID, value); err != nil {
		return 0, fmt.Errorf("%w: update stat id=%d: %w", ErrPersistence, existing.ID, err)
	}
	return OutcomeUpdated, nil
}

// SeedEntities registers a league and its club list without match rows.
func (s *IngestionService) SeedEntities(ctx context.Context, seed ingest.EntitySeed) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.SeedEntities")
	defer span.End()

	if err := s.validate.Struct(seed); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	sport := strings.TrimSpace(seed.Sport)
	if sport == "" {
		sport = s.defaultSport
	}

	leagueID, err := s.resolver.Resolve(ctx, ResolveInput{
		Kind:        KindLeague,
		Name:        seed.LeagueName,
		Sport:       sport,
		Country:     seed.Country,
		Source:      seed.Source,
		SourceRefID: seed.LeagueSourceID,
	})
	if err != nil {
		return 0, fmt.Errorf("resolve league: %w", err)
	}

	resolved := 0
	for _, teamName := range seed.Teams {
		teamName = strings.TrimSpace(teamName)
		if teamName == "" {
			continue
		}
		if _, err := s.resolver.Resolve(ctx, ResolveInput{
			Kind:     KindTeam,
			Name:     teamName,
			Sport:    sport,
			Country:  seed.Country,
			LeagueID: leagueID,
			Source:   seed.Source,
		}); err != nil {
			return resolved, fmt.Errorf("resolve team %q: %w", teamName, err)
		}
		resolved++
	}
	return resolved, nil
}

func parsePrice(raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	return value, nil
}
