package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/predictaball/datacore/internal/domain/match"
	qb "github.com/predictaball/datacore/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// Begin opens the transaction one ingestion batch writes its match rows in.
func (r *MatchRepository) Begin(ctx context.Context) (match.Batch, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin match transaction: %w", err)
	}
	return &matchBatch{tx: tx}, nil
}

func (r *MatchRepository) List(ctx context.Context, filter match.Filter) ([]match.Match, error) {
	builder := qb.Select("m.*").From("matches m")
	applyMatchFilter(builder, filter)
	builder.OrderBy("m.kickoff_utc", "m.id")

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) ListDetailed(ctx context.Context, filter match.Filter) ([]match.Detailed, error) {
	builder := qb.Select(
		"m.*",
		"l.name AS league_name",
		"ht.name AS home_team_name",
		"aw.name AS away_team_name",
	).From("matches m").
		Join("JOIN leagues l ON l.id = m.league_id").
		Join("JOIN teams ht ON ht.id = m.home_team_id").
		Join("JOIN teams aw ON aw.id = m.away_team_id")
	applyMatchFilter(builder, filter)
	builder.OrderBy("m.kickoff_utc", "m.id")

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select detailed matches query: %w", err)
	}

	var rows []matchDetailedTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select detailed matches: %w", err)
	}

	out := make([]match.Detailed, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func applyMatchFilter(builder *qb.SelectBuilder, filter match.Filter) {
	if filter.LeagueID > 0 {
		builder.Where(qb.Eq("m.league_id", filter.LeagueID))
	}
	if filter.LeagueName != "" {
		builder.Where(qb.Expr("m.league_id IN (SELECT id FROM leagues WHERE name = ?)", filter.LeagueName))
	}
	if !filter.From.IsZero() {
		builder.Where(qb.Gte("m.kickoff_utc", filter.From.UTC()))
	}
	if !filter.To.IsZero() {
		builder.Where(qb.Lt("m.kickoff_utc", filter.To.UTC()))
	}
	if !filter.IncludeMock {
		builder.Where(qb.Eq("m.is_mock", false))
	}
}

// matchBatch runs all match writes of one ingestion batch on a single
// transaction, so lookups observe rows staged earlier in the same batch and
// a failed commit drops everything together.
type matchBatch struct {
	tx *sqlx.Tx
}

func (b *matchBatch) GetBySourceRef(ctx context.Context, source, sourceMatchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("source", source),
			qb.Eq("source_match_id", sourceMatchID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match by source ref query: %w", err)
	}

	var row matchTableModel
	if err := b.tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("select match by source ref: %w", err)
	}
	return row.toDomain(), true, nil
}

func (b *matchBatch) GetByNaturalKey(ctx context.Context, kickoff time.Time, homeTeamID, awayTeamID int64, source string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("kickoff_utc", kickoff.UTC()),
			qb.Eq("home_team_id", homeTeamID),
			qb.Eq("away_team_id", awayTeamID),
			qb.Eq("source", source),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match by natural key query: %w", err)
	}

	var row matchTableModel
	if err := b.tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("select match by natural key: %w", err)
	}
	return row.toDomain(), true, nil
}

func (b *matchBatch) Insert(ctx context.Context, item match.Match) (int64, error) {
	model := matchInsertModel{
		LeagueID:      item.LeagueID,
		HomeTeamID:    item.HomeTeamID,
		AwayTeamID:    item.AwayTeamID,
		KickoffUTC:    item.KickoffUTC.UTC(),
		Status:        item.Status,
		HomeScore:     nullIntFromPtr(item.HomeScore),
		AwayScore:     nullIntFromPtr(item.AwayScore),
		Winner:        nullString(item.Winner),
		Stage:         nullString(item.Stage),
		Matchday:      nullInt64(int64(item.Matchday)),
		Source:        item.Source,
		SourceMatchID: nullString(item.SourceMatchID),
		IsMock:        item.IsMock,
	}

	query, args, err := qb.InsertModel("matches", model, "RETURNING id")
	if err != nil {
		return 0, fmt.Errorf("build insert match query: %w", err)
	}

	var id int64
	if err := b.tx.GetContext(ctx, &id, query, args...); err != nil {
		if isUniqueViolation(err) {
			return 0, match.ErrDuplicateKey
		}
		return 0, fmt.Errorf("insert match: %w", err)
	}
	return id, nil
}

func (b *matchBatch) Update(ctx context.Context, id int64, change match.ChangeSet) error {
	query, args, err := qb.Update("matches").
		Set("status", change.Status).
		Set("home_score", nullIntFromPtr(change.HomeScore)).
		Set("away_score", nullIntFromPtr(change.AwayScore)).
		Set("winner", nullString(change.Winner)).
		Set("kickoff_utc", change.KickoffUTC.UTC()).
		Set("updated_at", time.Now().UTC()).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}

	if _, err := b.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update match id=%d: %w", id, err)
	}
	return nil
}

func (b *matchBatch) Commit() error {
	return b.tx.Commit()
}

func (b *matchBatch) Rollback() error {
	if err := b.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}
