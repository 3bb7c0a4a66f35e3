package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/predictaball/datacore/internal/domain/team"
	qb "github.com/predictaball/datacore/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByIdentity(ctx context.Context, name, sport string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("name", name),
			qb.Eq("sport", sport),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team by identity: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *TeamRepository) Insert(ctx context.Context, item team.Team) (int64, error) {
	model := teamInsertModel{
		Name:         item.Name,
		Sport:        item.Sport,
		ShortName:    nullString(item.ShortName),
		Country:      nullString(item.Country),
		LeagueID:     nullInt64(item.LeagueID),
		Source:       nullString(item.Source),
		SourceTeamID: nullString(item.SourceTeamID),
	}

	query, args, err := qb.InsertModel("teams", model, "RETURNING id")
	if err != nil {
		return 0, fmt.Errorf("build insert team query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		if isUniqueViolation(err) {
			return 0, team.ErrDuplicateIdentity
		}
		return 0, fmt.Errorf("insert team: %w", err)
	}

	return id, nil
}

func (r *TeamRepository) UpdateSourceRef(ctx context.Context, id int64, sourceTeamID string) error {
	query, args, err := qb.Update("teams").
		Set("source_team_id", nullString(sourceTeamID)).
		Set("updated_at", time.Now().UTC()).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team source ref query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update team source ref id=%d: %w", id, err)
	}

	return nil
}
