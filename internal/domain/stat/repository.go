package stat

import "context"

// Repository exposes the query-then-decide primitives the stat writer needs;
// the unique (match, team, stat_type, period) index backstops races.
type Repository interface {
	GetByKey(ctx context.Context, matchID, teamID int64, statType, period string) (Stat, bool, error)
	Insert(ctx context.Context, item Stat) (int64, error)
	UpdateValue(ctx context.Context, id int64, value string) error
}
