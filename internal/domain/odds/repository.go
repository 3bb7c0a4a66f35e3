package odds

import "context"

// Repository exposes the query-then-decide primitives the odds writer needs;
// the unique (match, bookmaker, market) index backstops races.
type Repository interface {
	GetByKey(ctx context.Context, matchID int64, bookmaker, marketType string) (Odds, bool, error)
	Insert(ctx context.Context, item Odds) (int64, error)
	UpdatePrices(ctx context.Context, id int64, item Odds) error
}
