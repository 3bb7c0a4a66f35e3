package league

import "context"

// Repository describes league persistence needs from the resolver.
type Repository interface {
	GetByIdentity(ctx context.Context, name, sport string) (League, bool, error)
	Insert(ctx context.Context, item League) (int64, error)
	UpdateSourceRef(ctx context.Context, id int64, sourceLeagueID string) error
}
