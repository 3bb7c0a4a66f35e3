package team

import "context"

// Repository describes team persistence needs from the resolver.
type Repository interface {
	GetByIdentity(ctx context.Context, name, sport string) (Team, bool, error)
	Insert(ctx context.Context, item Team) (int64, error)
	UpdateSourceRef(ctx context.Context, id int64, sourceTeamID string) error
}
