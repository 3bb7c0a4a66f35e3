package match

import (
	"context"
	"time"
)

// Filter narrows read-side match queries. Zero values mean "no constraint".
type Filter struct {
	LeagueID    int64
	LeagueName  string
	From        time.Time
	To          time.Time
	IncludeMock bool
}

// Detailed is a match joined with the display names the feature table needs.
type Detailed struct {
	Match
	LeagueName   string
	HomeTeamName string
	AwayTeamName string
}

// ChangeSet carries the mutable fields of a match. Identity fields are not
// representable here on purpose.
type ChangeSet struct {
	Status     string
	HomeScore  *int
	AwayScore  *int
	Winner     string
	KickoffUTC time.Time
}

// Repository exposes match reads plus transactional batch writes. One Batch
// spans one source-ingestion run; its writes become visible only at Commit.
type Repository interface {
	Begin(ctx context.Context) (Batch, error)
	List(ctx context.Context, f Filter) ([]Match, error)
	ListDetailed(ctx context.Context, f Filter) ([]Detailed, error)
}

// Batch is the write scope of a single ingestion run.
type Batch interface {
	GetBySourceRef(ctx context.Context, source, sourceMatchID string) (Match, bool, error)
	GetByNaturalKey(ctx context.Context, kickoff time.Time, homeTeamID, awayTeamID int64, source string) (Match, bool, error)
	Insert(ctx context.Context, item Match) (int64, error)
	Update(ctx context.Context, id int64, changes ChangeSet) error
	Commit() error
	Rollback() error
}
