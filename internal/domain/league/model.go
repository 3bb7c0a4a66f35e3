package league

import (
	"fmt"
	"strings"
)

// League is a competition a match belongs to. Identity is (name, sport);
// country and the source-native id are provenance attributes that may be
// backfilled after first sighting. Leagues are never deleted so that
// historical matches keep resolving.
type League struct {
	ID             int64
	Name           string
	Sport          string
	Country        string
	Source         string
	SourceLeagueID string
}

// ErrDuplicateIdentity marks an insert that lost the (name, sport)
// uniqueness race to a concurrent writer.
var ErrDuplicateIdentity = fmt.Errorf("league identity already exists")

func (l League) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("league name is required")
	}
	if strings.TrimSpace(l.Sport) == "" {
		return fmt.Errorf("league sport is required")
	}

	return nil
}
