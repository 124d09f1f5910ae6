package kudos

import (
	"context"
	"time"
)

// Ledger is the reaction fact store, the sole source of truth for every
// derived statistic. The Postgres implementation lives in repository.go,
// the in-memory one in memory.go.
//
// Add is idempotent: inserting an existing (messageID, reactorID) pair is a
// silent no-op. Remove of an absent pair is also a no-op. Aggregate reads
// return unordered tallies; ordering is the service's job so that both
// backends share one formula.
type Ledger interface {
	Add(ctx context.Context, fact Reaction) error
	Remove(ctx context.Context, messageID, reactorID string) error
	CountForMessage(ctx context.Context, messageID string) (int, error)

	// TallyForUser aggregates facts crediting or given by one user.
	TallyForUser(ctx context.Context, userID string) (Tally, error)
	// AllTallies aggregates over the union of all users appearing as
	// author or reactor.
	AllTallies(ctx context.Context) ([]Tally, error)
	// TopMessages counts reactions per message created at or after since,
	// most-reacted first, at most limit rows.
	TopMessages(ctx context.Context, since time.Time, limit int) ([]TopMessage, error)
}
