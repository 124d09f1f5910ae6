package kudos

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryLedger is an in-memory Ledger with the same observable semantics as
// the Postgres repository. It backs the engine tests and is handy for
// running the bot without a database.
type MemoryLedger struct {
	mu    sync.RWMutex
	facts []Reaction
	// now is swappable so tests can control the reaction timestamps.
	now func() time.Time
}

var _ Ledger = (*MemoryLedger)(nil)

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{now: time.Now}
}

// SetClock replaces the timestamp source. Test use only.
func (m *MemoryLedger) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *MemoryLedger) Add(_ context.Context, fact Reaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, f := range m.facts {
		if f.MessageID == fact.MessageID && f.ReactorID == fact.ReactorID {
			return nil // duplicate pair, same no-op as ON CONFLICT DO NOTHING
		}
	}
	if fact.CreatedAt.IsZero() {
		fact.CreatedAt = m.now()
	}
	fact.ID = int64(len(m.facts) + 1)
	m.facts = append(m.facts, fact)
	return nil
}

func (m *MemoryLedger) Remove(_ context.Context, messageID, reactorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, f := range m.facts {
		if f.MessageID == messageID && f.ReactorID == reactorID {
			m.facts = append(m.facts[:i], m.facts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MemoryLedger) CountForMessage(_ context.Context, messageID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, f := range m.facts {
		if f.MessageID == messageID {
			count++
		}
	}
	return count, nil
}

func (m *MemoryLedger) TallyForUser(_ context.Context, userID string) (Tally, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tallyLocked(userID), nil
}

func (m *MemoryLedger) AllTallies(_ context.Context) ([]Tally, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	var tallies []Tally
	for _, f := range m.facts {
		for _, id := range []string{f.AuthorID, f.ReactorID} {
			if !seen[id] {
				seen[id] = true
				tallies = append(tallies, m.tallyLocked(id))
			}
		}
	}
	return tallies, nil
}

func (m *MemoryLedger) TopMessages(_ context.Context, since time.Time, limit int) ([]TopMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byMessage := make(map[string]*TopMessage)
	for _, f := range m.facts {
		if f.CreatedAt.Before(since) {
			continue
		}
		entry, ok := byMessage[f.MessageID]
		if !ok {
			entry = &TopMessage{
				MessageID: f.MessageID,
				ChannelID: f.ChannelID,
				AuthorID:  f.AuthorID,
			}
			byMessage[f.MessageID] = entry
		}
		entry.ReactionCount++
	}

	top := make([]TopMessage, 0, len(byMessage))
	for _, entry := range byMessage {
		top = append(top, *entry)
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].ReactionCount != top[j].ReactionCount {
			return top[i].ReactionCount > top[j].ReactionCount
		}
		return top[i].MessageID < top[j].MessageID
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}

// tallyLocked computes one user's tally; callers hold at least a read lock.
func (m *MemoryLedger) tallyLocked(userID string) Tally {
	t := Tally{UserID: userID}
	unique := make(map[string]bool)
	for _, f := range m.facts {
		if f.AuthorID == userID {
			t.ReactionsReceived++
			unique[f.MessageID] = true
		}
		if f.ReactorID == userID {
			t.ReactionsGiven++
		}
	}
	t.UniqueMessages = len(unique)
	return t
}
