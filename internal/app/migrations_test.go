package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The kudos_reactions layout is a contract: the unique pair backs the
// idempotent insert, and the indexes back the per-user and windowed
// aggregate queries.
func TestKudosReactionsMigrationLayout(t *testing.T) {
	assert.Contains(t, migration001KudosReactions, "UNIQUE (message_id, reactor_id)")

	for _, indexed := range []string{
		"kudos_reactions(author_id)",
		"kudos_reactions(reactor_id)",
		"kudos_reactions(message_id)",
		"kudos_reactions(reactor_id, author_id, created_at)",
	} {
		assert.Contains(t, migration001KudosReactions, indexed, "missing index on %s", indexed)
	}
}

func TestBookClubBansMigrationLayout(t *testing.T) {
	assert.Contains(t, migration002BookClubBans, "UNIQUE (user_id, message_id)")
}
