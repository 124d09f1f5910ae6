package kudos

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLedgerDuplicatePairIsNoOp(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	fact := Reaction{MessageID: "m1", ChannelID: "c1", AuthorID: "a1", ReactorID: "r1"}
	require.NoError(t, ledger.Add(ctx, fact))
	require.NoError(t, ledger.Add(ctx, fact))

	count, err := ledger.CountForMessage(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Same message, different reactor is a new fact.
	fact.ReactorID = "r2"
	require.NoError(t, ledger.Add(ctx, fact))
	count, err = ledger.CountForMessage(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMemoryLedgerAllTalliesUnion(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	// "giver" only ever reacts; "author" only ever receives. Both must
	// appear in the union.
	require.NoError(t, ledger.Add(ctx, Reaction{MessageID: "m1", AuthorID: "author", ReactorID: "giver"}))

	tallies, err := ledger.AllTallies(ctx)
	require.NoError(t, err)
	require.Len(t, tallies, 2)

	byUser := make(map[string]Tally, len(tallies))
	for _, tally := range tallies {
		byUser[tally.UserID] = tally
	}
	assert.Equal(t, Tally{UserID: "author", UniqueMessages: 1, ReactionsReceived: 1}, byUser["author"])
	assert.Equal(t, Tally{UserID: "giver", ReactionsGiven: 1}, byUser["giver"])
}
