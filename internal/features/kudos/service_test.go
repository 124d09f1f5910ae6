package kudos

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lgt-bot/internal/common"
	"lgt-bot/internal/config"
)

func newTestService(t *testing.T) (*Service, *MemoryLedger) {
	t.Helper()
	ledger := NewMemoryLedger()
	cfg := &config.Config{
		KudosEmoji:            "lgt",
		KudosLeaderboardSize:  10,
		KudosDefaultTimeframe: "7 days",
	}
	return NewService(ledger, cfg), ledger
}

func kudosEvent(messageID, authorID, reactorID string) ReactionEvent {
	return ReactionEvent{
		MessageID: messageID,
		ChannelID: "channel123",
		AuthorID:  authorID,
		ReactorID: reactorID,
		EmojiName: "lgt",
	}
}

func TestOnReactionAddRejectsSelfKudos(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()

	result, err := svc.OnReactionAdd(ctx, kudosEvent("msg123", "user123", "user123"))
	require.NoError(t, err)
	require.NotNil(t, result.Rejection)
	assert.True(t, result.Rejection.RetractReaction)
	assert.Equal(t, "You can't give kudos to yourself!", result.Rejection.Message)

	count, err := ledger.CountForMessage(ctx, "msg123")
	require.NoError(t, err)
	assert.Zero(t, count, "self-kudos must never create a ledger fact")
}

func TestOnReactionAddIgnoresNonEvents(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()

	bot := kudosEvent("msg1", "author1", "bot1")
	bot.ReactorIsBot = true
	wrongEmoji := kudosEvent("msg1", "author1", "user1")
	wrongEmoji.EmojiName = "thumbsup"
	noAuthor := kudosEvent("msg1", "", "user1")
	botAuthor := kudosEvent("msg1", "author1", "user1")
	botAuthor.AuthorIsBot = true

	for _, ev := range []ReactionEvent{bot, wrongEmoji, noAuthor, botAuthor} {
		result, err := svc.OnReactionAdd(ctx, ev)
		require.NoError(t, err)
		assert.Nil(t, result.Rejection)
		assert.Nil(t, result.LevelUp)
	}

	count, err := ledger.CountForMessage(ctx, "msg1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestOnReactionAddIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.OnReactionAdd(ctx, kudosEvent("msg1", "author1", "user1"))
	require.NoError(t, err)
	once, err := svc.Rank(ctx, "author1")
	require.NoError(t, err)

	// Re-adding the same (message, reactor) pair is a silent no-op.
	result, err := svc.OnReactionAdd(ctx, kudosEvent("msg1", "author1", "user1"))
	require.NoError(t, err)
	assert.Nil(t, result.Rejection)
	assert.Nil(t, result.LevelUp)

	twice, err := svc.Rank(ctx, "author1")
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestAddThenRemoveRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	before, err := svc.Rank(ctx, "author1")
	require.NoError(t, err)

	_, err = svc.OnReactionAdd(ctx, kudosEvent("msg1", "author1", "user1"))
	require.NoError(t, err)
	err = svc.OnReactionRemove(ctx, kudosEvent("msg1", "author1", "user1"))
	require.NoError(t, err)

	after, err := svc.Rank(ctx, "author1")
	require.NoError(t, err)
	assert.Equal(t, before, after, "add then remove must restore stats exactly")

	// Removing an absent fact stays a no-op.
	require.NoError(t, svc.OnReactionRemove(ctx, kudosEvent("msg1", "author1", "user1")))
}

func TestLevelUpEmittedExactlyOnce(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()

	// Seed four reacted messages (40 points, level 1 tops out at 49),
	// then watch the crossing into level 2.
	for i := 0; i < 4; i++ {
		require.NoError(t, ledger.Add(ctx, Reaction{
			MessageID: fmt.Sprintf("msg%d", i),
			ChannelID: "channel123",
			AuthorID:  "author1",
			ReactorID: fmt.Sprintf("reactor%d", i),
		}))
	}
	stats, err := svc.Rank(ctx, "author1")
	require.NoError(t, err)
	require.Equal(t, 40, stats.TotalPoints)
	require.Equal(t, 1, stats.Level.Level)

	// Fifth unique message: 40 → 50 crosses into level 2, one notification.
	result, err := svc.OnReactionAdd(ctx, kudosEvent("msg4", "author1", "reactor4"))
	require.NoError(t, err)
	require.NotNil(t, result.LevelUp)
	assert.Equal(t, "author1", result.LevelUp.UserID)
	assert.Equal(t, 2, result.LevelUp.Level.Level)
	assert.Equal(t, "Helper", result.LevelUp.Level.Name)

	// A pile-on reaction to an existing message (+3) stays within level 2.
	result, err = svc.OnReactionAdd(ctx, kudosEvent("msg4", "author1", "reactor5"))
	require.NoError(t, err)
	assert.Nil(t, result.LevelUp)

	// A sixth unique message (+10) also stays within level 2.
	result, err = svc.OnReactionAdd(ctx, kudosEvent("msg5", "author1", "reactor6"))
	require.NoError(t, err)
	assert.Nil(t, result.LevelUp)
}

func TestRankScenario(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// One message by A reacted by B..F: 1 unique + 4 additional = 22.
	for _, reactor := range []string{"B", "C", "D", "E", "F"} {
		_, err := svc.OnReactionAdd(ctx, kudosEvent("msgA", "A", reactor))
		require.NoError(t, err)
	}

	stats, err := svc.Rank(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 22, stats.TotalPoints)
	assert.Equal(t, 5, stats.ReactionsReceived)
	assert.Equal(t, 0, stats.ReactionsGiven)
}

func TestLeaderboardOrdering(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// user1: 3 unique messages + 2 extra reactions = 3*10 + 2*3 = 36.
	reactorN := 0
	nextReactor := func() string {
		reactorN++
		return fmt.Sprintf("giver%d", reactorN)
	}
	for i := 0; i < 3; i++ {
		_, err := svc.OnReactionAdd(ctx, kudosEvent(fmt.Sprintf("u1msg%d", i), "user1", nextReactor()))
		require.NoError(t, err)
	}
	for i := 0; i < 2; i++ {
		_, err := svc.OnReactionAdd(ctx, kudosEvent("u1msg0", "user1", nextReactor()))
		require.NoError(t, err)
	}

	// user2: 2 unique + 1 extra + 3 given = 2*10 + 1*3 + 3*1 = 26.
	for i := 0; i < 2; i++ {
		_, err := svc.OnReactionAdd(ctx, kudosEvent(fmt.Sprintf("u2msg%d", i), "user2", nextReactor()))
		require.NoError(t, err)
	}
	_, err := svc.OnReactionAdd(ctx, kudosEvent("u2msg0", "user2", nextReactor()))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := svc.OnReactionAdd(ctx, kudosEvent(fmt.Sprintf("othermsg%d", i), "someoneelse", "user2"))
		require.NoError(t, err)
	}

	entries, err := svc.Leaderboard(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(entries), 2)
	assert.Equal(t, "user1", entries[0].UserID)
	assert.Equal(t, 36, entries[0].TotalPoints)
	assert.Equal(t, "user2", entries[1].UserID)
	assert.Equal(t, 26, entries[1].TotalPoints)
}

func TestLeaderboardTieBreakAndLimit(t *testing.T) {
	svc, _ := newTestService(t)
	svc.cfg.KudosLeaderboardSize = 3
	ctx := context.Background()

	// Twelve authors with one reacted message each: all tied at 10 points,
	// the givers trail with 1 point each. Ties order by user id ascending.
	for i := 0; i < 12; i++ {
		_, err := svc.OnReactionAdd(ctx, kudosEvent(
			fmt.Sprintf("msg%02d", i), fmt.Sprintf("author%02d", 11-i), fmt.Sprintf("giver%02d", i),
		))
		require.NoError(t, err)
	}

	entries, err := svc.Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"author00", "author01", "author02"},
		[]string{entries[0].UserID, entries[1].UserID, entries[2].UserID})
}

func TestTopMessagesWindow(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	// 8 reactions yesterday-ish (36h ago), 2 today on the same message.
	for i := 0; i < 8; i++ {
		require.NoError(t, ledger.Add(ctx, Reaction{
			MessageID: "hot", ChannelID: "chan", AuthorID: "author1",
			ReactorID: fmt.Sprintf("old%d", i), CreatedAt: now.Add(-36 * time.Hour),
		}))
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, ledger.Add(ctx, Reaction{
			MessageID: "hot", ChannelID: "chan", AuthorID: "author1",
			ReactorID: fmt.Sprintf("new%d", i), CreatedAt: now.Add(-2 * time.Hour),
		}))
	}

	day, err := svc.TopMessages(ctx, "1 day")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, 2, day[0].ReactionCount)

	week, err := svc.TopMessages(ctx, "7 days")
	require.NoError(t, err)
	require.Len(t, week, 1)
	assert.Equal(t, 10, week[0].ReactionCount)
	assert.Equal(t, "author1", week[0].AuthorID)
	assert.Equal(t, "chan", week[0].ChannelID)
}

func TestReactionFactsCarryServiceClock(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// Facts recorded through the service must age by the service's
	// clock, not by whenever the ledger stores them. The window query
	// is the observable: a fact stamped in the past falls out of a
	// short window even though it was just inserted.
	past := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return past }
	_, err := svc.OnReactionAdd(ctx, kudosEvent("msg1", "author1", "user1"))
	require.NoError(t, err)

	now := past.Add(3 * 24 * time.Hour)
	svc.now = func() time.Time { return now }

	day, err := svc.TopMessages(ctx, "1 day")
	require.NoError(t, err)
	assert.Empty(t, day)

	week, err := svc.TopMessages(ctx, "7 days")
	require.NoError(t, err)
	require.Len(t, week, 1)
	assert.Equal(t, "msg1", week[0].MessageID)
}

func TestTopMessagesInvalidTimeframe(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.TopMessages(context.Background(), "soon")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidTimeframe)
}

func TestTopMessagesDefaultTimeframe(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	require.NoError(t, ledger.Add(ctx, Reaction{
		MessageID: "recent", ChannelID: "chan", AuthorID: "a", ReactorID: "r",
		CreatedAt: now.Add(-24 * time.Hour),
	}))
	require.NoError(t, ledger.Add(ctx, Reaction{
		MessageID: "ancient", ChannelID: "chan", AuthorID: "a", ReactorID: "r2",
		CreatedAt: now.Add(-30 * 24 * time.Hour),
	}))

	// Empty timeframe uses the configured default of 7 days.
	top, err := svc.TopMessages(ctx, "")
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "recent", top[0].MessageID)
}
