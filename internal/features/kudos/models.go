// Package kudos implements the peer-recognition system: users react to a
// helpful message with the kudos emoji, the message author collects points
// and climbs levels. models.go declares the persisted fact row, the level
// table and the derived statistics types.
package kudos

import "time"

// Point values. The first person to recognize a message is worth more than
// piling on; giving kudos is rewarded weakly to discourage farming.
const (
	FirstReactionPoints      = 10
	AdditionalReactionPoints = 3
	GivingReactionPoints     = 1
)

// Reaction is one persisted kudos fact: one user reacted to one message.
// The (MessageID, ReactorID) pair is unique; facts are created and deleted,
// never updated.
type Reaction struct {
	ID        int64     `db:"id"`
	MessageID string    `db:"message_id"`
	ChannelID string    `db:"channel_id"` // kept for message link-back only
	AuthorID  string    `db:"author_id"`  // the credited user
	ReactorID string    `db:"reactor_id"` // the giver
	CreatedAt time.Time `db:"created_at"`
}

// Level is one named tier of the progression ladder. MaxPoints == 0 on the
// top tier means unbounded.
type Level struct {
	Level     int
	Name      string
	MinPoints int
	MaxPoints int // 0 = no upper bound (top tier only)
}

// Unbounded reports whether the level has no upper point bound.
func (l Level) Unbounded() bool { return l.MaxPoints == 0 }

// Levels is the progression table. Ranges are contiguous and ordered;
// ValidateLevels enforces that at startup and under test.
var Levels = []Level{
	{Level: 1, Name: "Newcomer", MinPoints: 0, MaxPoints: 49},
	{Level: 2, Name: "Helper", MinPoints: 50, MaxPoints: 149},
	{Level: 3, Name: "Supporter", MinPoints: 150, MaxPoints: 299},
	{Level: 4, Name: "Guide", MinPoints: 300, MaxPoints: 499},
	{Level: 5, Name: "Mentor", MinPoints: 500, MaxPoints: 799},
	{Level: 6, Name: "Expert", MinPoints: 800, MaxPoints: 1199},
	{Level: 7, Name: "Guru", MinPoints: 1200, MaxPoints: 1699},
	{Level: 8, Name: "Sage", MinPoints: 1700, MaxPoints: 2299},
	{Level: 9, Name: "Legend", MinPoints: 2300, MaxPoints: 2999},
	{Level: 10, Name: "Champion", MinPoints: 3000, MaxPoints: 0},
}

// Tally is the raw per-user aggregate the scoring formula runs on.
type Tally struct {
	UserID string
	// UniqueMessages counts distinct messages authored by the user with at
	// least one reaction.
	UniqueMessages    int
	ReactionsReceived int
	ReactionsGiven    int
}

// UserStats is the derived, never-persisted view of one user's standing.
type UserStats struct {
	UserID            string
	TotalPoints       int
	Level             Level
	ReactionsReceived int
	ReactionsGiven    int
	// PointsToNextLevel is nil at the top level.
	PointsToNextLevel *int
}

// LeaderboardEntry is one ranked row of the community leaderboard.
type LeaderboardEntry struct {
	UserID            string
	UniqueMessages    int
	ReactionsReceived int
	ReactionsGiven    int
	TotalPoints       int
	Level             Level
}

// TopMessage is one row of the most-reacted-messages query, carrying the
// channel and author for display and link-back.
type TopMessage struct {
	MessageID     string
	ChannelID     string
	AuthorID      string
	ReactionCount int
}

// ReactionEvent is the platform-independent inbound record the event
// handler consumes. The Discord adapter fills it from gateway payloads.
type ReactionEvent struct {
	MessageID    string
	ChannelID    string
	AuthorID     string // empty when the platform could not resolve the author
	ReactorID    string
	EmojiName    string
	ReactorIsBot bool
	AuthorIsBot  bool
}
