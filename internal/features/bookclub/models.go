// Package bookclub implements the book-club ban counter: the moderator's
// banhammer reaction on a message "bans" its author, removal lifts that
// ban, and a leaderboard ranks the most-banned members.
package bookclub

import "time"

// Ban is one persisted ban fact: one banhammer reaction on one message.
// The (UserID, MessageID) pair is unique.
type Ban struct {
	ID        int64     `db:"id"`
	UserID    string    `db:"user_id"`
	MessageID string    `db:"message_id"`
	CreatedAt time.Time `db:"created_at"`
}

// BanCount is one leaderboard row.
type BanCount struct {
	UserID string
	Count  int
}

// Achievement is the milestone unlocked at a specific ban count.
type Achievement struct {
	Title    string
	Subtitle string
}

// achievements maps exact ban counts to their milestone.
var achievements = map[int]Achievement{
	10:  {"The Grasshopper", "Still mastering the ancient art of getting ejected from LGT Book Club"},
	20:  {"The Enthusiast", "Collects bans like others collect server emotes"},
	30:  {"The Connoisseur", "Has sampled every possible reason for being banned"},
	40:  {"The Inevitable", "Like death and taxes, their bans are a certainty"},
	50:  {"The Legend", "Their ban history is now required reading for new members"},
	69:  {"Nice", "Nice"},
	100: {"The Immortal", "Somehow still part of the server despite breaking every rule in existence"},
}

// moderatorTitles rotate through the ban announcements.
var moderatorTitles = []string{
	"Supreme Ruler",
	"Grand Overlord",
	"Executive Bookmaster",
	"Literary Sovereign",
	"Chief Reading Officer",
	"Book Emperor",
	"Distinguished Leader",
}
