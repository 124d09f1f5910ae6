// Package goals implements weekly goals: members set a goal with a
// per-week target, check in against it, and get a Monday recap of how
// the previous week went.
package goals

import "time"

// Title and target bounds enforced on /goal-set.
const (
	MinTitleLength = 3
	MinTarget      = 1
	MaxTarget      = 10
)

// Goal is one member goal scoped to a single week.
type Goal struct {
	ID              int64      `db:"id"`
	UserID          string     `db:"user_id"`
	Title           string     `db:"title"`
	TargetCount     int        `db:"target_count"`
	CompletionCount int        `db:"completion_count"`
	WeekIdentifier  string     `db:"week_identifier"`
	CreatedAt       time.Time  `db:"created_at"`
	DeletedAt       *time.Time `db:"deleted_at"`
}

// Completed reports whether the goal has hit its weekly target.
func (g Goal) Completed() bool {
	return g.CompletionCount >= g.TargetCount
}
