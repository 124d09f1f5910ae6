// Package common — errors.go defines the sentinel errors shared across
// the bot's feature packages. Handlers match on these to decide which
// user-facing message to send.
package common

import "errors"

// Kudos errors
var (
	// ErrInvalidTimeframe — timeframe string does not match "<n> day(s)"
	ErrInvalidTimeframe = errors.New(`invalid timeframe format, expected "<n> days"`)
)

// Goal errors
var (
	// ErrGoalNotFound — goal id does not exist, is deleted, or belongs to someone else
	ErrGoalNotFound = errors.New("goal not found")
	// ErrGoalCompleted — attempt to check in on an already completed goal
	ErrGoalCompleted = errors.New("this goal is already completed")
	// ErrGoalTitleTooShort — goal title shorter than 3 characters
	ErrGoalTitleTooShort = errors.New("goal description must be at least 3 characters")
	// ErrGoalTargetRange — weekly target outside 1..10
	ErrGoalTargetRange = errors.New("times per week must be between 1 and 10")
)

// Twitch errors
var (
	// ErrAlreadySubscribed — a stream subscription for this username already exists
	ErrAlreadySubscribed = errors.New("already subscribed to this channel")
	// ErrNotSubscribed — no stream subscription exists for this username
	ErrNotSubscribed = errors.New("not subscribed to this channel")
	// ErrTwitchUserNotFound — Helix lookup returned no user for the username
	ErrTwitchUserNotFound = errors.New("twitch user not found")
)
