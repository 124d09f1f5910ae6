// Package common holds shared utilities used throughout the project:
// sentinel errors, English pluralization and time formatting.
package common

import "time"

// LoadLocation loads a timezone by name, falling back to UTC when the
// tzdata lookup fails (stripped containers without zoneinfo).
func LoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// EasternClock formats the current wall-clock time in US Eastern time,
// e.g. "3:04 PM EST". Used by the clock-reply responder.
func EasternClock(now time.Time) string {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.FixedZone("EST", -5*60*60)
	}
	return now.In(loc).Format("3:04 PM MST")
}
