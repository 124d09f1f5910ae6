package goals

import (
	"fmt"
	"time"
)

// WeekIdentifier formats the ISO year/week of t, e.g. "2026-W35".
// Goals are scoped to these identifiers, so week boundaries follow the
// ISO convention: weeks start on Monday.
func WeekIdentifier(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// PreviousWeekIdentifier returns the identifier of the week before t's.
func PreviousWeekIdentifier(t time.Time) string {
	return WeekIdentifier(t.AddDate(0, 0, -7))
}

// WeekDateRange returns the Monday and Sunday enclosing t, at midnight
// in t's location.
func WeekDateRange(t time.Time) (monday, sunday time.Time) {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	monday = day.AddDate(0, 0, 1-weekday)
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}
