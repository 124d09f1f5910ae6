package goals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekIdentifier(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), "2026-W35"},  // Monday
		{time.Date(2026, 8, 30, 23, 0, 0, 0, time.UTC), "2026-W35"}, // Sunday of the same week
		{time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), "2026-W36"},  // next Monday
		{time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "2026-W01"},
		// 2027-01-01 is a Friday, still ISO week 53 of 2026.
		{time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), "2026-W53"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WeekIdentifier(tt.date), "for %s", tt.date)
	}
}

func TestPreviousWeekIdentifier(t *testing.T) {
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-W35", PreviousWeekIdentifier(monday))
}

func TestWeekDateRange(t *testing.T) {
	// A Wednesday.
	wednesday := time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC)
	monday, sunday := WeekDateRange(wednesday)
	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), monday)
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), sunday)

	// Sunday belongs to the week that started the previous Monday.
	_, sameSunday := WeekDateRange(time.Date(2026, 8, 30, 1, 0, 0, 0, time.UTC))
	assert.Equal(t, sunday, sameSunday)
}
