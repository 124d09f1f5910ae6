package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPlural(t *testing.T) {
	assert.Equal(t, "point", Plural(1, "point"))
	assert.Equal(t, "points", Plural(0, "point"))
	assert.Equal(t, "points", Plural(2, "point"))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "1 ban", FormatCount(1, "ban"))
	assert.Equal(t, "3 bans", FormatCount(3, "ban"))
}

func TestOrdinal(t *testing.T) {
	tests := map[int]string{
		1:   "1st",
		2:   "2nd",
		3:   "3rd",
		4:   "4th",
		11:  "11th",
		12:  "12th",
		13:  "13th",
		21:  "21st",
		22:  "22nd",
		23:  "23rd",
		101: "101st",
		111: "111th",
	}
	for n, want := range tests {
		assert.Equal(t, want, Ordinal(n))
	}
}

func TestEasternClock(t *testing.T) {
	// 19:30 UTC on a summer date is 3:30 PM EDT.
	now := time.Date(2026, 8, 28, 19, 30, 0, 0, time.UTC)
	assert.Equal(t, "3:30 PM EDT", EasternClock(now))

	// 19:30 UTC in winter is 2:30 PM EST.
	winter := time.Date(2026, 1, 15, 19, 30, 0, 0, time.UTC)
	assert.Equal(t, "2:30 PM EST", EasternClock(winter))
}
