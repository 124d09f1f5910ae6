package kudos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lgt-bot/internal/common"
)

func TestParseTimeframe(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1 day", 1},
		{"7 days", 7},
		{"30 days", 30},
		{"14days", 14},
		{"last 3 days or so", 3},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeframe(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimeframeInvalid(t *testing.T) {
	for _, in := range []string{"", "soon", "a week", "days", "day 1"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseTimeframe(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidTimeframe)
		})
	}
}

func TestTimeframeCutoff(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	cutoff, err := TimeframeCutoff("7 days", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 21, 15, 0, 0, 0, time.UTC), cutoff)

	_, err = TimeframeCutoff("whenever", now)
	assert.ErrorIs(t, err, common.ErrInvalidTimeframe)
}
