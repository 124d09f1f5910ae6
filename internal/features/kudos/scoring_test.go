package kudos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoints(t *testing.T) {
	tests := []struct {
		name  string
		tally Tally
		want  int
	}{
		{"no activity", Tally{}, 0},
		{
			// one message with five reactors: first earns 10, four pile-ons earn 3 each
			"one message five reactors",
			Tally{UniqueMessages: 1, ReactionsReceived: 5},
			22,
		},
		{
			"five messages one reactor each",
			Tally{UniqueMessages: 5, ReactionsReceived: 5},
			50,
		},
		{
			"giving only",
			Tally{ReactionsGiven: 7},
			7,
		},
		{
			"mixed",
			Tally{UniqueMessages: 3, ReactionsReceived: 5, ReactionsGiven: 0},
			36,
		},
		{
			"mixed with given",
			Tally{UniqueMessages: 2, ReactionsReceived: 3, ReactionsGiven: 3},
			26,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Points(tt.tally))
		})
	}
}

func TestPointsNonDecreasing(t *testing.T) {
	// Each additional valid reaction crediting the user adds points,
	// whether it lands on a new message or an already-reacted one.
	tally := Tally{}
	last := Points(tally)
	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			tally.UniqueMessages++
		}
		tally.ReactionsReceived++
		p := Points(tally)
		require.Greater(t, p, last)
		last = p
	}
}

func TestResolveLevel(t *testing.T) {
	assert.Equal(t, 1, ResolveLevel(0).Level)
	assert.Equal(t, 1, ResolveLevel(49).Level)
	assert.Equal(t, 2, ResolveLevel(50).Level)
	assert.Equal(t, 2, ResolveLevel(149).Level)
	assert.Equal(t, 10, ResolveLevel(3000).Level)
	assert.Equal(t, 10, ResolveLevel(1_000_000).Level)
}

func TestResolveLevelTotal(t *testing.T) {
	// Every non-negative total matches exactly one configured level.
	for p := 0; p <= 3500; p++ {
		matches := 0
		for _, l := range Levels {
			if p >= l.MinPoints && (l.Unbounded() || p <= l.MaxPoints) {
				matches++
			}
		}
		require.Equalf(t, 1, matches, "points=%d matched %d levels", p, matches)
	}
}

func TestValidateLevels(t *testing.T) {
	require.NoError(t, ValidateLevels(Levels))

	t.Run("gap", func(t *testing.T) {
		broken := []Level{
			{Level: 1, Name: "A", MinPoints: 0, MaxPoints: 49},
			{Level: 2, Name: "B", MinPoints: 51, MaxPoints: 0},
		}
		assert.Error(t, ValidateLevels(broken))
	})
	t.Run("overlap", func(t *testing.T) {
		broken := []Level{
			{Level: 1, Name: "A", MinPoints: 0, MaxPoints: 49},
			{Level: 2, Name: "B", MinPoints: 49, MaxPoints: 0},
		}
		assert.Error(t, ValidateLevels(broken))
	})
	t.Run("bounded top", func(t *testing.T) {
		broken := []Level{
			{Level: 1, Name: "A", MinPoints: 0, MaxPoints: 49},
			{Level: 2, Name: "B", MinPoints: 50, MaxPoints: 99},
		}
		assert.Error(t, ValidateLevels(broken))
	})
	t.Run("nonzero start", func(t *testing.T) {
		broken := []Level{{Level: 1, Name: "A", MinPoints: 10, MaxPoints: 0}}
		assert.Error(t, ValidateLevels(broken))
	})
}

func TestBuildStats(t *testing.T) {
	stats := BuildStats(Tally{UserID: "u1", UniqueMessages: 1, ReactionsReceived: 5, ReactionsGiven: 2})
	assert.Equal(t, 24, stats.TotalPoints)
	assert.Equal(t, 1, stats.Level.Level)
	require.NotNil(t, stats.PointsToNextLevel)
	assert.Equal(t, 26, *stats.PointsToNextLevel)

	top := BuildStats(Tally{UserID: "u2", UniqueMessages: 300, ReactionsReceived: 300})
	assert.Equal(t, 3000, top.TotalPoints)
	assert.Equal(t, 10, top.Level.Level)
	assert.Nil(t, top.PointsToNextLevel)
}

func TestProgressBar(t *testing.T) {
	stats := BuildStats(Tally{UserID: "u1"})
	assert.Equal(t, "░░░░░░░░░░", ProgressBar(stats))

	// 25 points into the 0-49 range rounds down to 5 of 10 segments
	halfway := BuildStats(Tally{UserID: "u2", ReactionsGiven: 25})
	assert.Equal(t, "█████░░░░░", ProgressBar(halfway))

	top := BuildStats(Tally{UserID: "u3", UniqueMessages: 300, ReactionsReceived: 300})
	assert.Equal(t, "██████████", ProgressBar(top))
}
