package goals

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lgt-bot/internal/common"
)

func TestValidateTitle(t *testing.T) {
	assert.NoError(t, ValidateTitle("Run"))
	assert.NoError(t, ValidateTitle("Read 20 pages"))

	assert.ErrorIs(t, ValidateTitle(""), common.ErrGoalTitleTooShort)
	assert.ErrorIs(t, ValidateTitle("ab"), common.ErrGoalTitleTooShort)
	// Whitespace padding does not count toward the minimum.
	assert.ErrorIs(t, ValidateTitle("  a  "), common.ErrGoalTitleTooShort)
}

func TestValidateTarget(t *testing.T) {
	assert.NoError(t, ValidateTarget(1))
	assert.NoError(t, ValidateTarget(10))

	assert.ErrorIs(t, ValidateTarget(0), common.ErrGoalTargetRange)
	assert.ErrorIs(t, ValidateTarget(-1), common.ErrGoalTargetRange)
	assert.ErrorIs(t, ValidateTarget(11), common.ErrGoalTargetRange)
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "⬜⬜⬜", ProgressBar(Goal{TargetCount: 3}))
	assert.Equal(t, "✅⬜⬜", ProgressBar(Goal{TargetCount: 3, CompletionCount: 1}))
	assert.Equal(t, "✅✅✅", ProgressBar(Goal{TargetCount: 3, CompletionCount: 3}))
}

func TestGoalCompleted(t *testing.T) {
	assert.False(t, Goal{TargetCount: 3, CompletionCount: 2}.Completed())
	assert.True(t, Goal{TargetCount: 3, CompletionCount: 3}.Completed())
}

func TestComposeRecapEmpty(t *testing.T) {
	assert.Empty(t, ComposeRecap("2026-W35", nil))
}

func TestComposeRecap(t *testing.T) {
	goals := []Goal{
		{ID: 1, UserID: "alice", Title: "Read 20 pages", TargetCount: 3, CompletionCount: 3},
		{ID: 2, UserID: "bob", Title: "Run 5k", TargetCount: 2, CompletionCount: 1},
	}
	recap := ComposeRecap("2026-W35", goals)

	assert.Contains(t, recap, "Weekly Goals Recap (2026-W35)")
	assert.Contains(t, recap, "<@alice>")
	assert.Contains(t, recap, "🎯 Read 20 pages — done! (3/3)")
	assert.Contains(t, recap, "<@bob>")
	assert.Contains(t, recap, "▫️ Run 5k — 1/2")
	assert.Contains(t, recap, "1 of 2 goals completed")
}
