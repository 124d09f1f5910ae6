package responders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGainedRole(t *testing.T) {
	const role = "wins-role"

	assert.True(t, GainedRole([]string{"other"}, []string{"other", role}, role))
	assert.True(t, GainedRole(nil, []string{role}, role))

	// Already had it, lost it, or never had it.
	assert.False(t, GainedRole([]string{role}, []string{role, "other"}, role))
	assert.False(t, GainedRole([]string{role}, []string{"other"}, role))
	assert.False(t, GainedRole([]string{"other"}, []string{"other"}, role))
}

func TestWeeklyWinsWelcome(t *testing.T) {
	msg := WeeklyWinsWelcome("u1", "posts-channel")

	assert.Contains(t, msg, "Hi <@u1>, welcome to the Weekly Wins Club!")
	assert.Contains(t, msg, "<#posts-channel>")
	assert.Contains(t, msg, "between Friday-Monday")
}
