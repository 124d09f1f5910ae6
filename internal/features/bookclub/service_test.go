package bookclub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAchievementAt(t *testing.T) {
	for _, count := range []int{10, 20, 30, 40, 50, 69, 100} {
		_, ok := AchievementAt(count)
		assert.True(t, ok, "expected achievement at %d bans", count)
	}
	for _, count := range []int{0, 1, 9, 11, 68, 70, 99, 101} {
		_, ok := AchievementAt(count)
		assert.False(t, ok, "unexpected achievement at %d bans", count)
	}
}

func TestBanAnnouncementFirstBan(t *testing.T) {
	msg := BanAnnouncement("u1", BanResult{Count: 1, Recorded: true, First: true}, "Supreme Ruler")
	assert.Equal(t, "<@u1> has been banned from LGT Book Club, by order of Supreme Ruler Mike", msg)
}

func TestBanAnnouncementRepeatOffender(t *testing.T) {
	msg := BanAnnouncement("u1", BanResult{Count: 3}, "Book Emperor")
	assert.Contains(t, msg, "their 3rd ban")
	assert.Contains(t, msg, "Book Emperor Mike")
	assert.NotContains(t, msg, "Achievement unlocked")
}

func TestBanAnnouncementWithAchievement(t *testing.T) {
	a, ok := AchievementAt(10)
	require.True(t, ok)

	msg := BanAnnouncement("u1", BanResult{Count: 10, Achievement: &a}, "Grand Overlord")
	assert.Contains(t, msg, "their 10th ban")
	assert.Contains(t, msg, "Achievement unlocked")
	assert.Contains(t, msg, "The Grasshopper")
}

func TestLiftAnnouncement(t *testing.T) {
	msg := LiftAnnouncement("u1", LiftResult{Found: true, Remaining: 0}, "Literary Sovereign")
	assert.Equal(t, "<@u1> has been brought back into Literary Sovereign Mike's good graces.", msg)

	msg = LiftAnnouncement("u1", LiftResult{Found: true, Remaining: 1}, "Literary Sovereign")
	assert.Contains(t, msg, "1 strike remaining")

	msg = LiftAnnouncement("u1", LiftResult{Found: true, Remaining: 4}, "Literary Sovereign")
	assert.Contains(t, msg, "4 strikes remaining")
}

func TestRandomModeratorTitle(t *testing.T) {
	known := make(map[string]bool, len(moderatorTitles))
	for _, title := range moderatorTitles {
		known[title] = true
	}
	for i := 0; i < 50; i++ {
		assert.True(t, known[RandomModeratorTitle()])
	}
}
