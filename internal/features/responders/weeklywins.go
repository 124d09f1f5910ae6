// Package responders — weeklywins.go welcomes members who gain the
// Weekly Wins role, pointing them at the posts channel.
package responders

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// HandleMemberUpdate checks a member update for a newly gained Weekly
// Wins role and sends the welcome. Updates without the before snapshot
// are skipped: without it a role gain cannot be told apart from an
// unrelated change.
func (h *Handler) HandleMemberUpdate(m *discordgo.GuildMemberUpdate) {
	roleID := h.cfg.WeeklyWinsRoleID
	chatChannelID := h.cfg.WeeklyWinsChatChannelID
	if roleID == "" || chatChannelID == "" {
		return
	}
	if m.Member == nil || m.User == nil || m.BeforeUpdate == nil {
		return
	}

	if !GainedRole(m.BeforeUpdate.Roles, m.Roles, roleID) {
		return
	}

	content := WeeklyWinsWelcome(m.User.ID, h.cfg.WeeklyWinsPostsChannelID)
	if _, err := h.session.ChannelMessageSend(chatChannelID, content); err != nil {
		log.WithError(err).WithField("user_id", m.User.ID).Error("Failed to send Weekly Wins welcome")
		return
	}
	log.WithFields(log.Fields{
		"user_id":  m.User.ID,
		"username": m.User.Username,
	}).Info("Weekly Wins welcome sent")
}

// GainedRole reports whether roleID appears in after but not in before.
func GainedRole(before, after []string, roleID string) bool {
	return !hasRole(before, roleID) && hasRole(after, roleID)
}

func hasRole(roles []string, roleID string) bool {
	for _, id := range roles {
		if id == roleID {
			return true
		}
	}
	return false
}

// WeeklyWinsWelcome composes the welcome message for a new club member.
func WeeklyWinsWelcome(userID, postsChannelID string) string {
	return fmt.Sprintf(`Hi <@%s>, welcome to the Weekly Wins Club!

Please post your updates in <#%s>. Feel free to post your updates at any time, but it's recommended that you try to post between Friday-Monday every week.`,
		userID, postsChannelID)
}
