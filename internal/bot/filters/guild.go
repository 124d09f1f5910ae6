// Package filters gates gateway events to the single configured guild.
package filters

import (
	log "github.com/sirupsen/logrus"
)

// GuildFilter drops events from guilds the bot does not serve. The bot
// is built for exactly one community; a stray invite elsewhere must
// not leak scores or announcements there.
type GuildFilter struct {
	guildID string
}

func NewGuildFilter(guildID string) *GuildFilter {
	return &GuildFilter{guildID: guildID}
}

// Allow reports whether an event from guildID should be handled.
// Events without a guild (DMs) are rejected.
func (f *GuildFilter) Allow(guildID string) bool {
	if f.guildID == "" {
		log.WithField("component", "GuildFilter").Error("guildID is empty (config bug)")
		return false
	}
	if guildID != f.guildID {
		if guildID != "" {
			log.WithFields(log.Fields{
				"component": "GuildFilter",
				"guild_id":  guildID,
			}).Debug("deny: foreign guild")
		}
		return false
	}
	return true
}
