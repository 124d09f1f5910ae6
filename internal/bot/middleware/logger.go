// Package middleware holds the cross-cutting handler helpers: event
// logging, panic recovery and rate limiting.
package middleware

import (
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// LogMessage logs an incoming message: user, channel, first 50 chars.
func LogMessage(m *discordgo.MessageCreate) {
	if m == nil || m.Author == nil {
		return
	}

	text := m.Content
	if len(text) > 50 {
		text = text[:50] + "..."
	}

	log.WithFields(log.Fields{
		"user_id":    m.Author.ID,
		"channel_id": m.ChannelID,
		"username":   m.Author.Username,
		"text":       text,
		"time":       time.Now().Format("15:04:05"),
	}).Debug("Incoming message")
}

// LogInteraction logs an incoming slash command.
func LogInteraction(i *discordgo.InteractionCreate, userID string) {
	if i == nil || i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	log.WithFields(log.Fields{
		"user_id":    userID,
		"channel_id": i.ChannelID,
		"command":    i.ApplicationCommandData().Name,
	}).Debug("Incoming command")
}
