// Package kudos — handlers.go adapts Discord gateway events and slash
// commands onto the service. All rendering (embeds, mentions, reaction
// retraction) lives here; the service stays platform-free.
package kudos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"lgt-bot/internal/common"
)

const embedColor = 0x00ff00

// Handler bridges Discord and the kudos service.
type Handler struct {
	service *Service
	session *discordgo.Session
}

// NewHandler creates the kudos event/command handler.
func NewHandler(service *Service, session *discordgo.Session) *Handler {
	return &Handler{service: service, session: session}
}

// HandleReactionAdd processes a gateway reaction-add. Errors are logged and
// swallowed: one malformed event must never take down the listener loop.
func (h *Handler) HandleReactionAdd(ctx context.Context, r *discordgo.MessageReactionAdd) {
	if !h.service.Matches(r.Emoji.Name) {
		return
	}

	ev, err := h.buildEvent(r)
	if err != nil {
		log.WithError(err).WithField("message_id", r.MessageID).Error("Failed to resolve kudos reaction")
		return
	}

	result, err := h.service.OnReactionAdd(ctx, ev)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"message_id": r.MessageID,
			"reactor_id": r.UserID,
		}).Error("Failed to record kudos reaction")
		return
	}

	if result.Rejection != nil {
		h.sendText(r.ChannelID, fmt.Sprintf("<@%s> %s", r.UserID, result.Rejection.Message))
		if result.Rejection.RetractReaction {
			if err := h.session.MessageReactionRemove(r.ChannelID, r.MessageID, r.Emoji.APIName(), r.UserID); err != nil {
				log.WithError(err).Warn("Failed to retract rejected kudos reaction")
			}
		}
		return
	}

	if result.LevelUp != nil {
		h.sendEmbed(r.ChannelID, &discordgo.MessageEmbed{
			Title: "🎉 Level Up!",
			Color: embedColor,
			Description: fmt.Sprintf(
				"Congratulations <@%s>! You've reached **Level %d (%s)**!",
				result.LevelUp.UserID, result.LevelUp.Level.Level, result.LevelUp.Level.Name,
			),
		})
	}
}

// HandleReactionRemove processes a gateway reaction-remove. Silent by design.
func (h *Handler) HandleReactionRemove(ctx context.Context, r *discordgo.MessageReactionRemove) {
	if !h.service.Matches(r.Emoji.Name) {
		return
	}

	ev := ReactionEvent{
		MessageID: r.MessageID,
		ChannelID: r.ChannelID,
		ReactorID: r.UserID,
		EmojiName: r.Emoji.Name,
	}
	if err := h.service.OnReactionRemove(ctx, ev); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"message_id": r.MessageID,
			"reactor_id": r.UserID,
		}).Error("Failed to remove kudos reaction")
	}
}

// HandleRank serves /kudos-rank [user].
func (h *Handler) HandleRank(ctx context.Context, i *discordgo.InteractionCreate, targetUserID string) {
	if targetUserID == "" {
		targetUserID = interactionUserID(i)
	}

	stats, err := h.service.Rank(ctx, targetUserID)
	if err != nil {
		log.WithError(err).Error("Failed to load kudos rank")
		h.respondError(i, "Failed to load kudos stats")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Kudos Stats for <@%s>", stats.UserID),
		Color: embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Level", Value: fmt.Sprintf("%d (%s)", stats.Level.Level, stats.Level.Name), Inline: true},
			{Name: "Total Points", Value: fmt.Sprintf("%d", stats.TotalPoints), Inline: true},
			{Name: "Reactions Received", Value: fmt.Sprintf("%d", stats.ReactionsReceived), Inline: true},
			{Name: "Reactions Given", Value: fmt.Sprintf("%d", stats.ReactionsGiven), Inline: true},
		},
	}
	if stats.PointsToNextLevel != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Next Level",
			Value: fmt.Sprintf("%d points needed for Level %d", *stats.PointsToNextLevel, stats.Level.Level+1),
		})
	}
	h.respondEmbed(i, embed)
}

// HandleLeaderboard serves /kudos-leaderboard.
func (h *Handler) HandleLeaderboard(ctx context.Context, i *discordgo.InteractionCreate) {
	entries, err := h.service.Leaderboard(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to load kudos leaderboard")
		h.respondError(i, "Failed to load the leaderboard")
		return
	}
	if len(entries) == 0 {
		h.respondText(i, "No kudos given yet — react with the kudos emoji to get things started!")
		return
	}

	lines := make([]string, 0, len(entries))
	for idx, e := range entries {
		lines = append(lines, fmt.Sprintf(
			"%d. <@%s> - Level %d (%s) - %s",
			idx+1, e.UserID, e.Level.Level, e.Level.Name, common.FormatCount(e.TotalPoints, "point"),
		))
	}
	h.respondEmbed(i, &discordgo.MessageEmbed{
		Title:       "LGT Kudos Leaderboard",
		Color:       embedColor,
		Description: strings.Join(lines, "\n"),
	})
}

// HandleProgress serves /kudos-progress with a bar toward the next level.
func (h *Handler) HandleProgress(ctx context.Context, i *discordgo.InteractionCreate) {
	userID := interactionUserID(i)
	stats, err := h.service.Rank(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to load kudos progress")
		h.respondError(i, "Failed to load kudos stats")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Progress for <@%s>", userID),
		Color: embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Current Level", Value: fmt.Sprintf("%d (%s)", stats.Level.Level, stats.Level.Name), Inline: true},
			{Name: "Total Points", Value: fmt.Sprintf("%d", stats.TotalPoints), Inline: true},
		},
	}
	if stats.PointsToNextLevel != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Progress to Next Level",
			Value: fmt.Sprintf("%s (%d points needed)", ProgressBar(stats), *stats.PointsToNextLevel),
		})
	} else {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Progress",
			Value: "Maximum level reached! 🎉",
		})
	}
	h.respondEmbed(i, embed)
}

// HandleTop serves /kudos-top [timeframe].
func (h *Handler) HandleTop(ctx context.Context, i *discordgo.InteractionCreate, timeframe string) {
	shown := timeframe
	if shown == "" {
		shown = h.service.cfg.KudosDefaultTimeframe
	}

	top, err := h.service.TopMessages(ctx, timeframe)
	if err != nil {
		if errors.Is(err, common.ErrInvalidTimeframe) {
			h.respondError(i, `Invalid timeframe — use something like "7 days"`)
			return
		}
		log.WithError(err).Error("Failed to load top messages")
		h.respondError(i, "Failed to load top messages")
		return
	}
	if len(top) == 0 {
		h.respondText(i, fmt.Sprintf("No kudos reactions in the last %s.", shown))
		return
	}

	lines := make([]string, 0, len(top))
	for idx, msg := range top {
		link := fmt.Sprintf("https://discord.com/channels/%s/%s", msg.ChannelID, msg.MessageID)
		lines = append(lines, fmt.Sprintf(
			"%d. <@%s> - %s - [Jump to message](%s)",
			idx+1, msg.AuthorID, common.FormatCount(msg.ReactionCount, "reaction"), link,
		))
	}
	h.respondEmbed(i, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Top Helpful Messages (%s)", shown),
		Color:       embedColor,
		Description: strings.Join(lines, "\n"),
	})
}

// ProgressBar renders the 10-segment bar within the current level's range.
func ProgressBar(stats UserStats) string {
	level := stats.Level
	if level.Unbounded() {
		return strings.Repeat("█", 10)
	}
	span := level.MaxPoints - level.MinPoints
	filled := 0
	if span > 0 {
		filled = (stats.TotalPoints - level.MinPoints) * 10 / span
	}
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

// buildEvent resolves the reacted-to message so the event carries its
// author. The reactor's bot flag comes from the guild member payload when
// present, with a user fetch as fallback.
func (h *Handler) buildEvent(r *discordgo.MessageReactionAdd) (ReactionEvent, error) {
	ev := ReactionEvent{
		MessageID: r.MessageID,
		ChannelID: r.ChannelID,
		ReactorID: r.UserID,
		EmojiName: r.Emoji.Name,
	}

	if r.Member != nil && r.Member.User != nil {
		ev.ReactorIsBot = r.Member.User.Bot
	} else if user, err := h.session.User(r.UserID); err == nil {
		ev.ReactorIsBot = user.Bot
	}

	msg, err := h.session.State.Message(r.ChannelID, r.MessageID)
	if err != nil {
		msg, err = h.session.ChannelMessage(r.ChannelID, r.MessageID)
		if err != nil {
			return ReactionEvent{}, fmt.Errorf("failed to fetch message: %w", err)
		}
	}
	if msg.Author != nil {
		ev.AuthorID = msg.Author.ID
		ev.AuthorIsBot = msg.Author.Bot
	}
	return ev, nil
}

func (h *Handler) sendText(channelID, content string) {
	if _, err := h.session.ChannelMessageSend(channelID, content); err != nil {
		log.WithError(err).Error("Failed to send message")
	}
}

func (h *Handler) sendEmbed(channelID string, embed *discordgo.MessageEmbed) {
	if _, err := h.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.WithError(err).Error("Failed to send embed")
	}
}

func (h *Handler) respondEmbed(i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	err := h.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		log.WithError(err).Error("Failed to respond to interaction")
	}
}

func (h *Handler) respondText(i *discordgo.InteractionCreate, content string) {
	err := h.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
	if err != nil {
		log.WithError(err).Error("Failed to respond to interaction")
	}
}

func (h *Handler) respondError(i *discordgo.InteractionCreate, content string) {
	err := h.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "❌ " + content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.WithError(err).Error("Failed to respond to interaction")
	}
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
