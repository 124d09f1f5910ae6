// Package bookclub — handlers.go adapts Discord gateway events and the
// /bookclub-bans command onto the service.
package bookclub

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"lgt-bot/internal/common"
	"lgt-bot/internal/config"
)

const embedColor = 0x8b0000

// Handler bridges Discord and the book-club ban service.
type Handler struct {
	service *Service
	session *discordgo.Session
	cfg     *config.Config
}

// NewHandler creates the book-club event/command handler.
func NewHandler(service *Service, session *discordgo.Session, cfg *config.Config) *Handler {
	return &Handler{service: service, session: session, cfg: cfg}
}

// HandleReactionAdd records a ban when the moderator drops the banhammer.
// Reactions from anyone else, or with any other emoji, are ignored.
func (h *Handler) HandleReactionAdd(ctx context.Context, r *discordgo.MessageReactionAdd) {
	if !h.matches(r.MessageReaction) {
		return
	}

	authorID, err := h.messageAuthor(r.ChannelID, r.MessageID)
	if err != nil {
		log.WithError(err).WithField("message_id", r.MessageID).Error("Failed to resolve banned message")
		return
	}
	if authorID == "" {
		return
	}

	result, err := h.service.RecordBan(ctx, authorID, r.MessageID)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"user_id":    authorID,
			"message_id": r.MessageID,
		}).Error("Failed to record ban")
		return
	}
	if !result.Recorded {
		return
	}

	h.announce(BanAnnouncement(authorID, result, RandomModeratorTitle()))
}

// HandleReactionRemove lifts the ban tied to the retracted banhammer.
func (h *Handler) HandleReactionRemove(ctx context.Context, r *discordgo.MessageReactionRemove) {
	if !h.matches(r.MessageReaction) {
		return
	}

	authorID, err := h.messageAuthor(r.ChannelID, r.MessageID)
	if err != nil {
		log.WithError(err).WithField("message_id", r.MessageID).Error("Failed to resolve unbanned message")
		return
	}
	if authorID == "" {
		return
	}

	result, err := h.service.LiftBan(ctx, authorID, r.MessageID)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"user_id":    authorID,
			"message_id": r.MessageID,
		}).Error("Failed to lift ban")
		return
	}
	if !result.Found {
		return
	}

	h.announce(LiftAnnouncement(authorID, result, RandomModeratorTitle()))
}

// HandleLeaderboard serves /bookclub-bans.
func (h *Handler) HandleLeaderboard(ctx context.Context, i *discordgo.InteractionCreate) {
	counts, err := h.service.Leaderboard(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to load ban leaderboard")
		h.respondError(i, "Failed to load the ban leaderboard")
		return
	}
	counts = h.filterToGuildMembers(counts)
	if len(counts) == 0 {
		h.respondText(i, "Nobody has been banned from Book Club. Yet.")
		return
	}

	lines := make([]string, 0, len(counts))
	for idx, c := range counts {
		lines = append(lines, fmt.Sprintf(
			"%d. <@%s> - %s",
			idx+1, c.UserID, common.FormatCount(c.Count, "ban"),
		))
	}

	err = h.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{{
				Title:       "📚 Book Club Ban Leaderboard",
				Color:       embedColor,
				Description: strings.Join(lines, "\n"),
			}},
		},
	})
	if err != nil {
		log.WithError(err).Error("Failed to respond to interaction")
	}
}

// filterToGuildMembers drops rows for users who have since left the
// guild. On a member-list failure the unfiltered board is shown rather
// than nothing.
func (h *Handler) filterToGuildMembers(counts []BanCount) []BanCount {
	members := make(map[string]bool)
	after := ""
	for {
		page, err := h.session.GuildMembers(h.cfg.GuildID, after, 1000)
		if err != nil {
			log.WithError(err).Warn("Failed to list guild members, showing unfiltered leaderboard")
			return counts
		}
		for _, m := range page {
			if m.User != nil {
				members[m.User.ID] = true
			}
		}
		if len(page) < 1000 {
			break
		}
		after = page[len(page)-1].User.ID
	}

	filtered := counts[:0]
	for _, c := range counts {
		if members[c.UserID] {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// matches gates on the banhammer emoji and the configured moderator.
func (h *Handler) matches(r *discordgo.MessageReaction) bool {
	if r.Emoji.Name != h.cfg.BanhammerEmoji {
		return false
	}
	return h.cfg.BookClubModeratorID != "" && r.UserID == h.cfg.BookClubModeratorID
}

func (h *Handler) messageAuthor(channelID, messageID string) (string, error) {
	msg, err := h.session.State.Message(channelID, messageID)
	if err != nil {
		msg, err = h.session.ChannelMessage(channelID, messageID)
		if err != nil {
			return "", fmt.Errorf("failed to fetch message: %w", err)
		}
	}
	if msg.Author == nil || msg.Author.Bot {
		return "", nil
	}
	return msg.Author.ID, nil
}

func (h *Handler) announce(content string) {
	channelID := h.cfg.BookClubChannelID
	if channelID == "" {
		return
	}
	if _, err := h.session.ChannelMessageSend(channelID, content); err != nil {
		log.WithError(err).Error("Failed to send ban announcement")
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
