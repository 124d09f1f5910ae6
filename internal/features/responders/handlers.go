// Package responders — handlers.go wires the message listeners and the
// /roastme command.
package responders

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"lgt-bot/internal/common"
	"lgt-bot/internal/config"
)

// Handler serves the watercooler listeners and /roastme.
type Handler struct {
	session *discordgo.Session
	cfg     *config.Config
	roaster *Roaster
	// chance is swappable so tests can force the clock reply.
	chance func() float64
}

// NewHandler creates the responders handler.
func NewHandler(session *discordgo.Session, cfg *config.Config, roaster *Roaster) *Handler {
	return &Handler{
		session: session,
		cfg:     cfg,
		roaster: roaster,
		chance:  rand.Float64,
	}
}

// HandleMessage runs the watercooler listeners on one gateway message.
func (h *Handler) HandleMessage(m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if h.cfg.WatercoolerChannelID == "" || m.ChannelID != h.cfg.WatercoolerChannelID {
		return
	}

	h.replyAcronyms(m)
	h.maybeReplyClock(m)
}

// replyAcronyms answers messages containing known acronyms with their
// expansions.
func (h *Handler) replyAcronyms(m *discordgo.MessageCreate) {
	definitions := ExpandAcronyms(m.Content)
	if definitions == "" {
		return
	}

	_, err := h.session.ChannelMessageSendReply(m.ChannelID, definitions, m.Reference())
	if err != nil {
		log.WithError(err).Error("Failed to send acronym reply")
		return
	}
	log.WithFields(log.Fields{
		"user_id":    m.Author.ID,
		"channel_id": m.ChannelID,
	}).Info("Expanded acronyms")
}

// maybeReplyClock tells the configured user the time in Eastern, with
// the configured tiny probability.
func (h *Handler) maybeReplyClock(m *discordgo.MessageCreate) {
	if h.cfg.ClockReplyUserID == "" || m.Author.ID != h.cfg.ClockReplyUserID {
		return
	}
	if h.chance() >= h.cfg.ClockReplyChance {
		return
	}

	content := fmt.Sprintf("<@%s> %s", m.Author.ID, common.EasternClock(time.Now()))
	if _, err := h.session.ChannelMessageSend(m.ChannelID, content); err != nil {
		log.WithError(err).Error("Failed to send clock reply")
	}
}

// HandleRoast serves /roastme: defers, feeds recent channel history to
// the model, and edits the deferred response with the roast.
func (h *Handler) HandleRoast(ctx context.Context, i *discordgo.InteractionCreate) {
	err := h.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		log.WithError(err).Error("Failed to defer roast response")
		return
	}

	roast := h.generateRoast(ctx, i)
	if _, err := h.session.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &roast}); err != nil {
		log.WithError(err).Error("Failed to deliver roast")
	}
}

func (h *Handler) generateRoast(ctx context.Context, i *discordgo.InteractionCreate) string {
	if !h.roaster.Enabled() {
		return "The roast machine is unplugged. Ask an admin to configure it."
	}

	userID := interactionUserID(i)
	messages, err := h.session.ChannelMessages(i.ChannelID, h.cfg.RoastMessageLimit, "", "", "")
	if err != nil {
		log.WithError(err).Error("Failed to fetch channel history for roast")
		return "Failed to generate a roast. Maybe you're just too perfect to roast?"
	}

	history := make([]ChatMessage, 0, len(messages))
	for _, msg := range messages {
		if msg.Author == nil || msg.Content == "" {
			continue
		}
		history = append(history, ChatMessage{
			AuthorID: msg.Author.ID,
			Username: msg.Author.Username,
			Content:  msg.Content,
		})
	}

	roast, err := h.roaster.Roast(ctx, history, userID)
	if err != nil {
		log.WithError(err).Error("Failed to generate roast")
		return roastFallback
	}
	return roast
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
