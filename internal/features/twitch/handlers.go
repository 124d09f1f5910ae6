// Package twitch — handlers.go serves the /twitch-* commands and turns
// verified stream.online events into Discord announcements.
package twitch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"lgt-bot/internal/common"
	"lgt-bot/internal/config"
)

// Twitch brand purple.
const embedColor = 0x6441a5

// Handler bridges Discord and the Twitch service. It also implements
// Notifier for the webhook receiver.
type Handler struct {
	service *Service
	session *discordgo.Session
	cfg     *config.Config
}

// NewHandler creates the Twitch command handler.
func NewHandler(service *Service, session *discordgo.Session, cfg *config.Config) *Handler {
	return &Handler{service: service, session: session, cfg: cfg}
}

// HandleSubscribe serves /twitch-subscribe <username>.
func (h *Handler) HandleSubscribe(ctx context.Context, i *discordgo.InteractionCreate, username string) {
	sub, err := h.service.Subscribe(ctx, username)
	switch {
	case errors.Is(err, common.ErrAlreadySubscribed):
		h.respondError(i, fmt.Sprintf("Already subscribed to **%s**", strings.ToLower(username)))
		return
	case errors.Is(err, common.ErrTwitchUserNotFound):
		h.respondError(i, fmt.Sprintf("Twitch user **%s** not found", username))
		return
	case err != nil:
		log.WithError(err).WithField("username", username).Error("Failed to subscribe to twitch channel")
		h.respondError(i, "Failed to subscribe — try again later")
		return
	}
	h.respondText(i, fmt.Sprintf("🟣 Subscribed to **%s** — stream notifications are on.", sub.Username))
}

// HandleUnsubscribe serves /twitch-unsubscribe <username>.
func (h *Handler) HandleUnsubscribe(ctx context.Context, i *discordgo.InteractionCreate, username string) {
	err := h.service.Unsubscribe(ctx, username)
	switch {
	case errors.Is(err, common.ErrNotSubscribed):
		h.respondError(i, fmt.Sprintf("Not subscribed to **%s**", strings.ToLower(username)))
		return
	case err != nil:
		log.WithError(err).WithField("username", username).Error("Failed to unsubscribe from twitch channel")
		h.respondError(i, "Failed to unsubscribe — try again later")
		return
	}
	h.respondText(i, fmt.Sprintf("Unsubscribed from **%s**.", strings.ToLower(username)))
}

// HandleList serves /twitch-list.
func (h *Handler) HandleList(ctx context.Context, i *discordgo.InteractionCreate) {
	subs, err := h.service.List(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list twitch subscriptions")
		h.respondError(i, "Failed to load subscriptions")
		return
	}
	if len(subs) == 0 {
		h.respondText(i, "No Twitch channels are tracked. Add one with /twitch-subscribe.")
		return
	}

	lines := make([]string, 0, len(subs))
	for _, sub := range subs {
		lines = append(lines, fmt.Sprintf("• [%s](https://twitch.tv/%s)", sub.Username, sub.Username))
	}
	err = h.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{{
				Title:       "Tracked Twitch Channels",
				Color:       embedColor,
				Description: strings.Join(lines, "\n"),
			}},
		},
	})
	if err != nil {
		log.WithError(err).Error("Failed to respond to interaction")
	}
}

// StreamOnline announces a verified stream.online event. Errors are
// logged and swallowed; a failed announcement must not fail the
// webhook delivery.
func (h *Handler) StreamOnline(ctx context.Context, event StreamOnlineEvent) {
	channelID := h.cfg.NotificationChannelID
	if channelID == "" {
		return
	}

	if _, tracked, err := h.service.LookupByTwitchID(ctx, event.BroadcasterUserID); err != nil {
		log.WithError(err).Error("Failed to look up tracked channel")
		return
	} else if !tracked {
		log.WithField("broadcaster_id", event.BroadcasterUserID).Warn("Received event for untracked channel")
		return
	}

	name := event.BroadcasterUserName
	if name == "" {
		name = event.BroadcasterUserLogin
	}
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🔴 %s is live on Twitch!", name),
		URL:   "https://twitch.tv/" + event.BroadcasterUserLogin,
		Color: embedColor,
	}

	if user, err := h.service.UserInfo(ctx, event.BroadcasterUserLogin); err == nil && user.ProfileImageURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: user.ProfileImageURL}
	}

	stream, live, err := h.service.StreamInfo(ctx, event.BroadcasterUserID)
	if err != nil {
		log.WithError(err).Warn("Failed to fetch stream details, announcing without them")
	} else if live {
		embed.Description = stream.Title
		if stream.GameName != "" {
			embed.Fields = []*discordgo.MessageEmbedField{
				{Name: "Playing", Value: stream.GameName, Inline: true},
			}
		}
		if stream.ThumbnailURL != "" {
			embed.Image = &discordgo.MessageEmbedImage{URL: ThumbnailURL(stream.ThumbnailURL)}
		}
	}

	if _, err := h.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.WithError(err).Error("Failed to send stream announcement")
	}
}

// ThumbnailURL fills the {width}x{height} placeholders Helix returns.
func ThumbnailURL(template string) string {
	template = strings.Replace(template, "{width}", "1280", 1)
	return strings.Replace(template, "{height}", "720", 1)
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
