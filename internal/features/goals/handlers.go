// Package goals — handlers.go serves the /goal-* slash commands.
package goals

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"lgt-bot/internal/common"
)

const embedColor = 0x3498db

// Handler bridges Discord and the goals service.
type Handler struct {
	service *Service
	session *discordgo.Session
}

// NewHandler creates the goals command handler.
func NewHandler(service *Service, session *discordgo.Session) *Handler {
	return &Handler{service: service, session: session}
}

// HandleSet serves /goal-set <title> <target>.
func (h *Handler) HandleSet(ctx context.Context, i *discordgo.InteractionCreate, title string, target int) {
	userID := interactionUserID(i)

	g, err := h.service.SetGoal(ctx, userID, title, target)
	switch {
	case errors.Is(err, common.ErrGoalTitleTooShort):
		h.respondError(i, fmt.Sprintf("Goal title needs at least %d characters", MinTitleLength))
		return
	case errors.Is(err, common.ErrGoalTargetRange):
		h.respondError(i, fmt.Sprintf("Weekly target must be between %d and %d", MinTarget, MaxTarget))
		return
	case err != nil:
		log.WithError(err).Error("Failed to create goal")
		h.respondError(i, "Failed to create the goal")
		return
	}

	h.respondText(i, fmt.Sprintf(
		"Goal **#%d** set for this week: %q, %d %s. Check in with /goal-checkin.",
		g.ID, g.Title, g.TargetCount, common.Plural(g.TargetCount, "time"),
	))
}

// HandleCheckIn serves /goal-checkin <goal-id>.
func (h *Handler) HandleCheckIn(ctx context.Context, i *discordgo.InteractionCreate, goalID int64) {
	userID := interactionUserID(i)

	g, err := h.service.CheckIn(ctx, userID, goalID)
	switch {
	case errors.Is(err, common.ErrGoalNotFound):
		h.respondError(i, fmt.Sprintf("Goal #%d not found — /goal-me lists your goals", goalID))
		return
	case errors.Is(err, common.ErrGoalCompleted):
		h.respondError(i, fmt.Sprintf("Goal #%d is already complete for this week", goalID))
		return
	case err != nil:
		log.WithError(err).Error("Failed to check in")
		h.respondError(i, "Failed to record the check-in")
		return
	}

	if g.Completed() {
		h.respondText(i, fmt.Sprintf("🎯 Goal **#%d** complete: %q %s", g.ID, g.Title, ProgressBar(g)))
		return
	}
	h.respondText(i, fmt.Sprintf("Checked in on **#%d** %q: %s %d/%d", g.ID, g.Title, ProgressBar(g), g.CompletionCount, g.TargetCount))
}

// HandleMe serves /goal-me.
func (h *Handler) HandleMe(ctx context.Context, i *discordgo.InteractionCreate) {
	userID := interactionUserID(i)

	goals, err := h.service.MyGoals(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to list goals")
		h.respondError(i, "Failed to load your goals")
		return
	}
	if len(goals) == 0 {
		h.respondText(i, "You have no goals this week. Set one with /goal-set!")
		return
	}

	lines := make([]string, 0, len(goals))
	for _, g := range goals {
		lines = append(lines, FormatGoalLine(g))
	}
	h.respondEmbed(i, &discordgo.MessageEmbed{
		Title:       "Your Goals This Week",
		Color:       embedColor,
		Description: strings.Join(lines, "\n"),
	})
}

// HandleTeam serves /goal-team.
func (h *Handler) HandleTeam(ctx context.Context, i *discordgo.InteractionCreate) {
	goals, err := h.service.TeamGoals(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list team goals")
		h.respondError(i, "Failed to load this week's goals")
		return
	}
	if len(goals) == 0 {
		h.respondText(i, "Nobody has set a goal this week. Be the first with /goal-set!")
		return
	}

	var b strings.Builder
	var lastUser string
	for _, g := range goals {
		if g.UserID != lastUser {
			if lastUser != "" {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "<@%s>\n", g.UserID)
			lastUser = g.UserID
		}
		fmt.Fprintf(&b, "%s %s %d/%d\n", g.Title, ProgressBar(g), g.CompletionCount, g.TargetCount)
	}
	h.respondEmbed(i, &discordgo.MessageEmbed{
		Title:       "Team Goals This Week",
		Color:       embedColor,
		Description: b.String(),
	})
}

// HandleDelete serves /goal-delete <goal-id>.
func (h *Handler) HandleDelete(ctx context.Context, i *discordgo.InteractionCreate, goalID int64) {
	userID := interactionUserID(i)

	err := h.service.DeleteGoal(ctx, userID, goalID)
	switch {
	case errors.Is(err, common.ErrGoalNotFound):
		h.respondError(i, fmt.Sprintf("Goal #%d not found — /goal-me lists your goals", goalID))
		return
	case err != nil:
		log.WithError(err).Error("Failed to delete goal")
		h.respondError(i, "Failed to delete the goal")
		return
	}
	h.respondText(i, fmt.Sprintf("Goal #%d deleted.", goalID))
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
