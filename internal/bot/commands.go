// commands.go declares the slash commands and routes interactions to
// the feature handlers.
package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"lgt-bot/internal/bot/middleware"
)

// moderatorPermission gates the twitch commands in the Discord UI.
var moderatorPermission int64 = discordgo.PermissionManageServer

func (b *Bot) commandDefinitions() []*discordgo.ApplicationCommand {
	var cmds []*discordgo.ApplicationCommand

	if b.cfg.FeatureKudosEnabled {
		cmds = append(cmds,
			&discordgo.ApplicationCommand{
				Name:        "kudos-rank",
				Description: "Show kudos stats for you or another member",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "user",
						Description: "Member to look up (defaults to you)",
					},
				},
			},
			&discordgo.ApplicationCommand{
				Name:        "kudos-leaderboard",
				Description: "Show the kudos leaderboard",
			},
			&discordgo.ApplicationCommand{
				Name:        "kudos-progress",
				Description: "Show your progress toward the next level",
			},
			&discordgo.ApplicationCommand{
				Name:        "kudos-top",
				Description: "Show the most-appreciated messages",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "timeframe",
						Description: `Window like "7 days"`,
					},
				},
			},
		)
	}

	if b.cfg.FeatureBookClubEnabled {
		cmds = append(cmds, &discordgo.ApplicationCommand{
			Name:        "bookclub-bans",
			Description: "Show the Book Club ban leaderboard",
		})
	}

	if b.cfg.FeatureGoalsEnabled {
		minTarget, maxTarget := float64(1), float64(10)
		cmds = append(cmds,
			&discordgo.ApplicationCommand{
				Name:        "goal-set",
				Description: "Set a goal for this week",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "title",
						Description: "What you want to get done",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "target",
						Description: "How many times this week (1-10)",
						Required:    true,
						MinValue:    &minTarget,
						MaxValue:    maxTarget,
					},
				},
			},
			&discordgo.ApplicationCommand{
				Name:        "goal-checkin",
				Description: "Check in on one of your goals",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "goal-id",
						Description: "Goal number from /goal-me",
						Required:    true,
					},
				},
			},
			&discordgo.ApplicationCommand{
				Name:        "goal-me",
				Description: "List your goals for this week",
			},
			&discordgo.ApplicationCommand{
				Name:        "goal-team",
				Description: "List everyone's goals for this week",
			},
			&discordgo.ApplicationCommand{
				Name:        "goal-delete",
				Description: "Delete one of your goals",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "goal-id",
						Description: "Goal number from /goal-me",
						Required:    true,
					},
				},
			},
		)
	}

	if b.cfg.FeatureTwitchEnabled {
		cmds = append(cmds,
			&discordgo.ApplicationCommand{
				Name:                     "twitch-subscribe",
				Description:              "Announce when a Twitch channel goes live",
				DefaultMemberPermissions: &moderatorPermission,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "username",
						Description: "Twitch login name",
						Required:    true,
					},
				},
			},
			&discordgo.ApplicationCommand{
				Name:                     "twitch-unsubscribe",
				Description:              "Stop announcing a Twitch channel",
				DefaultMemberPermissions: &moderatorPermission,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "username",
						Description: "Twitch login name",
						Required:    true,
					},
				},
			},
			&discordgo.ApplicationCommand{
				Name:                     "twitch-list",
				Description:              "List tracked Twitch channels",
				DefaultMemberPermissions: &moderatorPermission,
			},
		)
	}

	if b.cfg.FeatureRespondersEnabled {
		cmds = append(cmds, &discordgo.ApplicationCommand{
			Name:        "roastme",
			Description: "Get playfully roasted based on recent messages",
		})
	}

	return cmds
}

func (b *Bot) registerCommands() error {
	defs := b.commandDefinitions()
	registered, err := b.session.ApplicationCommandBulkOverwrite(b.cfg.DiscordAppID, b.cfg.GuildID, defs)
	if err != nil {
		return err
	}
	b.registeredCommands = registered
	log.WithField("count", len(registered)).Info("Slash commands registered")
	return nil
}

func (b *Bot) unregisterCommands() {
	for _, cmd := range b.registeredCommands {
		if err := b.session.ApplicationCommandDelete(b.cfg.DiscordAppID, b.cfg.GuildID, cmd.ID); err != nil {
			log.WithError(err).WithField("command", cmd.Name).Warn("Failed to delete slash command")
		}
	}
}

func (b *Bot) onInteractionCreate(ctx context.Context) func(*discordgo.Session, *discordgo.InteractionCreate) {
	return func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		defer middleware.RecoverFromPanic()

		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		if !b.guildFilter.Allow(i.GuildID) {
			return
		}

		userID := interactionUserID(i)
		middleware.LogInteraction(i, userID)

		if userID != "" && !b.rateLimiter.Allow(userID) {
			log.WithField("user_id", userID).Debug("rate limited")
			b.respondRateLimited(i)
			return
		}

		data := i.ApplicationCommandData()
		switch data.Name {
		case "kudos-rank":
			b.kudosHandler.HandleRank(ctx, i, stringOption(data, "user"))
		case "kudos-leaderboard":
			b.kudosHandler.HandleLeaderboard(ctx, i)
		case "kudos-progress":
			b.kudosHandler.HandleProgress(ctx, i)
		case "kudos-top":
			b.kudosHandler.HandleTop(ctx, i, stringOption(data, "timeframe"))

		case "bookclub-bans":
			b.bookclubHandler.HandleLeaderboard(ctx, i)

		case "goal-set":
			b.goalsHandler.HandleSet(ctx, i, stringOption(data, "title"), int(intOption(data, "target")))
		case "goal-checkin":
			b.goalsHandler.HandleCheckIn(ctx, i, intOption(data, "goal-id"))
		case "goal-me":
			b.goalsHandler.HandleMe(ctx, i)
		case "goal-team":
			b.goalsHandler.HandleTeam(ctx, i)
		case "goal-delete":
			b.goalsHandler.HandleDelete(ctx, i, intOption(data, "goal-id"))

		case "twitch-subscribe":
			b.twitchHandler.HandleSubscribe(ctx, i, stringOption(data, "username"))
		case "twitch-unsubscribe":
			b.twitchHandler.HandleUnsubscribe(ctx, i, stringOption(data, "username"))
		case "twitch-list":
			b.twitchHandler.HandleList(ctx, i)

		case "roastme":
			b.respondersHandler.HandleRoast(ctx, i)
		}
	}
}

func (b *Bot) respondRateLimited(i *discordgo.InteractionCreate) {
	err := b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "⏳ Slow down — try again in a minute.",
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.WithError(err).Error("Failed to respond to interaction")
	}
}

// stringOption returns a string or user option value, "" when absent.
func stringOption(data discordgo.ApplicationCommandInteractionData, name string) string {
	for _, opt := range data.Options {
		if opt.Name != name {
			continue
		}
		switch opt.Type {
		case discordgo.ApplicationCommandOptionUser:
			return opt.Value.(string)
		default:
			return opt.StringValue()
		}
	}
	return ""
}

// intOption returns an integer option value, 0 when absent.
func intOption(data discordgo.ApplicationCommandInteractionData, name string) int64 {
	for _, opt := range data.Options {
		if opt.Name == name {
			return opt.IntValue()
		}
	}
	return 0
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
