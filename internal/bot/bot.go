// Package bot holds the Discord gateway lifecycle: session setup,
// event routing through the middleware, and slash-command dispatch.
package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"lgt-bot/internal/bot/filters"
	"lgt-bot/internal/bot/middleware"
	"lgt-bot/internal/config"
	"lgt-bot/internal/features/bookclub"
	"lgt-bot/internal/features/goals"
	"lgt-bot/internal/features/kudos"
	"lgt-bot/internal/features/responders"
	"lgt-bot/internal/features/twitch"
)

// Bot ties the Discord session to the feature handlers.
type Bot struct {
	session *discordgo.Session
	cfg     *config.Config

	guildFilter *filters.GuildFilter
	rateLimiter *middleware.RateLimiter

	kudosHandler      *kudos.Handler
	bookclubHandler   *bookclub.Handler
	goalsHandler      *goals.Handler
	twitchHandler     *twitch.Handler
	respondersHandler *responders.Handler

	registeredCommands []*discordgo.ApplicationCommand
}

// New creates the bot with all its dependencies.
func New(
	session *discordgo.Session,
	cfg *config.Config,
	kudosHandler *kudos.Handler,
	bookclubHandler *bookclub.Handler,
	goalsHandler *goals.Handler,
	twitchHandler *twitch.Handler,
	respondersHandler *responders.Handler,
) *Bot {
	return &Bot{
		session:           session,
		cfg:               cfg,
		guildFilter:       filters.NewGuildFilter(cfg.GuildID),
		rateLimiter:       middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		kudosHandler:      kudosHandler,
		bookclubHandler:   bookclubHandler,
		goalsHandler:      goalsHandler,
		twitchHandler:     twitchHandler,
		respondersHandler: respondersHandler,
	}
}

// Start connects to the gateway and registers the slash commands.
func (b *Bot) Start(ctx context.Context) error {
	b.session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsMessageContent

	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.WithField("username", r.User.Username).Info("Bot connected and listening...")
	})
	b.session.AddHandler(b.onMessageCreate)
	b.session.AddHandler(b.onMemberUpdate)
	b.session.AddHandler(b.onReactionAdd(ctx))
	b.session.AddHandler(b.onReactionRemove(ctx))
	b.session.AddHandler(b.onInteractionCreate(ctx))

	if err := b.session.Open(); err != nil {
		return err
	}
	return b.registerCommands()
}

// Stop unregisters commands and closes the gateway connection.
func (b *Bot) Stop() {
	b.unregisterCommands()
	b.rateLimiter.Close()
	if err := b.session.Close(); err != nil {
		log.WithError(err).Warn("Failed to close Discord session")
	}
}

func (b *Bot) onMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	defer middleware.RecoverFromPanic()

	if !b.guildFilter.Allow(m.GuildID) {
		return
	}
	middleware.LogMessage(m)

	if b.cfg.FeatureRespondersEnabled {
		b.respondersHandler.HandleMessage(m)
	}
}

func (b *Bot) onMemberUpdate(_ *discordgo.Session, m *discordgo.GuildMemberUpdate) {
	defer middleware.RecoverFromPanic()

	if !b.guildFilter.Allow(m.GuildID) {
		return
	}
	if b.cfg.FeatureRespondersEnabled {
		b.respondersHandler.HandleMemberUpdate(m)
	}
}

func (b *Bot) onReactionAdd(ctx context.Context) func(*discordgo.Session, *discordgo.MessageReactionAdd) {
	return func(_ *discordgo.Session, r *discordgo.MessageReactionAdd) {
		defer middleware.RecoverFromPanic()

		if !b.guildFilter.Allow(r.GuildID) {
			return
		}
		if b.cfg.FeatureKudosEnabled {
			b.kudosHandler.HandleReactionAdd(ctx, r)
		}
		if b.cfg.FeatureBookClubEnabled {
			b.bookclubHandler.HandleReactionAdd(ctx, r)
		}
	}
}

func (b *Bot) onReactionRemove(ctx context.Context) func(*discordgo.Session, *discordgo.MessageReactionRemove) {
	return func(_ *discordgo.Session, r *discordgo.MessageReactionRemove) {
		defer middleware.RecoverFromPanic()

		if !b.guildFilter.Allow(r.GuildID) {
			return
		}
		if b.cfg.FeatureKudosEnabled {
			b.kudosHandler.HandleReactionRemove(ctx, r)
		}
		if b.cfg.FeatureBookClubEnabled {
			b.bookclubHandler.HandleReactionRemove(ctx, r)
		}
	}
}
