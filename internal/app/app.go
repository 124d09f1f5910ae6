// Package app initializes every component of the application.
// app.go is the assembly point: database pool, repositories, services,
// handlers, the gateway bot, the webhook server and the scheduler.
package app

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"lgt-bot/internal/bot"
	"lgt-bot/internal/config"
	"lgt-bot/internal/db/postgres"
	"lgt-bot/internal/features/bookclub"
	"lgt-bot/internal/features/goals"
	"lgt-bot/internal/features/kudos"
	"lgt-bot/internal/features/responders"
	"lgt-bot/internal/features/twitch"
	"lgt-bot/internal/jobs"
)

// App holds every long-lived component.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	Webhook   *twitch.WebhookServer
	DB        *pgxpool.Pool
	Session   *discordgo.Session
}

// New creates and wires the application. Initialization order matters,
// the components depend on each other.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. Level table sanity ===
	if err := kudos.ValidateLevels(kudos.Levels); err != nil {
		return nil, fmt.Errorf("broken level table: %w", err)
	}

	// === 2. Database ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := runMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrations failed: %w", err)
	}

	// === 3. Discord session ===
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	session.State.MaxMessageCount = 500

	// === 4. Repositories ===
	kudosLedger := kudos.NewRepository(pool)
	bookclubRepo := bookclub.NewRepository(pool)
	goalsRepo := goals.NewRepository(pool)
	twitchRepo := twitch.NewRepository(pool)

	// === 5. Services ===
	kudosService := kudos.NewService(kudosLedger, cfg)
	bookclubService := bookclub.NewService(bookclubRepo)
	goalsService := goals.NewService(goalsRepo)
	twitchClient := twitch.NewClient(cfg.TwitchClientID, cfg.TwitchClientSecret)
	twitchService := twitch.NewService(twitchRepo, twitchClient, cfg)
	roaster := responders.NewRoaster(cfg.OpenAIAPIKey, cfg.OpenAIModel)

	// === 6. Handlers ===
	kudosHandler := kudos.NewHandler(kudosService, session)
	bookclubHandler := bookclub.NewHandler(bookclubService, session, cfg)
	goalsHandler := goals.NewHandler(goalsService, session)
	twitchHandler := twitch.NewHandler(twitchService, session, cfg)
	respondersHandler := responders.NewHandler(session, cfg, roaster)

	// === 7. Gateway bot ===
	b := bot.New(session, cfg, kudosHandler, bookclubHandler, goalsHandler, twitchHandler, respondersHandler)

	// === 8. Twitch webhook receiver ===
	var webhook *twitch.WebhookServer
	if cfg.FeatureTwitchEnabled {
		webhook = twitch.NewWebhookServer(cfg.TwitchWebhookSecret, cfg.TwitchWebhookPort, twitchHandler)
	}

	// === 9. Scheduler ===
	announce := func(channelID, text string) {
		if _, err := session.ChannelMessageSend(channelID, text); err != nil {
			log.WithError(err).WithField("channel_id", channelID).Error("Failed to send scheduled message")
		}
	}
	scheduler := jobs.NewScheduler(cfg, goalsService, twitchService, announce)

	return &App{
		Bot:       b,
		Scheduler: scheduler,
		Webhook:   webhook,
		DB:        pool,
		Session:   session,
	}, nil
}

// runMigrations applies all SQL migrations in order.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.EnsureMigrationTable(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001KudosReactions},
		{2, migration002BookClubBans},
		{3, migration003Goals},
		{4, migration004TwitchSubscriptions},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("migration %d: %w", m.version, err)
		}
		log.Infof("Migration %d applied", m.version)
	}

	return nil
}

// SQL migrations are embedded in the binary to keep deploys a single
// artifact.

var migration001KudosReactions = `
CREATE TABLE IF NOT EXISTS kudos_reactions (
    id BIGSERIAL PRIMARY KEY,
    message_id VARCHAR(32) NOT NULL,
    channel_id VARCHAR(32) NOT NULL,
    author_id VARCHAR(32) NOT NULL,
    reactor_id VARCHAR(32) NOT NULL,
    created_at TIMESTAMPTZ DEFAULT NOW(),
    UNIQUE (message_id, reactor_id)
);
CREATE INDEX IF NOT EXISTS idx_kudos_reactions_author ON kudos_reactions(author_id);
CREATE INDEX IF NOT EXISTS idx_kudos_reactions_reactor ON kudos_reactions(reactor_id);
CREATE INDEX IF NOT EXISTS idx_kudos_reactions_message ON kudos_reactions(message_id);
CREATE INDEX IF NOT EXISTS idx_kudos_reactions_created_at ON kudos_reactions(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_kudos_reactions_reactor_author_created
    ON kudos_reactions(reactor_id, author_id, created_at);
`

var migration002BookClubBans = `
CREATE TABLE IF NOT EXISTS book_club_bans (
    id BIGSERIAL PRIMARY KEY,
    user_id VARCHAR(32) NOT NULL,
    message_id VARCHAR(32) NOT NULL,
    created_at TIMESTAMPTZ DEFAULT NOW(),
    UNIQUE (user_id, message_id)
);
CREATE INDEX IF NOT EXISTS idx_book_club_bans_user ON book_club_bans(user_id);
`

var migration003Goals = `
CREATE TABLE IF NOT EXISTS goals (
    id BIGSERIAL PRIMARY KEY,
    user_id VARCHAR(32) NOT NULL,
    title VARCHAR(255) NOT NULL,
    target_count INTEGER NOT NULL,
    completion_count INTEGER NOT NULL DEFAULT 0,
    week_identifier VARCHAR(10) NOT NULL,
    created_at TIMESTAMPTZ DEFAULT NOW(),
    deleted_at TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_goals_user_week ON goals(user_id, week_identifier);
CREATE INDEX IF NOT EXISTS idx_goals_week ON goals(week_identifier);
`

var migration004TwitchSubscriptions = `
CREATE TABLE IF NOT EXISTS twitch_subscriptions (
    id BIGSERIAL PRIMARY KEY,
    username VARCHAR(64) UNIQUE NOT NULL,
    twitch_user_id VARCHAR(32) NOT NULL,
    twitch_subscription_id VARCHAR(64),
    created_at TIMESTAMPTZ DEFAULT NOW()
);
`
