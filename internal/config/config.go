// Package config loads the bot configuration from environment variables.
// envconfig maps environment variables onto the Config struct fields.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds ALL application settings.
type Config struct {
	// --- Discord ---
	DiscordToken string `envconfig:"DISCORD_TOKEN" required:"true"`
	DiscordAppID string `envconfig:"DISCORD_APP_ID" required:"true"`
	// The single guild the bot serves. Events from other guilds are dropped.
	GuildID string `envconfig:"GUILD_ID" required:"true"`

	// --- Database ---
	// Inside Docker "localhost" is almost always wrong; default to the
	// compose service name and override DB_HOST=localhost for local runs.
	DBHost     string `envconfig:"DB_HOST" default:"postgres"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"botuser"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" default:"lgt_bot"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`
	AppTimezone string `envconfig:"APP_TIMEZONE" default:"America/New_York"`

	// --- Kudos ---
	KudosEmoji            string `envconfig:"KUDOS_EMOJI" default:"lgt"`
	KudosLeaderboardSize  int    `envconfig:"KUDOS_LEADERBOARD_SIZE" default:"10"`
	KudosDefaultTimeframe string `envconfig:"KUDOS_DEFAULT_TIMEFRAME" default:"7 days"`

	// --- Book club ---
	BookClubChannelID   string `envconfig:"BOOK_CLUB_CHANNEL_ID"`
	BookClubModeratorID string `envconfig:"BOOK_CLUB_MODERATOR_ID"`
	BanhammerEmoji      string `envconfig:"BANHAMMER_EMOJI" default:"banhammer"`

	// --- Goals ---
	GoalsChannelID string `envconfig:"GOALS_CHANNEL_ID"`

	// --- Responders ---
	WatercoolerChannelID string  `envconfig:"WATERCOOLER_CHANNEL_ID"`
	ClockReplyUserID     string  `envconfig:"CLOCK_REPLY_USER_ID"`
	ClockReplyChance     float64 `envconfig:"CLOCK_REPLY_CHANCE" default:"0.004"`

	// --- Weekly Wins ---
	WeeklyWinsRoleID         string `envconfig:"WEEKLY_WINS_ROLE_ID"`
	WeeklyWinsChatChannelID  string `envconfig:"WEEKLY_WINS_CHAT_CHANNEL_ID"`
	WeeklyWinsPostsChannelID string `envconfig:"WEEKLY_WINS_POSTS_CHANNEL_ID"`

	// --- Twitch ---
	NotificationChannelID string `envconfig:"NOTIFICATION_CHANNEL_ID"`
	TwitchClientID        string `envconfig:"TWITCH_CLIENT_ID"`
	TwitchClientSecret    string `envconfig:"TWITCH_CLIENT_SECRET"`
	TwitchWebhookURL      string `envconfig:"TWITCH_WEBHOOK_URL"`
	TwitchWebhookSecret   string `envconfig:"TWITCH_WEBHOOK_SECRET"`
	TwitchWebhookPort     int    `envconfig:"TWITCH_WEBHOOK_PORT" default:"3000"`

	// --- OpenAI (roast command) ---
	OpenAIAPIKey      string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel       string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	RoastMessageLimit int    `envconfig:"ROAST_MESSAGE_LIMIT" default:"25"`

	// --- Rate limiting ---
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"10"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`

	// --- Feature flags ---
	FeatureKudosEnabled      bool `envconfig:"FEATURE_KUDOS_ENABLED" default:"true"`
	FeatureBookClubEnabled   bool `envconfig:"FEATURE_BOOKCLUB_ENABLED" default:"true"`
	FeatureGoalsEnabled      bool `envconfig:"FEATURE_GOALS_ENABLED" default:"true"`
	FeatureTwitchEnabled     bool `envconfig:"FEATURE_TWITCH_ENABLED" default:"true"`
	FeatureRespondersEnabled bool `envconfig:"FEATURE_RESPONDERS_ENABLED" default:"true"`
}

// DatabaseDSN returns the PostgreSQL connection string in DSN form.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) Validate() error {
	if c.GuildID == "" {
		return fmt.Errorf("GUILD_ID is empty")
	}
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("invalid DB_MIN_CONNS/DB_MAX_CONNS")
	}
	if c.KudosEmoji == "" {
		return fmt.Errorf("KUDOS_EMOJI is empty")
	}
	if c.KudosLeaderboardSize <= 0 {
		return fmt.Errorf("KUDOS_LEADERBOARD_SIZE must be > 0")
	}
	if c.ClockReplyChance < 0 || c.ClockReplyChance > 1 {
		return fmt.Errorf("CLOCK_REPLY_CHANCE must be within [0, 1]")
	}
	if c.FeatureTwitchEnabled {
		if c.TwitchClientID == "" || c.TwitchClientSecret == "" {
			return fmt.Errorf("TWITCH_CLIENT_ID/TWITCH_CLIENT_SECRET required when the Twitch feature is enabled")
		}
		if c.TwitchWebhookSecret == "" {
			return fmt.Errorf("TWITCH_WEBHOOK_SECRET required when the Twitch feature is enabled")
		}
	}
	return nil
}

// Load reads environment variables and fills the Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
