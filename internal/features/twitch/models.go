// Package twitch implements stream notifications: moderators subscribe
// the bot to Twitch channels, Twitch delivers stream.online events over
// an EventSub webhook, and the bot announces the stream in Discord.
package twitch

import "time"

// Subscription is one tracked Twitch channel.
type Subscription struct {
	ID         int64     `db:"id"`
	Username   string    `db:"username"`
	UserID     string    `db:"twitch_user_id"`
	EventSubID string    `db:"twitch_subscription_id"`
	CreatedAt  time.Time `db:"created_at"`
}

// User is the Helix users payload we care about.
type User struct {
	ID              string `json:"id"`
	Login           string `json:"login"`
	DisplayName     string `json:"display_name"`
	ProfileImageURL string `json:"profile_image_url"`
}

// Stream is the Helix streams payload we care about.
type Stream struct {
	Title        string `json:"title"`
	GameName     string `json:"game_name"`
	ThumbnailURL string `json:"thumbnail_url"`
	StartedAt    string `json:"started_at"`
}

// EventSubSubscription is one entry from the Helix EventSub listing.
type EventSubSubscription struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	Condition struct {
		BroadcasterUserID string `json:"broadcaster_user_id"`
	} `json:"condition"`
	Transport struct {
		Callback string `json:"callback"`
	} `json:"transport"`
}

// StreamOnlineEvent is the stream.online notification payload.
type StreamOnlineEvent struct {
	BroadcasterUserID    string `json:"broadcaster_user_id"`
	BroadcasterUserLogin string `json:"broadcaster_user_login"`
	BroadcasterUserName  string `json:"broadcaster_user_name"`
}
