// Package twitch — repository.go works with the twitch_subscriptions
// table.
package twitch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lgt-bot/internal/common"
)

// Repository stores tracked Twitch channels.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates the Twitch subscription repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Add inserts a new tracked channel. Usernames are stored lowercased.
func (r *Repository) Add(ctx context.Context, username, twitchUserID, eventSubID string) (Subscription, error) {
	query := `
		INSERT INTO twitch_subscriptions (username, twitch_user_id, twitch_subscription_id)
		VALUES ($1, $2, $3)
		RETURNING id, username, twitch_user_id, twitch_subscription_id, created_at
	`
	var s Subscription
	err := r.db.QueryRow(ctx, query, strings.ToLower(username), twitchUserID, eventSubID).Scan(
		&s.ID, &s.Username, &s.UserID, &s.EventSubID, &s.CreatedAt,
	)
	if err != nil {
		return Subscription{}, fmt.Errorf("failed to insert twitch subscription: %w", err)
	}
	return s, nil
}

// GetByUsername returns the subscription for a login name, if tracked.
func (r *Repository) GetByUsername(ctx context.Context, username string) (Subscription, error) {
	query := `
		SELECT id, username, twitch_user_id, twitch_subscription_id, created_at
		FROM twitch_subscriptions
		WHERE username = $1
	`
	var s Subscription
	err := r.db.QueryRow(ctx, query, strings.ToLower(username)).Scan(
		&s.ID, &s.Username, &s.UserID, &s.EventSubID, &s.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Subscription{}, common.ErrNotSubscribed
	}
	if err != nil {
		return Subscription{}, fmt.Errorf("failed to query twitch subscription: %w", err)
	}
	return s, nil
}

// List returns all tracked channels, alphabetically.
func (r *Repository) List(ctx context.Context) ([]Subscription, error) {
	query := `
		SELECT id, username, twitch_user_id, twitch_subscription_id, created_at
		FROM twitch_subscriptions
		ORDER BY username
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query twitch subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []Subscription
	for rows.Next() {
		var s Subscription
		if err := rows.Scan(&s.ID, &s.Username, &s.UserID, &s.EventSubID, &s.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// Remove deletes a tracked channel by login name.
func (r *Repository) Remove(ctx context.Context, username string) (bool, error) {
	query := `DELETE FROM twitch_subscriptions WHERE username = $1`
	tag, err := r.db.Exec(ctx, query, strings.ToLower(username))
	if err != nil {
		return false, fmt.Errorf("failed to delete twitch subscription: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateEventSubID stores a fresh EventSub ID after a webhook resync.
func (r *Repository) UpdateEventSubID(ctx context.Context, id int64, eventSubID string) error {
	query := `UPDATE twitch_subscriptions SET twitch_subscription_id = $2 WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id, eventSubID); err != nil {
		return fmt.Errorf("failed to update twitch subscription: %w", err)
	}
	return nil
}
