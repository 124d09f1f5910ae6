// Package twitch — service.go orchestrates the repository, the Helix
// client and the periodic webhook resync.
package twitch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"lgt-bot/internal/common"
	"lgt-bot/internal/config"
)

// Service manages Twitch channel subscriptions.
type Service struct {
	repo   *Repository
	client *Client
	cfg    *config.Config
}

// NewService creates the Twitch service.
func NewService(repo *Repository, client *Client, cfg *config.Config) *Service {
	return &Service{repo: repo, client: client, cfg: cfg}
}

// Subscribe starts tracking a Twitch channel: resolves the login,
// registers the EventSub webhook and persists the subscription.
func (s *Service) Subscribe(ctx context.Context, username string) (Subscription, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return Subscription{}, common.ErrAlreadySubscribed
	} else if !errors.Is(err, common.ErrNotSubscribed) {
		return Subscription{}, err
	}

	user, err := s.client.GetUser(ctx, username)
	if err != nil {
		return Subscription{}, err
	}

	eventSubID, err := s.client.CreateEventSub(ctx, user.ID, s.callbackURL(), s.cfg.TwitchWebhookSecret)
	if err != nil {
		return Subscription{}, fmt.Errorf("failed to register eventsub webhook: %w", err)
	}

	return s.repo.Add(ctx, username, user.ID, eventSubID)
}

// Unsubscribe stops tracking a channel and tears down its webhook.
func (s *Service) Unsubscribe(ctx context.Context, username string) error {
	sub, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if sub.EventSubID != "" {
		if err := s.client.DeleteEventSub(ctx, sub.EventSubID); err != nil {
			// The row still goes away; a stale EventSub gets swept by Sync.
			log.WithError(err).WithField("username", sub.Username).Warn("Failed to delete eventsub subscription")
		}
	}

	removed, err := s.repo.Remove(ctx, username)
	if err != nil {
		return err
	}
	if !removed {
		return common.ErrNotSubscribed
	}
	return nil
}

// List returns all tracked channels.
func (s *Service) List(ctx context.Context) ([]Subscription, error) {
	return s.repo.List(ctx)
}

// LookupByTwitchID finds the tracked channel for a broadcaster ID.
func (s *Service) LookupByTwitchID(ctx context.Context, twitchUserID string) (Subscription, bool, error) {
	subs, err := s.repo.List(ctx)
	if err != nil {
		return Subscription{}, false, err
	}
	for _, sub := range subs {
		if sub.UserID == twitchUserID {
			return sub, true, nil
		}
	}
	return Subscription{}, false, nil
}

// UserInfo fetches the broadcaster profile, used for the announcement
// avatar.
func (s *Service) UserInfo(ctx context.Context, login string) (User, error) {
	return s.client.GetUser(ctx, login)
}

// StreamInfo fetches live-stream details for an announcement.
func (s *Service) StreamInfo(ctx context.Context, twitchUserID string) (Stream, bool, error) {
	return s.client.GetStream(ctx, twitchUserID)
}

// Sync reconciles EventSub state with the subscription table: dead or
// orphaned webhooks are removed, tracked channels missing a healthy
// webhook get a fresh one. Runs periodically from the scheduler.
func (s *Service) Sync(ctx context.Context) error {
	subs, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	remote, err := s.client.ListEventSubs(ctx)
	if err != nil {
		return err
	}

	tracked := make(map[string]Subscription, len(subs))
	for _, sub := range subs {
		tracked[sub.UserID] = sub
	}

	healthy := make(map[string]bool, len(remote))
	for _, es := range remote {
		if es.Type != "stream.online" {
			continue
		}
		sub, ok := tracked[es.Condition.BroadcasterUserID]
		if ok && es.Status == "enabled" && es.Transport.Callback == s.callbackURL() {
			healthy[sub.UserID] = true
			continue
		}
		if err := s.client.DeleteEventSub(ctx, es.ID); err != nil {
			log.WithError(err).WithField("eventsub_id", es.ID).Warn("Failed to delete stale eventsub subscription")
		}
	}

	for _, sub := range subs {
		if healthy[sub.UserID] {
			continue
		}
		eventSubID, err := s.client.CreateEventSub(ctx, sub.UserID, s.callbackURL(), s.cfg.TwitchWebhookSecret)
		if err != nil {
			log.WithError(err).WithField("username", sub.Username).Error("Failed to re-register eventsub webhook")
			continue
		}
		if err := s.repo.UpdateEventSubID(ctx, sub.ID, eventSubID); err != nil {
			log.WithError(err).WithField("username", sub.Username).Error("Failed to store eventsub id")
		}
	}
	return nil
}

func (s *Service) callbackURL() string {
	return strings.TrimRight(s.cfg.TwitchWebhookURL, "/") + "/twitch/webhook"
}
