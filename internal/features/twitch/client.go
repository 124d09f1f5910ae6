// Package twitch — client.go is a thin Helix API client with an app
// access token cached behind a mutex.
package twitch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"lgt-bot/internal/common"
)

const (
	tokenURL  = "https://id.twitch.tv/oauth2/token"
	helixBase = "https://api.twitch.tv/helix"
)

// tokenCache holds the current app access token. Tokens last weeks but
// we refresh a minute early to never send one mid-expiry.
type tokenCache struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// Client calls the Twitch Helix API with app authentication.
type Client struct {
	clientID     string
	clientSecret string
	http         *http.Client
	cache        tokenCache
}

// NewClient creates the Helix client.
func NewClient(clientID, clientSecret string) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		http:         &http.Client{Timeout: 10 * time.Second},
	}
}

// accessToken returns a valid app access token, fetching a fresh one
// through the client-credentials flow when the cached one expires.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.cache.mu.Lock()
	defer c.cache.mu.Unlock()

	if c.cache.token != "" && time.Now().Before(c.cache.expiresAt) {
		return c.cache.token, nil
	}

	form := url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"grant_type":    {"client_credentials"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, bytes.NewBufferString(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch app access token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned %s", resp.Status)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	c.cache.token = body.AccessToken
	c.cache.expiresAt = time.Now().Add(time.Duration(body.ExpiresIn)*time.Second - time.Minute)
	return c.cache.token, nil
}

// GetUser resolves a Twitch login name.
func (c *Client) GetUser(ctx context.Context, login string) (User, error) {
	var body struct {
		Data []User `json:"data"`
	}
	if err := c.get(ctx, "/users?login="+url.QueryEscape(login), &body); err != nil {
		return User{}, err
	}
	if len(body.Data) == 0 {
		return User{}, common.ErrTwitchUserNotFound
	}
	return body.Data[0], nil
}

// GetStream returns the live stream for a Twitch user ID, if any.
func (c *Client) GetStream(ctx context.Context, userID string) (Stream, bool, error) {
	var body struct {
		Data []Stream `json:"data"`
	}
	if err := c.get(ctx, "/streams?user_id="+url.QueryEscape(userID), &body); err != nil {
		return Stream{}, false, err
	}
	if len(body.Data) == 0 {
		return Stream{}, false, nil
	}
	return body.Data[0], true, nil
}

// CreateEventSub registers a stream.online webhook subscription and
// returns its EventSub ID.
func (c *Client) CreateEventSub(ctx context.Context, broadcasterID, callbackURL, secret string) (string, error) {
	payload := map[string]any{
		"type":    "stream.online",
		"version": "1",
		"condition": map[string]string{
			"broadcaster_user_id": broadcasterID,
		},
		"transport": map[string]string{
			"method":   "webhook",
			"callback": callbackURL,
			"secret":   secret,
		},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	var body struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/eventsub/subscriptions", raw, &body); err != nil {
		return "", err
	}
	if len(body.Data) == 0 {
		return "", fmt.Errorf("eventsub create returned no subscription")
	}
	return body.Data[0].ID, nil
}

// ListEventSubs returns all EventSub subscriptions for this app.
func (c *Client) ListEventSubs(ctx context.Context) ([]EventSubSubscription, error) {
	var body struct {
		Data []EventSubSubscription `json:"data"`
	}
	if err := c.get(ctx, "/eventsub/subscriptions", &body); err != nil {
		return nil, err
	}
	return body.Data, nil
}

// DeleteEventSub removes one EventSub subscription.
func (c *Client) DeleteEventSub(ctx context.Context, eventSubID string) error {
	return c.do(ctx, http.MethodDelete, "/eventsub/subscriptions?id="+url.QueryEscape(eventSubID), nil, nil)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte, out any) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, helixBase+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Client-Id", c.clientID)
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("helix request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("helix %s %s returned %s", method, path, resp.Status)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode helix response: %w", err)
	}
	return nil
}
