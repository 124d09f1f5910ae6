// Package twitch — webhook.go receives EventSub callbacks. Twitch signs
// every delivery with HMAC-SHA256 over message id + timestamp + body;
// anything unsigned or mis-signed is dropped with 403.
package twitch

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	headerMessageID   = "Twitch-Eventsub-Message-Id"
	headerTimestamp   = "Twitch-Eventsub-Message-Timestamp"
	headerSignature   = "Twitch-Eventsub-Message-Signature"
	headerMessageType = "Twitch-Eventsub-Message-Type"

	messageTypeVerification = "webhook_callback_verification"
	messageTypeNotification = "notification"
	messageTypeRevocation   = "revocation"
)

// Notifier handles a verified stream.online event.
type Notifier interface {
	StreamOnline(ctx context.Context, event StreamOnlineEvent)
}

// WebhookServer is the EventSub callback receiver.
type WebhookServer struct {
	secret   string
	notifier Notifier
	server   *http.Server
}

// NewWebhookServer creates the receiver. Call Start to begin listening.
func NewWebhookServer(secret string, port int, notifier Notifier) *WebhookServer {
	ws := &WebhookServer{secret: secret, notifier: notifier}
	mux := http.NewServeMux()
	mux.HandleFunc("/twitch/webhook", ws.handle)
	ws.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return ws
}

// Start listens in a goroutine until Shutdown.
func (ws *WebhookServer) Start() {
	go func() {
		log.WithField("addr", ws.server.Addr).Info("Twitch webhook server listening")
		if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Twitch webhook server stopped")
		}
	}()
}

// Shutdown stops the receiver gracefully.
func (ws *WebhookServer) Shutdown(ctx context.Context) error {
	return ws.server.Shutdown(ctx)
}

// Handler exposes the mux, used by tests.
func (ws *WebhookServer) Handler() http.Handler {
	return ws.server.Handler
}

func (ws *WebhookServer) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if !VerifySignature(ws.secret, r.Header.Get(headerMessageID), r.Header.Get(headerTimestamp), body, r.Header.Get(headerSignature)) {
		log.WithField("message_id", r.Header.Get(headerMessageID)).Warn("Rejected eventsub delivery with bad signature")
		w.WriteHeader(http.StatusForbidden)
		return
	}

	switch r.Header.Get(headerMessageType) {
	case messageTypeVerification:
		var payload struct {
			Challenge string `json:"challenge"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(payload.Challenge)); err != nil {
			log.WithError(err).Warn("Failed to write challenge response")
		}

	case messageTypeNotification:
		var payload struct {
			Subscription struct {
				Type string `json:"type"`
			} `json:"subscription"`
			Event StreamOnlineEvent `json:"event"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		if payload.Subscription.Type == "stream.online" {
			ws.notifier.StreamOnline(r.Context(), payload.Event)
		}

	case messageTypeRevocation:
		log.Warn("EventSub subscription revoked by Twitch")
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// VerifySignature checks the EventSub HMAC. The signed message is the
// concatenation of message id, timestamp and raw body.
func VerifySignature(secret, messageID, timestamp string, body []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(messageID))
	mac.Write([]byte(timestamp))
	mac.Write(body)
	expected := "sha256=" + hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
