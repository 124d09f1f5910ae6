package twitch

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "s3cret"

type recordingNotifier struct {
	events []StreamOnlineEvent
}

func (n *recordingNotifier) StreamOnline(_ context.Context, event StreamOnlineEvent) {
	n.events = append(n.events, event)
}

func sign(secret, messageID, timestamp, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(messageID + timestamp + body))
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func eventsubRequest(t *testing.T, msgType, body, signature string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/twitch/webhook", strings.NewReader(body))
	req.Header.Set(headerMessageID, "msg-1")
	req.Header.Set(headerTimestamp, "2026-08-28T12:00:00Z")
	req.Header.Set(headerMessageType, msgType)
	req.Header.Set(headerSignature, signature)
	return req
}

func TestWebhookChallengeEchoed(t *testing.T) {
	notifier := &recordingNotifier{}
	ws := NewWebhookServer(testSecret, 0, notifier)

	body := `{"challenge":"pogchamp-kappa-360noscope-vohiyo"}`
	req := eventsubRequest(t, messageTypeVerification, body, sign(testSecret, "msg-1", "2026-08-28T12:00:00Z", body))
	rec := httptest.NewRecorder()
	ws.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pogchamp-kappa-360noscope-vohiyo", rec.Body.String())
	assert.Empty(t, notifier.events)
}

func TestWebhookNotificationDispatched(t *testing.T) {
	notifier := &recordingNotifier{}
	ws := NewWebhookServer(testSecret, 0, notifier)

	body := `{"subscription":{"type":"stream.online"},"event":{"broadcaster_user_id":"42","broadcaster_user_login":"streamer","broadcaster_user_name":"Streamer"}}`
	req := eventsubRequest(t, messageTypeNotification, body, sign(testSecret, "msg-1", "2026-08-28T12:00:00Z", body))
	rec := httptest.NewRecorder()
	ws.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, "42", notifier.events[0].BroadcasterUserID)
	assert.Equal(t, "streamer", notifier.events[0].BroadcasterUserLogin)
}

func TestWebhookTamperedBodyRejected(t *testing.T) {
	notifier := &recordingNotifier{}
	ws := NewWebhookServer(testSecret, 0, notifier)

	body := `{"subscription":{"type":"stream.online"},"event":{"broadcaster_user_id":"42"}}`
	signature := sign(testSecret, "msg-1", "2026-08-28T12:00:00Z", body)
	tampered := strings.Replace(body, "42", "43", 1)

	req := eventsubRequest(t, messageTypeNotification, tampered, signature)
	rec := httptest.NewRecorder()
	ws.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, notifier.events)
}

func TestWebhookMissingSignatureRejected(t *testing.T) {
	ws := NewWebhookServer(testSecret, 0, &recordingNotifier{})

	req := eventsubRequest(t, messageTypeNotification, `{}`, "")
	rec := httptest.NewRecorder()
	ws.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWebhookWrongSecretRejected(t *testing.T) {
	ws := NewWebhookServer(testSecret, 0, &recordingNotifier{})

	body := `{"challenge":"x"}`
	req := eventsubRequest(t, messageTypeVerification, body, sign("other-secret", "msg-1", "2026-08-28T12:00:00Z", body))
	rec := httptest.NewRecorder()
	ws.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWebhookNonPostRejected(t *testing.T) {
	ws := NewWebhookServer(testSecret, 0, &recordingNotifier{})

	req := httptest.NewRequest(http.MethodGet, "/twitch/webhook", nil)
	rec := httptest.NewRecorder()
	ws.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"x":1}`)
	good := sign(testSecret, "id", "ts", string(body))

	assert.True(t, VerifySignature(testSecret, "id", "ts", body, good))
	assert.False(t, VerifySignature(testSecret, "id", "ts", body, "sha256=deadbeef"))
	assert.False(t, VerifySignature(testSecret, "other-id", "ts", body, good))
	assert.False(t, VerifySignature("", "id", "ts", body, good))
}
