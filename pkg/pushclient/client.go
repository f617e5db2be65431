// Package pushclient is the delivery-side helper for league clients: it
// manages a stable per-installation device id, posts match notifications to
// the backend, and keeps a persistent fallback queue for events that could
// not be delivered while offline.
package pushclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MatchPushEvent is one queued (or directly sent) notify-match request.
type MatchPushEvent struct {
	ChannelID      string `json:"channelId"`
	AuthToken      string `json:"authToken"`
	SenderDeviceID string `json:"senderDeviceId"`
	Locale         string `json:"locale"`
	EventID        string `json:"eventId"`
	PlayedAt       string `json:"playedAt"`
	PlayerAName    string `json:"playerAName"`
	PlayerBName    string `json:"playerBName"`
	WinnerName     string `json:"winnerName"`
	PlayerARating  int    `json:"playerARating"`
	PlayerBRating  int    `json:"playerBRating"`
	PlayerARank    int    `json:"playerARank"`
	PlayerBRank    int    `json:"playerBRank"`
}

// EnqueueInput is the caller-supplied part of a match notification; the
// helper fills in the event id and sender device id.
type EnqueueInput struct {
	ChannelID     string
	AuthToken     string
	Locale        string
	PlayedAt      string
	PlayerAName   string
	PlayerBName   string
	WinnerName    string
	PlayerARating int
	PlayerBRating int
	PlayerARank   int
	PlayerBRank   int
}

type Client struct {
	baseURL string
	storage Storage

	// HTTPClient may be replaced before first use.
	HTTPClient *http.Client
	// BackgroundSync marks that the platform retries failed sends on its
	// own; when set, failed events are not queued here.
	BackgroundSync bool
}

func NewClient(baseURL string, storage Storage) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		storage:    storage,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewEventID returns a fresh random event id.
func NewEventID() string {
	return uuid.NewString()
}

// GetOrCreateDeviceID returns this installation's stable device id,
// generating and persisting one on first use.
func GetOrCreateDeviceID(storage Storage) (string, error) {
	existing, err := storage.Get(deviceIDStorageKey)
	if err != nil {
		return "", err
	}
	if existing != "" {
		return existing, nil
	}

	deviceID := uuid.NewString()
	if err := storage.Set(deviceIDStorageKey, deviceID); err != nil {
		return "", err
	}
	return deviceID, nil
}

// EnqueueMatchNotification builds the event, attempts a direct send, and on
// failure parks it in the fallback queue (unless background sync owns the
// retry). Returns whether the event was delivered directly.
func (c *Client) EnqueueMatchNotification(ctx context.Context, input EnqueueInput) (bool, error) {
	deviceID, err := GetOrCreateDeviceID(c.storage)
	if err != nil {
		return false, err
	}

	event := MatchPushEvent{
		ChannelID:      input.ChannelID,
		AuthToken:      input.AuthToken,
		SenderDeviceID: deviceID,
		Locale:         input.Locale,
		EventID:        NewEventID(),
		PlayedAt:       input.PlayedAt,
		PlayerAName:    input.PlayerAName,
		PlayerBName:    input.PlayerBName,
		WinnerName:     input.WinnerName,
		PlayerARating:  input.PlayerARating,
		PlayerBRating:  input.PlayerBRating,
		PlayerARank:    input.PlayerARank,
		PlayerBRank:    input.PlayerBRank,
	}

	if c.SendNotify(ctx, event) {
		return true, nil
	}

	if c.BackgroundSync {
		return false, nil
	}

	if err := EnqueueFallbackItem(c.storage, event); err != nil {
		return false, err
	}
	return false, nil
}

// SendNotify posts one event to the notify endpoint. Any transport error or
// non-2xx response counts as not sent.
func (c *Client) SendNotify(ctx context.Context, event MatchPushEvent) bool {
	return c.postJSON(ctx, "/push/notify-match", event)
}

// Flush drains the fallback queue through the notify endpoint.
func (c *Client) Flush(ctx context.Context) (FlushResult, error) {
	return FlushFallbackQueue(ctx, c.storage, c.SendNotify)
}

// Subscribe registers a device's push subscription with the backend. The
// subscription JSON is passed through opaque.
func (c *Client) Subscribe(ctx context.Context, channelID, authToken, locale string, subscription json.RawMessage) (bool, error) {
	deviceID, err := GetOrCreateDeviceID(c.storage)
	if err != nil {
		return false, err
	}

	return c.postJSON(ctx, "/push/subscribe", map[string]any{
		"channelId":    channelID,
		"authToken":    authToken,
		"deviceId":     deviceID,
		"locale":       locale,
		"subscription": subscription,
	}), nil
}

// Unsubscribe removes one endpoint from the channel.
func (c *Client) Unsubscribe(ctx context.Context, channelID, authToken, endpoint string) bool {
	return c.postJSON(ctx, "/push/unsubscribe", map[string]any{
		"channelId": channelID,
		"authToken": authToken,
		"subscription": map[string]string{
			"endpoint": endpoint,
		},
	})
}

func (c *Client) postJSON(ctx context.Context, path string, body any) bool {
	encoded, err := json.Marshal(body)
	if err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
