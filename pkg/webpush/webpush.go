package webpush

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	webpushgo "github.com/SherClockHolmes/webpush-go"
)

// Client wraps the Web Push protocol sender with channel-wide VAPID
// credentials. Construct once per process and inject.
type Client struct {
	subject    string
	publicKey  string
	privateKey string
}

// Subscription is one browser push target as handed out by the browser's
// PushManager.
type Subscription struct {
	Endpoint string
	P256dh   string
	Auth     string
}

// StatusError reports a non-2xx response from the push service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("push service returned status %d: %s", e.StatusCode, e.Body)
}

// IsGone reports whether err means the endpoint is permanently invalid
// (HTTP 404 or 410) and should be pruned.
func IsGone(err error) bool {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	return statusErr.StatusCode == 404 || statusErr.StatusCode == 410
}

// NewClient validates the VAPID configuration and creates a push client.
func NewClient(subject, publicKey, privateKey string) (*Client, error) {
	if subject == "" || publicKey == "" || privateKey == "" {
		return nil, errors.New("missing VAPID configuration")
	}

	log.Println("[Push] Web push client initialized")
	return &Client{
		subject:    subject,
		publicKey:  publicKey,
		privateKey: privateKey,
	}, nil
}

// Send delivers one payload to one subscription. A reachable push service
// that refuses the message comes back as *StatusError so callers can
// distinguish gone endpoints from transient failures.
func (c *Client) Send(ctx context.Context, sub Subscription, payload []byte) error {
	target := &webpushgo.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpushgo.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}

	resp, err := webpushgo.SendNotificationWithContext(ctx, payload, target, &webpushgo.Options{
		Subscriber:      c.subject,
		VAPIDPublicKey:  c.publicKey,
		VAPIDPrivateKey: c.privateKey,
		TTL:             60 * 60 * 24,
	})
	if err != nil {
		return fmt.Errorf("failed to send web push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
}
