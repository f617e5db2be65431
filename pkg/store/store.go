package store

import (
	"context"
	"fmt"
	"time"
)

// Store is the key-value persistence used by the push pipeline: one token
// hash per channel, a hash of subscription records per channel (field =
// endpoint), and expiring event-dedup markers. Implementations must make
// MarkEventIfNew a single atomic set-if-absent; a read-then-write here would
// let two concurrent notify requests both claim the same event.
type Store interface {
	GetTokenHash(ctx context.Context, channelID string) (string, error)
	SetTokenHash(ctx context.Context, channelID, tokenHash string) error

	SetSubscription(ctx context.Context, channelID, endpoint, value string) error
	RemoveSubscription(ctx context.Context, channelID, endpoint string) error
	ListSubscriptions(ctx context.Context, channelID string) (map[string]string, error)
	CountSubscriptions(ctx context.Context, channelID string) (int64, error)

	MarkEventIfNew(ctx context.Context, channelID, eventID string, ttl time.Duration) (bool, error)
	ClearEventMark(ctx context.Context, channelID, eventID string) error
}

func authKey(channelID string) string {
	return "push:auth:" + channelID
}

func subscriptionsKey(channelID string) string {
	return "push:subs:" + channelID
}

func eventKey(channelID, eventID string) string {
	return fmt.Sprintf("push:event:%s:%s", channelID, eventID)
}
