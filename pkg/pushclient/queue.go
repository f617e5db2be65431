package pushclient

import (
	"context"
	"encoding/json"
)

const (
	fallbackQueueStorageKey = "push-notify-queue-v1"
	deviceIDStorageKey      = "push-device-id-v1"
)

// SendFunc attempts delivery of one queued event. False means "not sent,
// keep queued" — network errors and rejected responses are treated alike.
type SendFunc func(ctx context.Context, event MatchPushEvent) bool

type FlushResult struct {
	Sent int
	Kept int
}

func parseQueue(rawValue string) []MatchPushEvent {
	if rawValue == "" {
		return nil
	}

	var queue []MatchPushEvent
	if err := json.Unmarshal([]byte(rawValue), &queue); err != nil {
		return nil
	}
	return queue
}

func writeQueue(storage Storage, queue []MatchPushEvent) error {
	if queue == nil {
		queue = []MatchPushEvent{}
	}
	encoded, err := json.Marshal(queue)
	if err != nil {
		return err
	}
	return storage.Set(fallbackQueueStorageKey, string(encoded))
}

// ReadFallbackQueue returns the persisted queue. Corrupt stored JSON is
// treated as an empty queue.
func ReadFallbackQueue(storage Storage) ([]MatchPushEvent, error) {
	rawValue, err := storage.Get(fallbackQueueStorageKey)
	if err != nil {
		return nil, err
	}
	return parseQueue(rawValue), nil
}

// EnqueueFallbackItem appends one event, rewriting the queue as a whole.
func EnqueueFallbackItem(storage Storage, item MatchPushEvent) error {
	queue, err := ReadFallbackQueue(storage)
	if err != nil {
		return err
	}
	return writeQueue(storage, append(queue, item))
}

// FlushFallbackQueue attempts send for each queued event in original order
// and rewrites storage with only the items that did not go through. An item
// is only dropped on confirmed send success.
func FlushFallbackQueue(ctx context.Context, storage Storage, send SendFunc) (FlushResult, error) {
	queue, err := ReadFallbackQueue(storage)
	if err != nil {
		return FlushResult{}, err
	}

	var kept []MatchPushEvent
	sent := 0
	for _, item := range queue {
		if send(ctx, item) {
			sent++
		} else {
			kept = append(kept, item)
		}
	}

	if err := writeQueue(storage, kept); err != nil {
		return FlushResult{}, err
	}
	return FlushResult{Sent: sent, Kept: len(kept)}, nil
}
