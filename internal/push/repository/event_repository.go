package repository

import (
	"context"
	"time"

	"leaguepush/pkg/store"
)

// Events older than this may be reprocessed; the window bounds store growth
// and is long enough that any realistic client retry lands inside it.
const eventDedupTTL = 7 * 24 * time.Hour

// EventRepository is the at-most-once gate for delivery-triggering events.
type EventRepository interface {
	// MarkIfNew atomically claims (channelID, eventID). True means the
	// caller owns the event and should deliver; false means it was already
	// processed within the TTL window.
	MarkIfNew(ctx context.Context, channelID, eventID string) (bool, error)
	// Clear releases a claim so a legitimate client retry is not swallowed
	// after a failed delivery attempt.
	Clear(ctx context.Context, channelID, eventID string) error
}

type eventRepository struct {
	store store.Store
}

// NewEventRepository creates a new instance of eventRepository
func NewEventRepository(s store.Store) EventRepository {
	return &eventRepository{store: s}
}

func (r *eventRepository) MarkIfNew(ctx context.Context, channelID, eventID string) (bool, error) {
	return r.store.MarkEventIfNew(ctx, channelID, eventID, eventDedupTTL)
}

func (r *eventRepository) Clear(ctx context.Context, channelID, eventID string) error {
	return r.store.ClearEventMark(ctx, channelID, eventID)
}
