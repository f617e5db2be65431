package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"leaguepush/internal/push/domain"
	"leaguepush/pkg/store"
)

// SubscriptionRepository is the registry of per-device push subscriptions
// within a channel.
type SubscriptionRepository interface {
	// Upsert stores the record under its endpoint. Any other stored
	// endpoints belonging to the same device are removed first, so a device
	// contributes at most one entry after the call completes.
	Upsert(ctx context.Context, channelID string, record domain.SubscriptionRecord) error
	// Remove deletes one endpoint. Removing an unknown endpoint is a no-op.
	Remove(ctx context.Context, channelID, endpoint string) error
	// List returns every parsable record for the channel. Malformed stored
	// entries are dropped, not surfaced as errors.
	List(ctx context.Context, channelID string) ([]domain.SubscriptionRecord, error)
	Count(ctx context.Context, channelID string) (int64, error)
}

type subscriptionRepository struct {
	store store.Store
}

// NewSubscriptionRepository creates a new instance of subscriptionRepository
func NewSubscriptionRepository(s store.Store) SubscriptionRepository {
	return &subscriptionRepository{store: s}
}

func parseSubscriptionRecord(value string) *domain.SubscriptionRecord {
	var record domain.SubscriptionRecord
	if err := json.Unmarshal([]byte(value), &record); err != nil {
		return nil
	}
	if !record.Valid() {
		return nil
	}
	return &record
}

func (r *subscriptionRepository) Upsert(ctx context.Context, channelID string, record domain.SubscriptionRecord) error {
	existing, err := r.store.ListSubscriptions(ctx, channelID)
	if err != nil {
		return err
	}

	for endpoint, value := range existing {
		if endpoint == record.Endpoint {
			continue
		}
		parsed := parseSubscriptionRecord(value)
		if parsed == nil || parsed.DeviceID != record.DeviceID {
			continue
		}
		// Same device under a different endpoint: the browser reissued the
		// endpoint on resubscribe and the old one is dead.
		if err := r.store.RemoveSubscription(ctx, channelID, endpoint); err != nil {
			return err
		}
	}

	encoded, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode subscription record: %w", err)
	}
	return r.store.SetSubscription(ctx, channelID, record.Endpoint, string(encoded))
}

func (r *subscriptionRepository) Remove(ctx context.Context, channelID, endpoint string) error {
	return r.store.RemoveSubscription(ctx, channelID, endpoint)
}

func (r *subscriptionRepository) List(ctx context.Context, channelID string) ([]domain.SubscriptionRecord, error) {
	fields, err := r.store.ListSubscriptions(ctx, channelID)
	if err != nil {
		return nil, err
	}

	records := make([]domain.SubscriptionRecord, 0, len(fields))
	for endpoint, value := range fields {
		parsed := parseSubscriptionRecord(value)
		if parsed == nil {
			log.Printf("[Push] Dropping malformed subscription record for endpoint %s", endpoint)
			continue
		}
		records = append(records, *parsed)
	}
	return records, nil
}

func (r *subscriptionRepository) Count(ctx context.Context, channelID string) (int64, error) {
	return r.store.CountSubscriptions(ctx, channelID)
}
