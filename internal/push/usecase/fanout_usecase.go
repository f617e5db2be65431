package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"leaguepush/internal/push/domain"
	"leaguepush/pkg/webpush"
)

// PushTransport is the narrow sending surface of pkg/webpush, injected so
// the engine never touches a concrete push library.
type PushTransport interface {
	Send(ctx context.Context, sub webpush.Subscription, payload []byte) error
}

// PayloadFactory renders the notification for one recipient's locale.
type PayloadFactory func(locale string) domain.MatchPushPayload

type FanoutInput struct {
	Subscriptions  []domain.SubscriptionRecord
	SenderDeviceID string
	PayloadFactory PayloadFactory
}

// FanoutResult aggregates per-subscriber outcomes. StaleEndpoints lists
// endpoints the push service reported permanently gone; the caller prunes
// them.
type FanoutResult struct {
	TotalSubscriptions int
	SkippedSender      int
	Attempted          int
	Sent               int
	Failed             int
	StaleEndpoints     []string
}

// FanoutUsecase delivers one match notification to every distinct device on
// a channel. Individual send failures never fail the fan-out; only
// infrastructure problems do.
type FanoutUsecase interface {
	SendMatchPush(ctx context.Context, input FanoutInput) (FanoutResult, error)
}

type fanoutUsecase struct {
	transport PushTransport
}

// NewFanoutUsecase creates a new instance of fanoutUsecase
func NewFanoutUsecase(transport PushTransport) FanoutUsecase {
	return &fanoutUsecase{transport: transport}
}

func (u *fanoutUsecase) SendMatchPush(ctx context.Context, input FanoutInput) (FanoutResult, error) {
	if u.transport == nil {
		return FanoutResult{}, errors.New("push transport not configured")
	}
	if input.PayloadFactory == nil {
		return FanoutResult{}, errors.New("payload factory not configured")
	}

	// The registry already dedups per device, but a re-subscribe racing a
	// notify can still surface two endpoints for one device. Keep the
	// freshest record per device; ISO-8601 timestamps order lexically.
	latestByDevice := make(map[string]domain.SubscriptionRecord)
	for _, record := range input.Subscriptions {
		existing, ok := latestByDevice[record.DeviceID]
		if !ok || record.UpdatedAt > existing.UpdatedAt {
			latestByDevice[record.DeviceID] = record
		}
	}

	result := FanoutResult{TotalSubscriptions: len(latestByDevice)}

	// When only the sender device is subscribed, send to it anyway so
	// single-device setups can verify push notifications work end-to-end.
	skipSender := len(latestByDevice) > 1

	for _, record := range latestByDevice {
		if skipSender && record.DeviceID == input.SenderDeviceID {
			result.SkippedSender++
			continue
		}

		result.Attempted++

		payload, err := json.Marshal(input.PayloadFactory(record.Locale))
		if err != nil {
			result.Failed++
			continue
		}

		target := webpush.Subscription{Endpoint: record.Subscription.Endpoint}
		if keys := record.Subscription.Keys; keys != nil {
			target.P256dh = keys.P256dh
			target.Auth = keys.Auth
		}

		if err := u.transport.Send(ctx, target, payload); err != nil {
			result.Failed++
			if webpush.IsGone(err) {
				result.StaleEndpoints = append(result.StaleEndpoints, record.Endpoint)
			} else {
				log.Printf("[Push] Send failed for device %s: %v", record.DeviceID, err)
			}
			continue
		}

		result.Sent++
	}

	return result, nil
}
