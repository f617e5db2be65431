package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"leaguepush/internal/push/domain"
	"leaguepush/pkg/webpush"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	// failures maps endpoint to the error Send should return
	failures map[string]error
	sent     []webpush.Subscription
	payloads [][]byte
}

func (f *fakeTransport) Send(_ context.Context, sub webpush.Subscription, payload []byte) error {
	if err, ok := f.failures[sub.Endpoint]; ok {
		return err
	}
	f.sent = append(f.sent, sub)
	f.payloads = append(f.payloads, payload)
	return nil
}

func subscription(endpoint, deviceID, locale, updatedAt string) domain.SubscriptionRecord {
	return domain.SubscriptionRecord{
		Endpoint:  endpoint,
		DeviceID:  deviceID,
		Locale:    locale,
		UpdatedAt: updatedAt,
		Subscription: domain.PushSubscription{
			Endpoint: endpoint,
			Keys:     &domain.SubscriptionKeys{P256dh: "p", Auth: "a"},
		},
	}
}

func staticPayload(locale string) domain.MatchPushPayload {
	return domain.MatchPushPayload{
		Type:  "match-played",
		Title: "t",
		Body:  "b (" + locale + ")",
		Data:  domain.PayloadData{EventID: "evt", URL: "/"},
	}
}

func TestSendMatchPush_SoloSenderStillNotified(t *testing.T) {
	transport := &fakeTransport{}
	uc := NewFanoutUsecase(transport)

	result, err := uc.SendMatchPush(context.Background(), FanoutInput{
		Subscriptions:  []domain.SubscriptionRecord{subscription("ep1", "deviceA", "en", "2026-01-01T00:00:00Z")},
		SenderDeviceID: "deviceA",
		PayloadFactory: staticPayload,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalSubscriptions)
	assert.Equal(t, 0, result.SkippedSender)
	assert.Equal(t, 1, result.Attempted)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 0, result.Failed)
}

func TestSendMatchPush_SenderSkippedWithMultipleDevices(t *testing.T) {
	transport := &fakeTransport{}
	uc := NewFanoutUsecase(transport)

	result, err := uc.SendMatchPush(context.Background(), FanoutInput{
		Subscriptions: []domain.SubscriptionRecord{
			subscription("ep1", "deviceA", "en", "2026-01-01T00:00:00Z"),
			subscription("ep2", "deviceB", "cs", "2026-01-01T00:00:00Z"),
		},
		SenderDeviceID: "deviceA",
		PayloadFactory: staticPayload,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalSubscriptions)
	assert.Equal(t, 1, result.SkippedSender)
	assert.Equal(t, 1, result.Attempted)
	assert.Equal(t, 1, result.Sent)
	require.Len(t, transport.sent, 1)
	assert.Equal(t, "ep2", transport.sent[0].Endpoint)
}

func TestSendMatchPush_DuplicateDeviceKeepsLatest(t *testing.T) {
	transport := &fakeTransport{}
	uc := NewFanoutUsecase(transport)

	result, err := uc.SendMatchPush(context.Background(), FanoutInput{
		Subscriptions: []domain.SubscriptionRecord{
			subscription("ep-old", "deviceB", "en", "2026-01-01T00:00:00Z"),
			subscription("ep-new", "deviceB", "en", "2026-02-01T00:00:00Z"),
		},
		SenderDeviceID: "deviceA",
		PayloadFactory: staticPayload,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalSubscriptions)
	assert.Equal(t, 1, result.Attempted)
	require.Len(t, transport.sent, 1)
	assert.Equal(t, "ep-new", transport.sent[0].Endpoint)
}

func TestSendMatchPush_StaleOnlyOn404And410(t *testing.T) {
	transport := &fakeTransport{failures: map[string]error{
		"ep-gone404": &webpush.StatusError{StatusCode: 404},
		"ep-gone410": &webpush.StatusError{StatusCode: 410},
		"ep-flaky":   &webpush.StatusError{StatusCode: 500},
	}}
	uc := NewFanoutUsecase(transport)

	result, err := uc.SendMatchPush(context.Background(), FanoutInput{
		Subscriptions: []domain.SubscriptionRecord{
			subscription("ep-gone404", "d1", "en", "2026-01-01T00:00:00Z"),
			subscription("ep-gone410", "d2", "en", "2026-01-01T00:00:00Z"),
			subscription("ep-flaky", "d3", "en", "2026-01-01T00:00:00Z"),
			subscription("ep-ok", "d4", "en", "2026-01-01T00:00:00Z"),
		},
		SenderDeviceID: "other",
		PayloadFactory: staticPayload,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Attempted)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 3, result.Failed)
	assert.ElementsMatch(t, []string{"ep-gone404", "ep-gone410"}, result.StaleEndpoints)
}

func TestSendMatchPush_LocalizedPayloadPerRecipient(t *testing.T) {
	transport := &fakeTransport{}
	uc := NewFanoutUsecase(transport)

	_, err := uc.SendMatchPush(context.Background(), FanoutInput{
		Subscriptions: []domain.SubscriptionRecord{
			subscription("ep2", "deviceB", "cs", "2026-01-01T00:00:00Z"),
		},
		SenderDeviceID: "deviceA",
		PayloadFactory: staticPayload,
	})
	require.NoError(t, err)

	require.Len(t, transport.payloads, 1)
	var payload domain.MatchPushPayload
	require.NoError(t, json.Unmarshal(transport.payloads[0], &payload))
	assert.Equal(t, "b (cs)", payload.Body)
}

func TestSendMatchPush_NoTransport(t *testing.T) {
	uc := NewFanoutUsecase(nil)

	_, err := uc.SendMatchPush(context.Background(), FanoutInput{
		PayloadFactory: staticPayload,
	})
	assert.Error(t, err)
}
