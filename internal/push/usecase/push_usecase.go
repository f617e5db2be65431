package usecase

import (
	"context"
	"log"
	"time"

	"leaguepush/internal/push/domain"
	"leaguepush/internal/push/dto"
	"leaguepush/internal/push/repository"
)

// PushUsecase carries the three push operations behind the HTTP surface.
type PushUsecase interface {
	// Subscribe upserts the device's subscription and returns the channel's
	// subscription count after the write.
	Subscribe(ctx context.Context, req *dto.SubscribeRequest) (int64, error)
	Unsubscribe(ctx context.Context, req *dto.UnsubscribeRequest) error
	// NotifyMatch runs the claim → deliver → prune sequence. A duplicate
	// event id short-circuits with Deduped set and no sends. If listing or
	// sending fails, the dedup claim is released before the error returns,
	// so the caller's retry is not treated as already handled.
	NotifyMatch(ctx context.Context, req *dto.NotifyMatchRequest) (dto.NotifyMatchResponse, error)
}

type pushUsecase struct {
	subscriptionRepo repository.SubscriptionRepository
	eventRepo        repository.EventRepository
	fanout           FanoutUsecase
}

// NewPushUsecase creates a new instance of pushUsecase
func NewPushUsecase(subscriptionRepo repository.SubscriptionRepository, eventRepo repository.EventRepository, fanout FanoutUsecase) PushUsecase {
	return &pushUsecase{
		subscriptionRepo: subscriptionRepo,
		eventRepo:        eventRepo,
		fanout:           fanout,
	}
}

func (u *pushUsecase) Subscribe(ctx context.Context, req *dto.SubscribeRequest) (int64, error) {
	record := domain.SubscriptionRecord{
		Endpoint:     req.Subscription.Endpoint,
		DeviceID:     req.DeviceID,
		Locale:       req.Locale,
		UpdatedAt:    time.Now().UTC().Format(time.RFC3339),
		Subscription: *req.Subscription,
	}

	if err := u.subscriptionRepo.Upsert(ctx, req.ChannelID, record); err != nil {
		return 0, err
	}
	return u.subscriptionRepo.Count(ctx, req.ChannelID)
}

func (u *pushUsecase) Unsubscribe(ctx context.Context, req *dto.UnsubscribeRequest) error {
	return u.subscriptionRepo.Remove(ctx, req.ChannelID, req.Subscription.Endpoint)
}

func (u *pushUsecase) NotifyMatch(ctx context.Context, req *dto.NotifyMatchRequest) (dto.NotifyMatchResponse, error) {
	isNew, err := u.eventRepo.MarkIfNew(ctx, req.ChannelID, req.EventID)
	if err != nil {
		return dto.NotifyMatchResponse{}, err
	}
	if !isNew {
		return dto.NotifyMatchResponse{OK: true, Deduped: true}, nil
	}

	result, err := u.deliver(ctx, req)
	if err != nil {
		// Delivery failed before any per-subscriber accounting: release the
		// claim so the client's retry goes through.
		if clearErr := u.eventRepo.Clear(ctx, req.ChannelID, req.EventID); clearErr != nil {
			log.Printf("[Push] Failed to clear event mark %s/%s: %v", req.ChannelID, req.EventID, clearErr)
		}
		return dto.NotifyMatchResponse{}, err
	}

	// Prune endpoints the push service reported gone. Best-effort: a prune
	// failure only means one extra doomed attempt on a later notify.
	for _, endpoint := range result.StaleEndpoints {
		if err := u.subscriptionRepo.Remove(ctx, req.ChannelID, endpoint); err != nil {
			log.Printf("[Push] Failed to prune stale endpoint %s: %v", endpoint, err)
		}
	}

	return dto.NotifyMatchResponse{
		OK:                 true,
		Deduped:            false,
		TotalSubscriptions: result.TotalSubscriptions,
		SkippedSender:      result.SkippedSender,
		Attempted:          result.Attempted,
		Sent:               result.Sent,
		Failed:             result.Failed,
	}, nil
}

func (u *pushUsecase) deliver(ctx context.Context, req *dto.NotifyMatchRequest) (FanoutResult, error) {
	subscriptions, err := u.subscriptionRepo.List(ctx, req.ChannelID)
	if err != nil {
		return FanoutResult{}, err
	}

	return u.fanout.SendMatchPush(ctx, FanoutInput{
		Subscriptions:  subscriptions,
		SenderDeviceID: req.SenderDeviceID,
		PayloadFactory: NewMatchPayloadFactory(req),
	})
}
