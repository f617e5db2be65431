package dto

import (
	"strings"

	"leaguepush/internal/push/domain"
)

// SubscribeRequest registers one device's push subscription on a channel.
type SubscribeRequest struct {
	ChannelID    string                   `json:"channelId"`
	AuthToken    string                   `json:"authToken"`
	DeviceID     string                   `json:"deviceId"`
	Locale       string                   `json:"locale"`
	Subscription *domain.PushSubscription `json:"subscription"`
}

func (r *SubscribeRequest) Valid() bool {
	return r != nil &&
		isNonEmpty(r.ChannelID) &&
		isNonEmpty(r.AuthToken) &&
		isNonEmpty(r.DeviceID) &&
		isNonEmpty(r.Locale) &&
		r.Subscription != nil &&
		isNonEmpty(r.Subscription.Endpoint)
}

type UnsubscribeRequest struct {
	ChannelID    string                   `json:"channelId"`
	AuthToken    string                   `json:"authToken"`
	Subscription *domain.PushSubscription `json:"subscription"`
}

func (r *UnsubscribeRequest) Valid() bool {
	return r != nil &&
		isNonEmpty(r.ChannelID) &&
		isNonEmpty(r.AuthToken) &&
		r.Subscription != nil &&
		isNonEmpty(r.Subscription.Endpoint)
}

// NotifyMatchRequest announces a recorded match to every other device on
// the channel. Ratings and ranks are pointers so a missing field is
// distinguishable from zero.
type NotifyMatchRequest struct {
	ChannelID      string `json:"channelId"`
	AuthToken      string `json:"authToken"`
	SenderDeviceID string `json:"senderDeviceId"`
	Locale         string `json:"locale"`
	EventID        string `json:"eventId"`
	PlayedAt       string `json:"playedAt"`
	PlayerAName    string `json:"playerAName"`
	PlayerBName    string `json:"playerBName"`
	WinnerName     string `json:"winnerName"`
	PlayerARating  *int   `json:"playerARating"`
	PlayerBRating  *int   `json:"playerBRating"`
	PlayerARank    *int   `json:"playerARank"`
	PlayerBRank    *int   `json:"playerBRank"`
}

// Valid also enforces the cross-field rule: the declared winner must be one
// of the two players, exactly.
func (r *NotifyMatchRequest) Valid() bool {
	return r != nil &&
		isNonEmpty(r.ChannelID) &&
		isNonEmpty(r.AuthToken) &&
		isNonEmpty(r.SenderDeviceID) &&
		isNonEmpty(r.Locale) &&
		isNonEmpty(r.EventID) &&
		isNonEmpty(r.PlayedAt) &&
		isNonEmpty(r.PlayerAName) &&
		isNonEmpty(r.PlayerBName) &&
		isNonEmpty(r.WinnerName) &&
		r.PlayerARating != nil &&
		r.PlayerBRating != nil &&
		r.PlayerARank != nil && *r.PlayerARank >= 1 &&
		r.PlayerBRank != nil && *r.PlayerBRank >= 1 &&
		(r.WinnerName == r.PlayerAName || r.WinnerName == r.PlayerBName)
}

type SubscribeResponse struct {
	OK                bool  `json:"ok"`
	SubscriptionCount int64 `json:"subscriptionCount"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type NotifyMatchResponse struct {
	OK                 bool `json:"ok"`
	Deduped            bool `json:"deduped"`
	TotalSubscriptions int  `json:"totalSubscriptions"`
	SkippedSender      int  `json:"skippedSender"`
	Attempted          int  `json:"attempted"`
	Sent               int  `json:"sent"`
	Failed             int  `json:"failed"`
}

func isNonEmpty(value string) bool {
	return strings.TrimSpace(value) != ""
}
