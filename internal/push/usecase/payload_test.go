package usecase

import (
	"testing"

	"leaguepush/internal/push/dto"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func notifyRequest(winner string) *dto.NotifyMatchRequest {
	return &dto.NotifyMatchRequest{
		ChannelID:      "c1",
		AuthToken:      "t",
		SenderDeviceID: "deviceA",
		Locale:         "en",
		EventID:        "evt-9",
		PlayedAt:       "2026-03-01T10:00:00Z",
		PlayerAName:    "Alice",
		PlayerBName:    "Bob",
		WinnerName:     winner,
		PlayerARating:  intPtr(1510),
		PlayerBRating:  intPtr(1490),
		PlayerARank:    intPtr(1),
		PlayerBRank:    intPtr(2),
	}
}

func TestMatchPayload_WinnerFirst(t *testing.T) {
	payload := NewMatchPayloadFactory(notifyRequest("Bob"))("en")

	assert.Equal(t, "match-played", payload.Type)
	assert.Equal(t, "Satoshi's League", payload.Title)
	assert.Equal(t, "#2 Bob (1490) defeated #1 Alice (1510)!", payload.Body)
	assert.Equal(t, "evt-9", payload.Data.EventID)
	assert.Equal(t, "/", payload.Data.URL)
}

func TestMatchPayload_Localized(t *testing.T) {
	payload := NewMatchPayloadFactory(notifyRequest("Alice"))("cs")

	assert.Equal(t, "Satoshiho liga", payload.Title)
	assert.Equal(t, "#1 Alice (1510) vítězí nad #2 Bob (1490)!", payload.Body)
}

func TestMatchPayload_UnknownLocaleFallsBackToEnglish(t *testing.T) {
	payload := NewMatchPayloadFactory(notifyRequest("Alice"))("de")

	assert.Equal(t, "Satoshi's League", payload.Title)
	assert.Contains(t, payload.Body, "defeated")
}
