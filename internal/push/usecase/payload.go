package usecase

import (
	"fmt"

	"leaguepush/internal/push/domain"
	"leaguepush/internal/push/dto"
)

var translations = map[string]map[string]string{
	"Satoshi's League": {"en": "Satoshi's League", "cs": "Satoshiho liga"},
	"defeated":         {"en": "defeated", "cs": "vítězí nad"},
}

func translate(key, locale string) string {
	localized, ok := translations[key]
	if !ok {
		return key
	}
	if value, ok := localized[locale]; ok {
		return value
	}
	return localized["en"]
}

// NewMatchPayloadFactory builds the per-locale "winner defeated loser"
// payload for a validated notify request.
func NewMatchPayloadFactory(req *dto.NotifyMatchRequest) PayloadFactory {
	isPlayerAWinner := req.WinnerName == req.PlayerAName

	winnerName, loserName := req.PlayerAName, req.PlayerBName
	winnerRating, loserRating := *req.PlayerARating, *req.PlayerBRating
	winnerRank, loserRank := *req.PlayerARank, *req.PlayerBRank
	if !isPlayerAWinner {
		winnerName, loserName = loserName, winnerName
		winnerRating, loserRating = loserRating, winnerRating
		winnerRank, loserRank = loserRank, winnerRank
	}

	return func(locale string) domain.MatchPushPayload {
		return domain.MatchPushPayload{
			Type:  "match-played",
			Title: translate("Satoshi's League", locale),
			Body: fmt.Sprintf("#%d %s (%d) %s #%d %s (%d)!",
				winnerRank, winnerName, winnerRating,
				translate("defeated", locale),
				loserRank, loserName, loserRating),
			Data: domain.PayloadData{
				EventID: req.EventID,
				URL:     "/",
			},
		}
	}
}
