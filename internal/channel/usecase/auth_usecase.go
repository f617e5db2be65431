package usecase

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"leaguepush/internal/channel/repository"
)

// AuthUsecase verifies a channel's shared-secret auth token.
type AuthUsecase interface {
	// VerifyChannelAuth checks authToken against the channel's stored hash.
	// When no hash exists yet and allowBootstrap is true, the computed hash
	// is stored and the call succeeds: the first writer establishes the
	// channel credential. Only subscribe may bootstrap.
	VerifyChannelAuth(ctx context.Context, channelID, authToken string, allowBootstrap bool) (bool, error)
}

type authUsecase struct {
	channelRepo repository.ChannelRepository
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(channelRepo repository.ChannelRepository) AuthUsecase {
	return &authUsecase{channelRepo: channelRepo}
}

// HashAuthToken returns the hex-encoded SHA-256 of the token. Tokens are
// high-entropy derived secrets, so a plain deterministic hash is enough.
func HashAuthToken(authToken string) string {
	sum := sha256.Sum256([]byte(authToken))
	return hex.EncodeToString(sum[:])
}

func safeEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (u *authUsecase) VerifyChannelAuth(ctx context.Context, channelID, authToken string, allowBootstrap bool) (bool, error) {
	tokenHash := HashAuthToken(authToken)

	existing, err := u.channelRepo.GetTokenHash(ctx, channelID)
	if err != nil {
		return false, err
	}

	if existing == "" {
		if !allowBootstrap {
			return false, nil
		}
		if err := u.channelRepo.SetTokenHash(ctx, channelID, tokenHash); err != nil {
			return false, err
		}
		return true, nil
	}

	return safeEqual(existing, tokenHash), nil
}
