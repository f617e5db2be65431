package repository

import (
	"context"

	"leaguepush/pkg/store"
)

// ChannelRepository persists the single auth-token hash each channel owns.
type ChannelRepository interface {
	GetTokenHash(ctx context.Context, channelID string) (string, error)
	SetTokenHash(ctx context.Context, channelID, tokenHash string) error
}

type channelRepository struct {
	store store.Store
}

// NewChannelRepository creates a new instance of channelRepository
func NewChannelRepository(s store.Store) ChannelRepository {
	return &channelRepository{store: s}
}

func (r *channelRepository) GetTokenHash(ctx context.Context, channelID string) (string, error) {
	return r.store.GetTokenHash(ctx, channelID)
}

func (r *channelRepository) SetTokenHash(ctx context.Context, channelID, tokenHash string) error {
	return r.store.SetTokenHash(ctx, channelID, tokenHash)
}
