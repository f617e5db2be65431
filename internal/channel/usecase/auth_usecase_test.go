package usecase

import (
	"context"
	"testing"

	"leaguepush/internal/channel/repository"
	"leaguepush/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthUsecase() (AuthUsecase, *store.MemoryStore) {
	s := store.NewMemoryStore()
	return NewAuthUsecase(repository.NewChannelRepository(s)), s
}

func TestVerifyChannelAuth_Bootstrap(t *testing.T) {
	uc, _ := newAuthUsecase()
	ctx := context.Background()

	ok, err := uc.VerifyChannelAuth(ctx, "c1", "secret-token", true)
	require.NoError(t, err)
	assert.True(t, ok, "first writer establishes the credential")

	ok, err = uc.VerifyChannelAuth(ctx, "c1", "secret-token", true)
	require.NoError(t, err)
	assert.True(t, ok, "same token verifies after bootstrap")

	ok, err = uc.VerifyChannelAuth(ctx, "c1", "other-token", true)
	require.NoError(t, err)
	assert.False(t, ok, "bootstrap must not overwrite an existing credential")
}

func TestVerifyChannelAuth_NoBootstrap(t *testing.T) {
	uc, s := newAuthUsecase()
	ctx := context.Background()

	ok, err := uc.VerifyChannelAuth(ctx, "c1", "secret-token", false)
	require.NoError(t, err)
	assert.False(t, ok)

	// The failed call must not have written a record
	hash, err := s.GetTokenHash(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, hash)
}

func TestVerifyChannelAuth_WithoutBootstrapAfterBootstrap(t *testing.T) {
	uc, _ := newAuthUsecase()
	ctx := context.Background()

	ok, err := uc.VerifyChannelAuth(ctx, "c1", "secret-token", true)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = uc.VerifyChannelAuth(ctx, "c1", "secret-token", false)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.VerifyChannelAuth(ctx, "c1", "wrong", false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashAuthToken_Deterministic(t *testing.T) {
	assert.Equal(t, HashAuthToken("token"), HashAuthToken("token"))
	assert.NotEqual(t, HashAuthToken("token"), HashAuthToken("token2"))
	// sha256 hex is 64 chars
	assert.Len(t, HashAuthToken("token"), 64)
}

func TestSafeEqual(t *testing.T) {
	assert.True(t, safeEqual("abcdef", "abcdef"))
	assert.False(t, safeEqual("abcdef", "abcdeg"))
	assert.False(t, safeEqual("xbcdef", "abcdef"))
	assert.False(t, safeEqual("abc", "abcdef"))
}
