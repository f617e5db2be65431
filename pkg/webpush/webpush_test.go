package webpush

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClient_RequiresVAPIDConfig(t *testing.T) {
	_, err := NewClient("", "pub", "priv")
	assert.Error(t, err)

	_, err = NewClient("mailto:ops@example.com", "", "priv")
	assert.Error(t, err)

	client, err := NewClient("mailto:ops@example.com", "pub", "priv")
	assert.NoError(t, err)
	assert.NotNil(t, client)
}

func TestIsGone(t *testing.T) {
	assert.True(t, IsGone(&StatusError{StatusCode: 404}))
	assert.True(t, IsGone(&StatusError{StatusCode: 410}))
	assert.False(t, IsGone(&StatusError{StatusCode: 500}))
	assert.False(t, IsGone(errors.New("connection refused")))
	assert.False(t, IsGone(nil))

	// Wrapped status errors still count
	wrapped := fmt.Errorf("send: %w", &StatusError{StatusCode: 410})
	assert.True(t, IsGone(wrapped))
}
