package store

import (
	"context"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// MemoryStore is an in-process Store for tests and local development.
// Event markers live in a TTL cache so the dedup window behaves like the
// Redis expiry; everything else is plain maps under one mutex.
type MemoryStore struct {
	mu            sync.Mutex
	tokenHashes   map[string]string
	subscriptions map[string]map[string]string
	events        *ttlcache.Cache[string, struct{}]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tokenHashes:   make(map[string]string),
		subscriptions: make(map[string]map[string]string),
		// Touch-on-hit is off so duplicate checks do not extend the claim,
		// matching the fixed Redis expiry.
		events: ttlcache.New[string, struct{}](
			ttlcache.WithDisableTouchOnHit[string, struct{}](),
		),
	}
}

func (s *MemoryStore) GetTokenHash(_ context.Context, channelID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenHashes[channelID], nil
}

func (s *MemoryStore) SetTokenHash(_ context.Context, channelID, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenHashes[channelID] = tokenHash
	return nil
}

func (s *MemoryStore) SetSubscription(_ context.Context, channelID, endpoint, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fields, ok := s.subscriptions[channelID]
	if !ok {
		fields = make(map[string]string)
		s.subscriptions[channelID] = fields
	}
	fields[endpoint] = value
	return nil
}

func (s *MemoryStore) RemoveSubscription(_ context.Context, channelID, endpoint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscriptions[channelID], endpoint)
	return nil
}

func (s *MemoryStore) ListSubscriptions(_ context.Context, channelID string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fields := make(map[string]string, len(s.subscriptions[channelID]))
	for endpoint, value := range s.subscriptions[channelID] {
		fields[endpoint] = value
	}
	return fields, nil
}

func (s *MemoryStore) CountSubscriptions(_ context.Context, channelID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.subscriptions[channelID])), nil
}

func (s *MemoryStore) MarkEventIfNew(_ context.Context, channelID, eventID string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := eventKey(channelID, eventID)
	if item := s.events.Get(key); item != nil {
		return false, nil
	}
	s.events.Set(key, struct{}{}, ttl)
	return true, nil
}

func (s *MemoryStore) ClearEventMark(_ context.Context, channelID, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events.Delete(eventKey(channelID, eventID))
	return nil
}
