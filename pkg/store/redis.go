package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on top of a shared Redis client. All
// operations are single commands, so each mutation is atomic on its own;
// the dedup claim maps directly onto SET NX EX.
type RedisStore struct {
	client *redis.Client
}

// NewRedisClient connects to Redis and verifies the connection with a ping.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	log.Printf("[Store] Connected to redis at %s", addr)
	return client, nil
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) GetTokenHash(ctx context.Context, channelID string) (string, error) {
	value, err := s.client.Get(ctx, authKey(channelID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get token hash: %w", err)
	}
	return value, nil
}

func (s *RedisStore) SetTokenHash(ctx context.Context, channelID, tokenHash string) error {
	if err := s.client.Set(ctx, authKey(channelID), tokenHash, 0).Err(); err != nil {
		return fmt.Errorf("set token hash: %w", err)
	}
	return nil
}

func (s *RedisStore) SetSubscription(ctx context.Context, channelID, endpoint, value string) error {
	if err := s.client.HSet(ctx, subscriptionsKey(channelID), endpoint, value).Err(); err != nil {
		return fmt.Errorf("set subscription: %w", err)
	}
	return nil
}

func (s *RedisStore) RemoveSubscription(ctx context.Context, channelID, endpoint string) error {
	if err := s.client.HDel(ctx, subscriptionsKey(channelID), endpoint).Err(); err != nil {
		return fmt.Errorf("remove subscription: %w", err)
	}
	return nil
}

func (s *RedisStore) ListSubscriptions(ctx context.Context, channelID string) (map[string]string, error) {
	fields, err := s.client.HGetAll(ctx, subscriptionsKey(channelID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return fields, nil
}

func (s *RedisStore) CountSubscriptions(ctx context.Context, channelID string) (int64, error) {
	count, err := s.client.HLen(ctx, subscriptionsKey(channelID)).Result()
	if err != nil {
		return 0, fmt.Errorf("count subscriptions: %w", err)
	}
	return count, nil
}

func (s *RedisStore) MarkEventIfNew(ctx context.Context, channelID, eventID string, ttl time.Duration) (bool, error) {
	claimed, err := s.client.SetNX(ctx, eventKey(channelID, eventID), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("mark event: %w", err)
	}
	return claimed, nil
}

func (s *RedisStore) ClearEventMark(ctx context.Context, channelID, eventID string) error {
	if err := s.client.Del(ctx, eventKey(channelID, eventID)).Err(); err != nil {
		return fmt.Errorf("clear event mark: %w", err)
	}
	return nil
}
