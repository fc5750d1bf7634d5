package otpstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps pending codes in Redis so that approvals survive restarts
// and work across multiple API instances. Expiry is enforced by Redis key TTL.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store backed by the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Put stores the entry with a TTL derived from its expiry time.
func (s *RedisStore) Put(ctx context.Context, key Key, entry Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode approval code: %w", err)
	}

	ttl := time.Until(entry.ExpiresAt)
	if ttl <= 0 {
		// Already expired; storing it would be a no-op for readers anyway.
		return nil
	}

	if err := s.client.Set(ctx, key.String(), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store approval code: %w", err)
	}
	return nil
}

// Get returns the live entry for the key, or nil if absent or expired.
func (s *RedisStore) Get(ctx context.Context, key Key) (*Entry, error) {
	payload, err := s.client.Get(ctx, key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read approval code: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode approval code: %w", err)
	}
	return &entry, nil
}

// Delete removes the entry for the key if present.
func (s *RedisStore) Delete(ctx context.Context, key Key) error {
	if err := s.client.Del(ctx, key.String()).Err(); err != nil {
		return fmt.Errorf("failed to delete approval code: %w", err)
	}
	return nil
}
