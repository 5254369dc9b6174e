// Package redis provides the Redis-backed response cache: exact-match lookup
// of generation results keyed by request fingerprint.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/hearth/internal/domain"
)

// ResponseCache implements domain.ResponseCache on a Redis client.
type ResponseCache struct {
	client *redis.Client
}

// NewResponseCache creates a Redis response cache.
func NewResponseCache(client *redis.Client) *ResponseCache {
	return &ResponseCache{client: client}
}

// Get returns a cached result, or domain.ErrCacheMiss when the key is absent.
func (c *ResponseCache) Get(ctx context.Context, key string) (*domain.GenerationResult, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("cache get failed: %w", err)
	}

	var result domain.GenerationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode cached result: %w", err)
	}

	return &result, nil
}

// Set stores a result with a TTL.
func (c *ResponseCache) Set(ctx context.Context, key string, result *domain.GenerationResult, ttl time.Duration) error {
	if result == nil {
		return errors.New("result cannot be nil")
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}

	return nil
}
