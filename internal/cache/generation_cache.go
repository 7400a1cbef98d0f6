package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// GenerationCache stores generated model output keyed by the kind of
// generation and a digest of the prompt. A nil cache is a valid no-op, so
// callers don't have to care whether Redis is configured.
type GenerationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGenerationCache connects to Redis and verifies the connection.
func NewGenerationCache(addr, password string, ttl time.Duration) (*GenerationCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &GenerationCache{client: rdb, ttl: ttl}, nil
}

// Get returns the cached output for kind+prompt, or ("", false) on a miss.
func (c *GenerationCache) Get(ctx context.Context, kind, prompt string) (string, bool) {
	if c == nil || c.client == nil {
		return "", false
	}
	val, err := c.client.Get(ctx, cacheKey(kind, prompt)).Result()
	if err != nil {
		// redis.Nil and transport errors are both treated as a miss
		return "", false
	}
	return val, true
}

// Set stores the output for kind+prompt with the configured TTL. Best-effort;
// a write failure never fails the request.
func (c *GenerationCache) Set(ctx context.Context, kind, prompt, output string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Set(ctx, cacheKey(kind, prompt), output, c.ttl).Err()
}

// Close releases the Redis connection.
func (c *GenerationCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func cacheKey(kind, prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return fmt.Sprintf("llm:%s:%s", kind, hex.EncodeToString(sum[:]))
}
