package cache

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache is a thin wrapper used by the country enrichment adapter.
// A nil *RedisCache is valid and behaves as an always-miss cache.
type RedisCache struct {
	Client *redis.Client
}

// NewFromEnv builds a cache from REDIS_ADDR/REDIS_PASSWORD/REDIS_DB.
// Returns nil when REDIS_ADDR is unset so caching stays optional.
func NewFromEnv() *RedisCache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	opts := &redis.Options{Addr: addr}
	if pw := os.Getenv("REDIS_PASSWORD"); pw != "" {
		opts.Password = pw
	}
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if dbInt, err := strconv.Atoi(dbStr); err == nil {
			opts.DB = dbInt
		}
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.Client.Ping(ctx).Err()
}

// Get returns ("", nil) on a cache miss.
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	if c == nil {
		return "", nil
	}
	val, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	return c.Client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Del(ctx context.Context, key string) error {
	if c == nil {
		return nil
	}
	return c.Client.Del(ctx, key).Err()
}
