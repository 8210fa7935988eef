package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores resolved display names across processes.
type Cache interface {
	Get(ctx context.Context, address string) (string, bool, error)
	Set(ctx context.Context, address, name string) error
	Delete(ctx context.Context, address string) error
}

// RedisCache implements Cache on Redis with a fixed TTL per entry.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func cacheKey(address string) string {
	return fmt.Sprintf("contact:%s", address)
}

func (c *RedisCache) Get(ctx context.Context, address string) (string, bool, error) {
	name, err := c.rdb.Get(ctx, cacheKey(address)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

func (c *RedisCache) Set(ctx context.Context, address, name string) error {
	return c.rdb.Set(ctx, cacheKey(address), name, c.ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, address string) error {
	return c.rdb.Del(ctx, cacheKey(address)).Err()
}
