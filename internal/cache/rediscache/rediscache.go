// Package rediscache is a thin byte-level cache on top of Redis. A cache
// constructed without an address is disabled: reads miss and writes are
// dropped, so callers never need a nil check.
package rediscache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	c *redis.Client
}

// New connects to the Redis instance at addr. An empty addr yields a
// disabled cache.
func New(addr string) *RedisCache {
	if addr == "" {
		return &RedisCache{}
	}
	return &RedisCache{
		c: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
	}
}

// Enabled reports whether the cache is backed by a live client.
func (r *RedisCache) Enabled() bool {
	return r.c != nil
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if r.c == nil {
		return nil, false, nil
	}
	val, err := r.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "redis get")
	}
	return val, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if r.c == nil {
		return nil
	}
	if err := r.c.Set(ctx, key, value, ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set")
	}
	return nil
}

func (r *RedisCache) Del(ctx context.Context, key string) error {
	if r.c == nil {
		return nil
	}
	if err := r.c.Del(ctx, key).Err(); err != nil {
		return errors.Wrap(err, "redis del")
	}
	return nil
}

// Close releases the underlying client connection.
func (r *RedisCache) Close() error {
	if r.c == nil {
		return nil
	}
	return r.c.Close()
}
