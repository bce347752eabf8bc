// Package redisad provides a Redis-backed cache for search results and
// airline statistics.
package redisad

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/adapter/observability"
)

// Cache wraps a Redis client with JSON serialization and cache metrics.
type Cache struct {
	c   *redis.Client
	ttl time.Duration
}

// New creates a Cache against the given Redis address.
func New(addr, pass string, db int, ttl time.Duration) *Cache {
	return &Cache{
		c:   redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		ttl: ttl,
	}
}

// Get loads the value at key into dst. The bool reports whether the key existed.
func (r *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, err := r.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		observability.ObserveCache("redis", "miss")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	observability.ObserveCache("redis", "hit")
	return true, json.Unmarshal(v, dst)
}

// Set stores v at key with the cache's default TTL.
func (r *Cache) Set(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	observability.ObserveCache("redis", "set")
	return r.c.Set(ctx, key, b, r.ttl).Err()
}

// Del removes a key.
func (r *Cache) Del(ctx context.Context, key string) error {
	observability.ObserveCache("redis", "del")
	return r.c.Del(ctx, key).Err()
}

// Close releases the underlying connection pool.
func (r *Cache) Close() error {
	return r.c.Close()
}
