package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// PageCachePrefix is the key prefix for cached page payloads
	PageCachePrefix = "page:"

	// IndexPageKey is the fixed cache key for the post index page. The key
	// is deliberately independent of query parameters: within the TTL
	// window every index request is served the same rendered bytes.
	IndexPageKey = "index"
)

// PageCache is a blanket time-boxed cache for rendered page output. One
// entry per key, wall-clock expiry, no eviction policy. Redis handles
// per-entry atomicity, so a reader never observes a half-written payload.
type PageCache interface {
	// Get returns the cached payload for key. found=false on miss or
	// after expiry.
	Get(ctx context.Context, key string) (payload []byte, found bool, err error)

	// Set stores the rendered payload under key with the given TTL,
	// replacing any previous entry.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error

	// Invalidate drops the entry for key. This is the explicit
	// administrative entry point; normal writes do not invalidate.
	Invalidate(ctx context.Context, key string) error
}

// RedisPageCache implements PageCache on a shared Redis client.
type RedisPageCache struct {
	client *redis.Client
}

// NewPageCache creates a PageCache backed by Redis.
func NewPageCache(client *redis.Client) *RedisPageCache {
	return &RedisPageCache{client: client}
}

func pageKey(key string) string {
	return PageCachePrefix + key
}

func (c *RedisPageCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, pageKey(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached page: %w", err)
	}
	return payload, true, nil
}

func (c *RedisPageCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, pageKey(key), payload, ttl).Err(); err != nil {
		log.Printf("[PageCache] Set FAILED: key=%s err=%v", key, err)
		return fmt.Errorf("set cached page: %w", err)
	}
	return nil
}

func (c *RedisPageCache) Invalidate(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, pageKey(key)).Err(); err != nil {
		log.Printf("[PageCache] Invalidate FAILED: key=%s err=%v", key, err)
		return fmt.Errorf("invalidate cached page: %w", err)
	}
	log.Printf("[PageCache] Invalidated key=%s", key)
	return nil
}
