package volatility

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Cache is the narrow key-value contract the tracker needs. There is no
// optimistic concurrency here: callers must serialize writers per user.
type Cache interface {
	Get(ctx context.Context, key string) (*Record, bool, error)
	Put(ctx context.Context, key string, record *Record) error
}

// RedisCache stores records as JSON values with a TTL, so dedup state survives
// process restarts and is shared across nodes.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		rdb: rdb,
		ttl: ttl,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*Record, bool, error) {
	raw, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var record Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		// A corrupt record is treated as absent; the next attempt rewrites it.
		return nil, false, nil
	}
	return &record, true, nil
}

func (c *RedisCache) Put(ctx context.Context, key string, record *Record) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, raw, c.ttl).Err()
}

// MemoryCache backs single-node deployments and tests.
type MemoryCache struct {
	c *cache.Cache
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		c: cache.New(ttl, 10*time.Minute),
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (*Record, bool, error) {
	if x, found := c.c.Get(key); found {
		return x.(*Record), true, nil
	}
	return nil, false, nil
}

func (c *MemoryCache) Put(ctx context.Context, key string, record *Record) error {
	c.c.Set(key, record, cache.DefaultExpiration)
	return nil
}
