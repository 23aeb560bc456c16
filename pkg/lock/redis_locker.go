package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock key only if this holder still owns it, so a
// lock that expired and was re-acquired by another node is never released by
// the stale holder.
const releaseScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end`

// RedisLocker serializes lock holders across nodes with SET NX plus a TTL.
// The TTL bounds how long a crashed holder can wedge a user.
type RedisLocker struct {
	rdb      *redis.Client
	ttl      time.Duration
	pollWait time.Duration
}

func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		rdb:      rdb,
		ttl:      ttl,
		pollWait: 100 * time.Millisecond,
	}
}

func (l *RedisLocker) Acquire(ctx context.Context, name string) (Handle, error) {
	key := "lock:" + name
	token := uuid.NewString()

	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", name, err)
		}
		if ok {
			return &redisHandle{rdb: l.rdb, key: key, token: token}, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("gave up waiting for lock %s: %w", name, ctx.Err())
		case <-time.After(l.pollWait):
		}
	}
}

type redisHandle struct {
	rdb   *redis.Client
	key   string
	token string
}

func (h *redisHandle) Release(ctx context.Context) error {
	return h.rdb.Eval(ctx, releaseScript, []string{h.key}, h.token).Err()
}
