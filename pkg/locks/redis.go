package locks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultLockTTL   = 30 * time.Second
	acquirePollEvery = 50 * time.Millisecond
)

// redisStore defines the operations used by RedisLocker.
type redisStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) *redis.BoolCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisLocker implements Locker using Redis SETNX + TTL. The TTL is a safety
// net against a crashed owner, not the expected hold duration.
type RedisLocker struct {
	client redisStore
	prefix string
	ttl    time.Duration
}

// NewRedisLocker constructs a Redis-backed keyed locker.
func NewRedisLocker(client redisStore, prefix string, ttl time.Duration) (*RedisLocker, error) {
	if client == nil {
		return nil, errors.New("redis client required for locker")
	}
	if prefix == "" {
		return nil, errors.New("lock key prefix is required")
	}
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &RedisLocker{client: client, prefix: prefix, ttl: ttl}, nil
}

// Acquire polls SETNX until it owns the key or ctx is done.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (Release, error) {
	fullKey := fmt.Sprintf("%s:%s", l.prefix, key)
	owner := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, fullKey, owner, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("setnx %s: %w", fullKey, err)
		}
		if ok {
			return l.releaseFunc(fullKey, owner), nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for lock %s: %w", fullKey, ctx.Err())
		case <-time.After(acquirePollEvery):
		}
	}
}

// releaseFunc frees the key only if the owner value still matches.
func (l *RedisLocker) releaseFunc(fullKey, owner string) Release {
	return func(ctx context.Context) error {
		value, err := l.client.Get(ctx, fullKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return nil
			}
			return fmt.Errorf("read lock owner: %w", err)
		}
		if value != owner {
			return nil
		}
		if err := l.client.Del(ctx, fullKey).Err(); err != nil {
			return fmt.Errorf("delete lock: %w", err)
		}
		return nil
	}
}
