package lock

import (
	"context"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

const (
	lockKeyPrefix    = "courseloom:lock:course:"
	lockTTL          = 30 * time.Second
	lockPollInterval = 50 * time.Millisecond
)

// releaseScript deletes the lock only if it still holds our token, so an
// expired lock taken over by another instance is never released by us.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// RedisLocker serializes transitions per course across multiple instances.
type RedisLocker struct {
	client *redis.Client
}

// NewRedisLocker creates a Redis-backed per-course locker.
func NewRedisLocker(redisURL string) (*RedisLocker, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	return &RedisLocker{client: redis.NewClient(opts)}, nil
}

func (l *RedisLocker) Acquire(ctx context.Context, courseID string) (func(), error) {
	key := lockKeyPrefix + courseID
	token := uuid.New().String()

	for {
		ok, err := l.client.SetNX(ctx, key, token, lockTTL).Result()
		if err != nil {
			return nil, err
		}

		if ok {
			break
		}

		select {
		case <-time.After(lockPollInterval):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		_ = l.client.Eval(releaseCtx, releaseScript, []string{key}, token).Err()
	}, nil
}

// Close releases the underlying Redis connection.
func (l *RedisLocker) Close() error {
	return l.client.Close()
}
