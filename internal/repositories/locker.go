package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/stellar/anchor-platform-sub000/internal/logger"
)

// releaseScript deletes the lock only if it is still owned by the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker is a distributed per-key lock based on SET NX PX.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration // lease; a crashed holder releases after ttl
	retry  time.Duration // poll interval while the key is held
}

func NewRedisLocker(client *redis.Client, ttl, retry time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl, retry: retry}
}

func lockKey(key string) string {
	return "lock:transaction:" + key
}

// Lock blocks until key is acquired or ctx is done.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	k := lockKey(key)
	token := uuid.NewString()

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()
	for {
		ok, err := l.client.SetNX(ctx, k, token, l.ttl).Result()
		if err != nil {
			return nil, errors.Wrapf(err, "acquire lock %s", k)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	logger.Log.Debugw("lock acquired", "key", k)
	return func() {
		// The batch context may already be cancelled; release regardless.
		if err := releaseScript.Run(context.Background(), l.client, []string{k}, token).Err(); err != nil {
			logger.Log.Errorw("failed to release lock", "key", k, "error", err)
		}
	}, nil
}
