package dataaccess

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Jacobbrewer1/swig/pkg/dataaccess/monitoring"
	"github.com/Jacobbrewer1/swig/pkg/logging"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

const lockDalName = "lock_dal"

const (
	// defaultLockTTL is how long a lock survives if its holder never releases it.
	defaultLockTTL = 30 * time.Second

	// defaultLockRetry is how often a contended lock is retried.
	defaultLockRetry = 50 * time.Millisecond

	// unlockTimeout bounds the release of a lock.
	unlockTimeout = 5 * time.Second
)

// releaseScript deletes the lock only if it is still held with the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker is a Locker shared between every bot process connected to the same Redis.
type RedisLocker struct {
	// l is the logger.
	l *slog.Logger

	// client is the redis client.
	client *redis.Client

	ttl   time.Duration
	retry time.Duration
}

// NewRedisLocker creates a new Redis backed locker.
func NewRedisLocker(logger *slog.Logger, client *redis.Client) *RedisLocker {
	return &RedisLocker{
		l:      logger.With(slog.String(logging.KeyDal, lockDalName)),
		client: client,
		ttl:    defaultLockTTL,
		retry:  defaultLockRetry,
	}
}

func (r *RedisLocker) tryLock(ctx context.Context, key, token string) (bool, error) {
	monitoring.RedisTotalRequests.WithLabelValues(lockDalName, "set_nx").Inc()
	t := prometheus.NewTimer(monitoring.RedisLatency.WithLabelValues(lockDalName, "set_nx"))
	defer t.ObserveDuration()

	ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("error setting lock %s: %w", key, err)
	}
	return ok, nil
}

// Lock implements tickets.Locker. Contended locks are polled until acquired or the context is done.
func (r *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	t := prometheus.NewTimer(monitoring.LockWaitDuration.WithLabelValues(lockDalName))
	defer t.ObserveDuration()

	redisKey := lockKeyPrefix + key
	token := uuid.NewString()

	for {
		ok, err := r.tryLock(ctx, redisKey, token)
		if err != nil {
			return nil, err
		} else if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("error waiting for lock %s: %w", key, ctx.Err())
		case <-time.After(r.retry):
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			r.unlock(redisKey, token)
		})
	}, nil
}

func (r *RedisLocker) unlock(key, token string) {
	monitoring.RedisTotalRequests.WithLabelValues(lockDalName, "release").Inc()
	t := prometheus.NewTimer(monitoring.RedisLatency.WithLabelValues(lockDalName, "release"))
	defer t.ObserveDuration()

	// The caller's context may already be done, the lock must still be released.
	ctx, cancel := context.WithTimeout(context.Background(), unlockTimeout)
	defer cancel()

	if err := releaseScript.Run(ctx, r.client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		r.l.Error("Error releasing lock, it will expire on its own",
			slog.String(logging.KeyError, err.Error()),
			slog.String("key", key),
		)
	}
}
