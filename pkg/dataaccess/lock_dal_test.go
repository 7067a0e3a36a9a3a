package dataaccess

import (
	"context"
	"testing"
	"time"

	"github.com/Jacobbrewer1/swig/pkg/logging"
	"github.com/Jacobbrewer1/swig/pkg/tickets"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var _ tickets.Locker = (*RedisLocker)(nil)

const testLockKey = "500:777"

func newTestRedisLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()

	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err, "Failed to create logger")

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	locker := NewRedisLocker(l, client)
	locker.retry = 5 * time.Millisecond
	return locker, mr
}

func TestRedisLocker(t *testing.T) {
	ctx := context.Background()

	t.Run("AcquireRelease", func(t *testing.T) {
		locker, mr := newTestRedisLocker(t)

		unlock, err := locker.Lock(ctx, testLockKey)
		require.NoError(t, err)
		require.True(t, mr.Exists(lockKeyPrefix+testLockKey))
		require.Equal(t, locker.ttl, mr.TTL(lockKeyPrefix+testLockKey))

		unlock()
		require.False(t, mr.Exists(lockKeyPrefix+testLockKey))

		// Releasing twice is harmless.
		unlock()
	})

	t.Run("Contended", func(t *testing.T) {
		locker, _ := newTestRedisLocker(t)

		unlock, err := locker.Lock(ctx, testLockKey)
		require.NoError(t, err)

		acquired := make(chan func(), 1)
		go func() {
			second, err := locker.Lock(ctx, testLockKey)
			if err != nil {
				t.Error(err)
				close(acquired)
				return
			}
			acquired <- second
		}()

		select {
		case <-acquired:
			t.Fatal("lock acquired while held")
		case <-time.After(50 * time.Millisecond):
		}

		unlock()

		select {
		case second, ok := <-acquired:
			require.True(t, ok)
			second()
		case <-time.After(2 * time.Second):
			t.Fatal("lock not acquired after release")
		}
	})

	t.Run("OtherKeysIndependent", func(t *testing.T) {
		locker, _ := newTestRedisLocker(t)

		unlock, err := locker.Lock(ctx, testLockKey)
		require.NoError(t, err)
		defer unlock()

		other, err := locker.Lock(ctx, "500:778")
		require.NoError(t, err)
		other()
	})

	t.Run("ContextExpiresWhileWaiting", func(t *testing.T) {
		locker, _ := newTestRedisLocker(t)

		unlock, err := locker.Lock(ctx, testLockKey)
		require.NoError(t, err)
		defer unlock()

		cctx, cancel := context.WithTimeout(ctx, 30*time.Millisecond)
		defer cancel()

		second, err := locker.Lock(cctx, testLockKey)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		require.Nil(t, second)
	})

	t.Run("ReleaseChecksToken", func(t *testing.T) {
		locker, mr := newTestRedisLocker(t)

		stale, err := locker.Lock(ctx, testLockKey)
		require.NoError(t, err)

		// The first holder outlives its lock, which is then taken by someone else.
		mr.FastForward(locker.ttl + time.Second)
		require.False(t, mr.Exists(lockKeyPrefix+testLockKey))

		current, err := locker.Lock(ctx, testLockKey)
		require.NoError(t, err)
		token, err := mr.Get(lockKeyPrefix + testLockKey)
		require.NoError(t, err)

		stale()
		got, err := mr.Get(lockKeyPrefix + testLockKey)
		require.NoError(t, err)
		require.Equal(t, token, got)

		current()
		require.False(t, mr.Exists(lockKeyPrefix+testLockKey))
	})
}

func TestRedisLockerUnreachable(t *testing.T) {
	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err, "Failed to create logger")

	// Nothing listens on port 1, so every command fails straight away.
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	locker := NewRedisLocker(l, client)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	unlock, err := locker.Lock(ctx, testLockKey)
	require.Error(t, err)
	require.ErrorContains(t, err, "swig:lock:500:777")
	require.Nil(t, unlock)
}
