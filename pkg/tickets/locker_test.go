package tickets

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKeyedMutex(t *testing.T) {
	ctx := context.Background()

	t.Run("Exclusive", func(t *testing.T) {
		k := NewKeyedMutex()

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			inside  int
			maxSeen int
		)

		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				unlock, err := k.Lock(ctx, "a")
				if err != nil {
					t.Error(err)
					return
				}
				defer unlock()

				mu.Lock()
				inside++
				if inside > maxSeen {
					maxSeen = inside
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				inside--
				mu.Unlock()
			}()
		}
		wg.Wait()

		require.Equal(t, 1, maxSeen)
		require.Zero(t, k.Len())
	})

	t.Run("KeysAreIndependent", func(t *testing.T) {
		k := NewKeyedMutex()

		unlockA, err := k.Lock(ctx, "a")
		require.NoError(t, err)
		defer unlockA()

		cctx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()

		unlockB, err := k.Lock(cctx, "b")
		require.NoError(t, err)
		require.Equal(t, 2, k.Len())
		unlockB()
		require.Equal(t, 1, k.Len())
	})

	t.Run("ContextDone", func(t *testing.T) {
		k := NewKeyedMutex()

		unlock, err := k.Lock(ctx, "a")
		require.NoError(t, err)

		cctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer cancel()

		_, err = k.Lock(cctx, "a")
		require.ErrorIs(t, err, context.DeadlineExceeded)
		require.Equal(t, 1, k.Len())

		unlock()
		require.Zero(t, k.Len())
	})

	t.Run("UnlockTwice", func(t *testing.T) {
		k := NewKeyedMutex()

		unlock, err := k.Lock(ctx, "a")
		require.NoError(t, err)
		unlock()
		unlock()
		require.Zero(t, k.Len())

		unlock, err = k.Lock(ctx, "a")
		require.NoError(t, err)
		unlock()
	})
}
