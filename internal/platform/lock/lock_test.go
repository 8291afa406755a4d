package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedMutex_ExclusivePerKey(t *testing.T) {
	t.Parallel()

	m := NewKeyedMutex()
	ctx := context.Background()

	release, err := m.TryAcquire(ctx, "fixtures:757")
	require.NoError(t, err)

	_, err = m.TryAcquire(ctx, "fixtures:757")
	assert.ErrorIs(t, err, ErrHeld)

	other, err := m.TryAcquire(ctx, "standings:757")
	require.NoError(t, err, "different kind must not contend")
	other()

	release()
	release()
	assert.False(t, m.Held("fixtures:757"))

	again, err := m.TryAcquire(ctx, "fixtures:757")
	require.NoError(t, err)
	again()
}

func TestKeyedMutex_ConcurrentAcquireHasSingleWinner(t *testing.T) {
	t.Parallel()

	m := NewKeyedMutex()
	var winners atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})
	releases := make(chan Release, 16)

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			release, err := m.TryAcquire(context.Background(), "fixtures:all")
			if err == nil {
				winners.Add(1)
				releases <- release
			}
		}()
	}
	close(start)
	wg.Wait()
	close(releases)

	assert.EqualValues(t, 1, winners.Load())
	for release := range releases {
		release()
	}
}

func TestRedisLease_UnreachableServer(t *testing.T) {
	t.Parallel()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	lease := NewRedisLease(client, "hoops-sync:lock:", 0)
	assert.Equal(t, 30*time.Minute, lease.ttl)

	release, err := lease.TryAcquire(context.Background(), "fixtures:757")
	require.Error(t, err)
	assert.Nil(t, release)
	assert.NotErrorIs(t, err, ErrHeld)
	assert.Contains(t, err.Error(), "hoops-sync:lock:fixtures:757")
}
