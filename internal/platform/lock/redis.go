package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lease only if it still carries our token, so an
// expired lease taken over by another worker is never removed.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLease is a Locker shared across processes. Leases expire after ttl so
// a crashed holder cannot block a target forever.
type RedisLease struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisLease(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisLease {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisLease{client: client, prefix: prefix, ttl: ttl}
}

func (l *RedisLease) TryAcquire(ctx context.Context, key string) (Release, error) {
	fullKey := l.prefix + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, fullKey, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lease %s: %w", fullKey, err)
	}
	if !ok {
		return nil, ErrHeld
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// Release must still run after the caller's context is cancelled.
			releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			_ = releaseScript.Run(releaseCtx, l.client, []string{fullKey}, token).Err()
		})
	}, nil
}
