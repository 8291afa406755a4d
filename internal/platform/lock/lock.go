// Package lock provides non-blocking mutual exclusion keyed by sync target.
package lock

import (
	"context"
	"errors"
	"sync"
)

// ErrHeld is returned when another holder owns the key.
var ErrHeld = errors.New("lock is held")

// Release gives up a lock obtained from TryAcquire. Calling it more than once
// is a no-op.
type Release func()

// Locker grants at most one holder per key at a time.
type Locker interface {
	TryAcquire(ctx context.Context, key string) (Release, error)
}

// KeyedMutex is an in-process Locker.
type KeyedMutex struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{held: make(map[string]struct{})}
}

func (m *KeyedMutex) TryAcquire(_ context.Context, key string) (Release, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, busy := m.held[key]; busy {
		return nil, ErrHeld
	}
	m.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.held, key)
			m.mu.Unlock()
		})
	}, nil
}

// Held reports whether key is currently locked.
func (m *KeyedMutex) Held(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.held[key]
	return ok
}
