package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value     any
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !e.expiresAt.After(now)
}

// Stats is a point-in-time view of a Store.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// Store is an in-process TTL cache. Keys are grouped by namespace, the part
// before the first ':', so prefix invalidation only walks one namespace.
// A zero TTL keeps entries until deleted.
type Store struct {
	mu         sync.RWMutex
	namespaces map[string]map[string]entry
	ttl        time.Duration
	flight     singleflight.Group
	now        func() time.Time

	hits   atomic.Uint64
	misses atomic.Uint64
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		namespaces: make(map[string]map[string]entry),
		ttl:        ttl,
		now:        time.Now,
	}
}

func namespaceOf(key string) string {
	ns, _, _ := strings.Cut(key, ":")
	return ns
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	ns := namespaceOf(key)
	s.mu.RLock()
	e, ok := s.namespaces[ns][key]
	s.mu.RUnlock()
	if !ok {
		s.misses.Add(1)
		return nil, false
	}
	if e.expired(s.now()) {
		s.mu.Lock()
		if cur, still := s.namespaces[ns][key]; still && cur.expiresAt.Equal(e.expiresAt) {
			s.deleteLocked(ns, key)
		}
		s.mu.Unlock()
		s.misses.Add(1)
		return nil, false
	}

	s.hits.Add(1)
	return e.value, true
}

func (s *Store) Set(ctx context.Context, key string, value any) {
	s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *Store) SetWithTTL(_ context.Context, key string, value any, ttl time.Duration) {
	if key == "" {
		return
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = s.now().Add(ttl)
	}

	ns := namespaceOf(key)
	s.mu.Lock()
	bucket, ok := s.namespaces[ns]
	if !ok {
		bucket = make(map[string]entry)
		s.namespaces[ns] = bucket
	}
	bucket[key] = entry{value: value, expiresAt: expiresAt}
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	s.deleteLocked(namespaceOf(key), key)
	s.mu.Unlock()
}

// DeletePrefix drops every key starting with prefix. A prefix without ':'
// may span namespaces and walks all of them.
func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ns, _, scoped := strings.Cut(prefix, ":"); scoped {
		s.deletePrefixLocked(ns, prefix)
		return
	}
	for ns := range s.namespaces {
		s.deletePrefixLocked(ns, prefix)
	}
}

func (s *Store) deletePrefixLocked(ns, prefix string) {
	for key := range s.namespaces[ns] {
		if strings.HasPrefix(key, prefix) {
			s.deleteLocked(ns, key)
		}
	}
}

func (s *Store) deleteLocked(ns, key string) {
	bucket, ok := s.namespaces[ns]
	if !ok {
		return
	}
	delete(bucket, key)
	if len(bucket) == 0 {
		delete(s.namespaces, ns)
	}
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, bucket := range s.namespaces {
		n += len(bucket)
	}
	return n
}

func (s *Store) Stats() Stats {
	return Stats{
		Hits:    s.hits.Load(),
		Misses:  s.misses.Load(),
		Entries: s.Len(),
	}
}

func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	return s.GetOrLoadTTL(ctx, key, s.ttl, loader)
}

// GetOrLoadTTL returns the cached value or runs loader once per key across
// concurrent callers. Loader errors are not cached.
func (s *Store) GetOrLoadTTL(ctx context.Context, key string, ttl time.Duration, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.SetWithTTL(ctx, key, loaded, ttl)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}
