package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/hoops-sync/internal/domain/player"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	items map[string]player.Player
}

func NewPlayerRepository(seed ...player.Player) *PlayerRepository {
	r := &PlayerRepository{items: make(map[string]player.Player, len(seed))}
	for _, item := range seed {
		r.items[item.Key] = item
	}
	return r
}

func (r *PlayerRepository) Upsert(_ context.Context, item player.Player) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.items[item.Key]
	r.items[item.Key] = item
	return !exists, nil
}

func (r *PlayerRepository) GetByKey(_ context.Context, key string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[key]
	return item, ok, nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamKey string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0)
	for _, item := range r.items {
		if item.TeamKey == teamKey {
			out = append(out, item)
		}
	}
	sortPlayers(out)
	return out, nil
}

func (r *PlayerRepository) ListByKeys(_ context.Context, keys []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if item, ok := r.items[key]; ok {
			out = append(out, item)
		}
	}
	sortPlayers(out)
	return out, nil
}

func (r *PlayerRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func sortPlayers(items []player.Player) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].Key < items[j].Key
	})
}
