package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/hoops-sync/internal/domain/league"
)

type LeagueRepository struct {
	mu    sync.RWMutex
	items map[string]league.League
}

func NewLeagueRepository(seed ...league.League) *LeagueRepository {
	r := &LeagueRepository{items: make(map[string]league.League, len(seed))}
	for _, item := range seed {
		r.items[item.Key] = item
	}
	return r
}

func (r *LeagueRepository) Upsert(_ context.Context, item league.League) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.items[item.Key]
	r.items[item.Key] = item
	return !exists, nil
}

func (r *LeagueRepository) GetByKey(_ context.Context, key string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[key]
	return item, ok, nil
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	return r.filter(func(league.League) bool { return true }), nil
}

func (r *LeagueRepository) ListByCountry(_ context.Context, countryKey string) ([]league.League, error) {
	return r.filter(func(item league.League) bool { return item.CountryKey == countryKey }), nil
}

func (r *LeagueRepository) filter(keep func(league.League) bool) []league.League {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(r.items))
	for _, item := range r.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
