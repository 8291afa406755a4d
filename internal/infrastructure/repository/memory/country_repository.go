package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/hoops-sync/internal/domain/country"
)

type CountryRepository struct {
	mu    sync.RWMutex
	items map[string]country.Country
}

func NewCountryRepository(seed ...country.Country) *CountryRepository {
	r := &CountryRepository{items: make(map[string]country.Country, len(seed))}
	for _, item := range seed {
		r.items[item.Key] = item
	}
	return r
}

func (r *CountryRepository) Upsert(_ context.Context, item country.Country) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.items[item.Key]
	r.items[item.Key] = item
	return !exists, nil
}

func (r *CountryRepository) GetByKey(_ context.Context, key string) (country.Country, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[key]
	return item, ok, nil
}

func (r *CountryRepository) List(_ context.Context) ([]country.Country, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]country.Country, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
