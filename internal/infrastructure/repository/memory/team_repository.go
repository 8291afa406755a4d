package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/hoops-sync/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	items map[string]team.Team
}

func NewTeamRepository(seed ...team.Team) *TeamRepository {
	r := &TeamRepository{items: make(map[string]team.Team, len(seed))}
	for _, item := range seed {
		r.items[item.Key] = item
	}
	return r
}

// Upsert keeps the league key of an existing team.
func (r *TeamRepository) Upsert(_ context.Context, item team.Team) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.items[item.Key]
	if exists {
		existing.Name = item.Name
		existing.Logo = item.Logo
		r.items[item.Key] = existing
		return false, nil
	}
	r.items[item.Key] = item
	return true, nil
}

func (r *TeamRepository) GetByKey(_ context.Context, key string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[key]
	return item, ok, nil
}

func (r *TeamRepository) ListByLeague(_ context.Context, leagueKey string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, item := range r.items {
		if item.LeagueKey == leagueKey {
			out = append(out, item)
		}
	}
	sortTeams(out)
	return out, nil
}

func (r *TeamRepository) ListByKeys(_ context.Context, keys []string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(keys))
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
	sortTeams(out)
	return out, nil
}

func sortTeams(items []team.Team) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].Key < items[j].Key
	})
}
