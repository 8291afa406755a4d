package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/hoops-sync/internal/domain/fixture"
	"github.com/riskibarqy/hoops-sync/internal/platform/id"
)

type FixtureRepository struct {
	mu        sync.RWMutex
	ids       id.Generator
	byID      map[string]fixture.Fixture
	idByEvent map[string]string
}

// NewFixtureRepository assigns surrogate IDs from ids, or random UUIDs when
// ids is nil.
func NewFixtureRepository(ids id.Generator) *FixtureRepository {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &FixtureRepository{
		ids:       ids,
		byID:      make(map[string]fixture.Fixture),
		idByEvent: make(map[string]string),
	}
}

func (r *FixtureRepository) Upsert(_ context.Context, item fixture.Fixture) (fixture.Fixture, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existingID, ok := r.idByEvent[item.EventKey]; ok {
		item.ID = existingID
		r.byID[existingID] = item
		return item, false, nil
	}

	newID, err := r.ids.NewID()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("assign fixture id: %w", err)
	}
	item.ID = newID
	r.byID[newID] = item
	r.idByEvent[item.EventKey] = newID
	return item, true, nil
}

func (r *FixtureRepository) GetByID(_ context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[fixtureID]
	return item, ok, nil
}

func (r *FixtureRepository) GetByEventKey(_ context.Context, eventKey string) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fixtureID, ok := r.idByEvent[eventKey]
	if !ok {
		return fixture.Fixture{}, false, nil
	}
	return r.byID[fixtureID], true, nil
}

func (r *FixtureRepository) List(_ context.Context, filter fixture.Filter) ([]fixture.Fixture, error) {
	items := r.matching(filter)
	if filter.Offset > 0 {
		if filter.Offset >= len(items) {
			return []fixture.Fixture{}, nil
		}
		items = items[filter.Offset:]
	}
	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items, nil
}

func (r *FixtureRepository) Count(_ context.Context, filter fixture.Filter) (int, error) {
	return len(r.matching(filter)), nil
}

func (r *FixtureRepository) LeagueSummary(_ context.Context, leagueKey string) ([]string, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	var season string
	for _, item := range r.byID {
		if item.LeagueKey != leagueKey {
			continue
		}
		seen[item.HomeTeamKey] = struct{}{}
		seen[item.AwayTeamKey] = struct{}{}
		if item.LeagueSeason > season {
			season = item.LeagueSeason
		}
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, season, nil
}

func (r *FixtureRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

func (r *FixtureRepository) matching(filter fixture.Filter) []fixture.Fixture {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0)
	for _, item := range r.byID {
		if filter.LeagueKey != "" && item.LeagueKey != filter.LeagueKey {
			continue
		}
		if filter.TeamKey != "" && item.HomeTeamKey != filter.TeamKey && item.AwayTeamKey != filter.TeamKey {
			continue
		}
		if filter.Season != "" && item.LeagueSeason != filter.Season {
			continue
		}
		if filter.DateFrom != "" && item.Date < filter.DateFrom {
			continue
		}
		if filter.DateTo != "" && item.Date > filter.DateTo {
			continue
		}
		out = append(out, item)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		if out[i].Time != out[j].Time {
			return out[i].Time > out[j].Time
		}
		return out[i].EventKey < out[j].EventKey
	})
	return out
}

// ScoreRepository keeps one score row per (fixture, quarter).
type ScoreRepository struct {
	mu    sync.RWMutex
	items map[string][]fixture.Score
}

func NewScoreRepository() *ScoreRepository {
	return &ScoreRepository{items: make(map[string][]fixture.Score)}
}

func (r *ScoreRepository) UpsertScore(_ context.Context, item fixture.Score) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.items[item.FixtureID]
	for idx := range rows {
		if rows[idx].Quarter == item.Quarter {
			rows[idx] = item
			return false, nil
		}
	}
	r.items[item.FixtureID] = append(rows, item)
	return true, nil
}

func (r *ScoreRepository) ListScores(_ context.Context, fixtureID string) ([]fixture.Score, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]fixture.Score(nil), r.items[fixtureID]...), nil
}

type StatisticRepository struct {
	mu    sync.RWMutex
	items map[string][]fixture.Statistic
}

func NewStatisticRepository() *StatisticRepository {
	return &StatisticRepository{items: make(map[string][]fixture.Statistic)}
}

func (r *StatisticRepository) ReplaceStatistics(_ context.Context, fixtureID string, items []fixture.Statistic) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[fixtureID] = append([]fixture.Statistic(nil), items...)
	return nil
}

func (r *StatisticRepository) ListStatistics(_ context.Context, fixtureID string) ([]fixture.Statistic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]fixture.Statistic(nil), r.items[fixtureID]...), nil
}
