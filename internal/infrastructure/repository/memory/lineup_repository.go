package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/hoops-sync/internal/domain/lineup"
)

type LineupRepository struct {
	mu    sync.RWMutex
	items map[string][]lineup.Entry
}

func NewLineupRepository() *LineupRepository {
	return &LineupRepository{items: make(map[string][]lineup.Entry)}
}

func (r *LineupRepository) Upsert(_ context.Context, item lineup.Entry) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.items[item.FixtureID]
	for idx := range rows {
		if rows[idx].PlayerKey == item.PlayerKey && rows[idx].Side == item.Side {
			rows[idx] = item
			return false, nil
		}
	}
	r.items[item.FixtureID] = append(rows, item)
	return true, nil
}

func (r *LineupRepository) ListByFixture(_ context.Context, fixtureID string) ([]lineup.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]lineup.Entry(nil), r.items[fixtureID]...), nil
}
