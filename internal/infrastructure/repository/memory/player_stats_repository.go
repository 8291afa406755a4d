package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/hoops-sync/internal/domain/playerstats"
)

type PlayerStatsRepository struct {
	mu    sync.RWMutex
	lines []playerstats.Line
}

func NewPlayerStatsRepository(seed ...playerstats.Line) *PlayerStatsRepository {
	return &PlayerStatsRepository{lines: append([]playerstats.Line(nil), seed...)}
}

func (r *PlayerStatsRepository) Upsert(_ context.Context, item playerstats.Line) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.lines {
		row := r.lines[idx]
		if row.FixtureID == item.FixtureID && row.PlayerKey == item.PlayerKey && row.Side == item.Side {
			r.lines[idx] = item
			return false, nil
		}
	}
	r.lines = append(r.lines, item)
	return true, nil
}

// ListByFixture returns lines in insertion order.
func (r *PlayerStatsRepository) ListByFixture(_ context.Context, fixtureID string) ([]playerstats.Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]playerstats.Line, 0)
	for _, row := range r.lines {
		if row.FixtureID == fixtureID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *PlayerStatsRepository) ListByPlayers(_ context.Context, playerKeys []string) ([]playerstats.Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(playerKeys))
	for _, key := range playerKeys {
		wanted[key] = struct{}{}
	}

	out := make([]playerstats.Line, 0)
	for _, row := range r.lines {
		if _, ok := wanted[row.PlayerKey]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *PlayerStatsRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.lines)
}
