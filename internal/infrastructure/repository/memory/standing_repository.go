package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/hoops-sync/internal/domain/standing"
)

type StandingRepository struct {
	mu   sync.RWMutex
	rows []standing.Standing
}

func NewStandingRepository(seed ...standing.Standing) *StandingRepository {
	return &StandingRepository{rows: append([]standing.Standing(nil), seed...)}
}

func (r *StandingRepository) Upsert(_ context.Context, item standing.Standing) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.rows {
		row := r.rows[idx]
		if row.TeamKey == item.TeamKey &&
			row.LeagueKey == item.LeagueKey &&
			row.LeagueSeason == item.LeagueSeason &&
			row.LeagueRound == item.LeagueRound {
			r.rows[idx] = item
			return false, nil
		}
	}
	r.rows = append(r.rows, item)
	return true, nil
}

func (r *StandingRepository) ListByLeague(_ context.Context, leagueKey, season string) ([]standing.Standing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standing.Standing, 0)
	for _, row := range r.rows {
		if row.LeagueKey != leagueKey {
			continue
		}
		if season != "" && row.LeagueSeason != season {
			continue
		}
		out = append(out, row)
	}
	standing.SortByPlace(out)
	return out, nil
}
