package standing

import "context"

type Repository interface {
	Upsert(ctx context.Context, item Standing) (bool, error)
	// ListByLeague filters by season when season is non-empty.
	ListByLeague(ctx context.Context, leagueKey, season string) ([]Standing, error)
}
