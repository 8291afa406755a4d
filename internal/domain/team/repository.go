package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	Upsert(ctx context.Context, item Team) (bool, error)
	GetByKey(ctx context.Context, key string) (Team, bool, error)
	ListByLeague(ctx context.Context, leagueKey string) ([]Team, error)
	ListByKeys(ctx context.Context, keys []string) ([]Team, error)
}
