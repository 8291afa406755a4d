package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	// Upsert refreshes name and team assignment of an existing player.
	Upsert(ctx context.Context, item Player) (bool, error)
	GetByKey(ctx context.Context, key string) (Player, bool, error)
	// ListByTeam returns players ordered by name.
	ListByTeam(ctx context.Context, teamKey string) ([]Player, error)
	ListByKeys(ctx context.Context, keys []string) ([]Player, error)
}
