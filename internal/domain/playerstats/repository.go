package playerstats

import "context"

// Repository stores box-score lines keyed by (fixture, player, side).
type Repository interface {
	Upsert(ctx context.Context, item Line) (bool, error)
	ListByFixture(ctx context.Context, fixtureID string) ([]Line, error)
	ListByPlayers(ctx context.Context, playerKeys []string) ([]Line, error)
}
