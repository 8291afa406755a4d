package lineup

import "context"

type Repository interface {
	Upsert(ctx context.Context, item Entry) (bool, error)
	ListByFixture(ctx context.Context, fixtureID string) ([]Entry, error)
}
