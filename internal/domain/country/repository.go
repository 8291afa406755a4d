package country

import "context"

// Repository persists countries by natural key.
type Repository interface {
	// Upsert reports created=true when no row existed for the key.
	Upsert(ctx context.Context, item Country) (bool, error)
	GetByKey(ctx context.Context, key string) (Country, bool, error)
	List(ctx context.Context) ([]Country, error)
}
