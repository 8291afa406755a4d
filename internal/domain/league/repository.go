package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	Upsert(ctx context.Context, item League) (bool, error)
	GetByKey(ctx context.Context, key string) (League, bool, error)
	List(ctx context.Context) ([]League, error)
	ListByCountry(ctx context.Context, countryKey string) ([]League, error)
}
