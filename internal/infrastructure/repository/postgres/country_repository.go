package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hoops-sync/internal/domain/country"
	qb "github.com/riskibarqy/hoops-sync/internal/platform/querybuilder"
)

type CountryRepository struct {
	db *sqlx.DB
}

func NewCountryRepository(db *sqlx.DB) *CountryRepository {
	return &CountryRepository{db: db}
}

func (r *CountryRepository) Upsert(ctx context.Context, item country.Country) (bool, error) {
	return execUpsert(ctx, r.db, qb.Upsert{
		Table:           "countries",
		Model:           countryWriteModel{CountryKey: item.Key, Name: item.Name},
		ConflictColumns: []string{"country_key"},
		Touch:           []string{"updated_at"},
	})
}

func (r *CountryRepository) GetByKey(ctx context.Context, key string) (country.Country, bool, error) {
	query, args, err := qb.Select("country_key", "name").From("countries").
		Where(qb.Eq("country_key", key)).
		ToSQL()
	if err != nil {
		return country.Country{}, false, fmt.Errorf("build get country query: %w", err)
	}

	var row countryWriteModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return country.Country{}, false, nil
		}
		return country.Country{}, false, fmt.Errorf("get country by key: %w", err)
	}
	return country.Country{Key: row.CountryKey, Name: row.Name}, true, nil
}

func (r *CountryRepository) List(ctx context.Context) ([]country.Country, error) {
	query, args, err := qb.Select("country_key", "name").From("countries").
		OrderBy("name", "country_key").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select countries query: %w", err)
	}

	var rows []countryWriteModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select countries: %w", err)
	}

	out := make([]country.Country, 0, len(rows))
	for _, row := range rows {
		out = append(out, country.Country{Key: row.CountryKey, Name: row.Name})
	}
	return out, nil
}
