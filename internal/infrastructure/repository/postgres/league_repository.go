package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hoops-sync/internal/domain/league"
	qb "github.com/riskibarqy/hoops-sync/internal/platform/querybuilder"
)

var leagueColumns = []string{"league_key", "name", "country_key"}

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) Upsert(ctx context.Context, item league.League) (bool, error) {
	return execUpsert(ctx, r.db, qb.Upsert{
		Table:           "leagues",
		Model:           leagueWriteModel{LeagueKey: item.Key, Name: item.Name, CountryKey: item.CountryKey},
		ConflictColumns: []string{"league_key"},
		Touch:           []string{"updated_at"},
	})
}

func (r *LeagueRepository) GetByKey(ctx context.Context, key string) (league.League, bool, error) {
	query, args, err := qb.Select(leagueColumns...).From("leagues").
		Where(qb.Eq("league_key", key)).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league query: %w", err)
	}

	var row leagueWriteModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by key: %w", err)
	}
	return toLeague(row), true, nil
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	return r.list(ctx)
}

func (r *LeagueRepository) ListByCountry(ctx context.Context, countryKey string) ([]league.League, error) {
	return r.list(ctx, qb.Eq("country_key", countryKey))
}

func (r *LeagueRepository) list(ctx context.Context, conditions ...qb.Condition) ([]league.League, error) {
	query, args, err := qb.Select(leagueColumns...).From("leagues").
		Where(conditions...).
		OrderBy("name", "league_key").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}

	var rows []leagueWriteModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, toLeague(row))
	}
	return out, nil
}

func toLeague(row leagueWriteModel) league.League {
	return league.League{Key: row.LeagueKey, Name: row.Name, CountryKey: row.CountryKey}
}
