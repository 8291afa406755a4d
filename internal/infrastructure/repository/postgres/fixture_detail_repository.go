package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hoops-sync/internal/domain/fixture"
	qb "github.com/riskibarqy/hoops-sync/internal/platform/querybuilder"
)

type ScoreRepository struct {
	db *sqlx.DB
}

func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

func (r *ScoreRepository) UpsertScore(ctx context.Context, item fixture.Score) (bool, error) {
	return execUpsert(ctx, r.db, qb.Upsert{
		Table: "fixture_scores",
		Model: fixtureScoreModel{
			FixtureID: item.FixtureID,
			Quarter:   item.Quarter,
			Home:      item.Home,
			Away:      item.Away,
		},
		ConflictColumns: []string{"fixture_id", "quarter"},
		Touch:           []string{"updated_at"},
	})
}

func (r *ScoreRepository) ListScores(ctx context.Context, fixtureID string) ([]fixture.Score, error) {
	query, args, err := qb.Select("fixture_id", "quarter", "score_home", "score_away").From("fixture_scores").
		Where(qb.Eq("fixture_id", fixtureID)).
		OrderBy("quarter").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixture scores query: %w", err)
	}

	var rows []fixtureScoreModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixture scores: %w", err)
	}

	out := make([]fixture.Score, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixture.Score{FixtureID: row.FixtureID, Quarter: row.Quarter, Home: row.Home, Away: row.Away})
	}
	return out, nil
}

type StatisticRepository struct {
	db *sqlx.DB
}

func NewStatisticRepository(db *sqlx.DB) *StatisticRepository {
	return &StatisticRepository{db: db}
}

// ReplaceStatistics swaps the fixture's whole box score in one transaction.
func (r *StatisticRepository) ReplaceStatistics(ctx context.Context, fixtureID string, items []fixture.Statistic) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace statistics tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query, args, err := qb.DeleteFrom("fixture_statistics").
		Where(qb.Eq("fixture_id", fixtureID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete fixture statistics query: %w", err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete fixture statistics: %w", err)
	}

	if len(items) > 0 {
		insert := qb.InsertInto("fixture_statistics").Columns("fixture_id", "stat_type", "home", "away")
		for _, item := range items {
			insert = insert.Values(fixtureID, item.Type, item.Home, item.Away)
		}
		query, args, err = insert.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert fixture statistics query: %w", err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert fixture statistics: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace statistics tx: %w", err)
	}
	return nil
}

func (r *StatisticRepository) ListStatistics(ctx context.Context, fixtureID string) ([]fixture.Statistic, error) {
	query, args, err := qb.Select("fixture_id", "stat_type", "home", "away").From("fixture_statistics").
		Where(qb.Eq("fixture_id", fixtureID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixture statistics query: %w", err)
	}

	var rows []fixtureStatisticModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixture statistics: %w", err)
	}

	out := make([]fixture.Statistic, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixture.Statistic{FixtureID: row.FixtureID, Type: row.Type, Home: row.Home, Away: row.Away})
	}
	return out, nil
}
