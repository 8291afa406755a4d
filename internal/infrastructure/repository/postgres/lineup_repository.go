package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hoops-sync/internal/domain/fixture"
	"github.com/riskibarqy/hoops-sync/internal/domain/lineup"
	qb "github.com/riskibarqy/hoops-sync/internal/platform/querybuilder"
)

type LineupRepository struct {
	db *sqlx.DB
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) Upsert(ctx context.Context, item lineup.Entry) (bool, error) {
	return execUpsert(ctx, r.db, qb.Upsert{
		Table: "fixture_lineups",
		Model: lineupModel{
			FixtureID: item.FixtureID,
			PlayerKey: item.PlayerKey,
			Side:      string(item.Side),
			Role:      string(item.Role),
		},
		ConflictColumns: []string{"fixture_id", "player_key", "side"},
		Touch:           []string{"updated_at"},
	})
}

func (r *LineupRepository) ListByFixture(ctx context.Context, fixtureID string) ([]lineup.Entry, error) {
	query, args, err := qb.Select("fixture_id", "player_key", "side", "role").From("fixture_lineups").
		Where(qb.Eq("fixture_id", fixtureID)).
		OrderBy("side", "role DESC", "player_key").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select lineups query: %w", err)
	}

	var rows []lineupModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select lineups: %w", err)
	}

	out := make([]lineup.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, lineup.Entry{
			FixtureID: row.FixtureID,
			PlayerKey: row.PlayerKey,
			Side:      fixture.Side(row.Side),
			Role:      lineup.Role(row.Role),
		})
	}
	return out, nil
}
