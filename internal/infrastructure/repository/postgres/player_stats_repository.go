package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hoops-sync/internal/domain/fixture"
	"github.com/riskibarqy/hoops-sync/internal/domain/playerstats"
	qb "github.com/riskibarqy/hoops-sync/internal/platform/querybuilder"
)

var playerStatisticColumns = []string{
	"fixture_id", "player_key", "side", "position", "minutes", "points", "assists", "blocks",
	"steals", "turnovers", "personal_fouls", "plus_minus", "defense_rebounds", "offence_rebounds",
	"total_rebounds", "field_goals_made", "field_goals_attempts", "three_point_made",
	"three_point_attempts", "free_throws_made", "free_throws_attempts", "on_court",
}

type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

func (r *PlayerStatsRepository) Upsert(ctx context.Context, item playerstats.Line) (bool, error) {
	return execUpsert(ctx, r.db, qb.Upsert{
		Table:           "player_statistics",
		Model:           toPlayerStatisticModel(item),
		ConflictColumns: []string{"fixture_id", "player_key", "side"},
		Touch:           []string{"updated_at"},
	})
}

func (r *PlayerStatsRepository) ListByFixture(ctx context.Context, fixtureID string) ([]playerstats.Line, error) {
	return r.list(ctx, qb.Eq("fixture_id", fixtureID))
}

func (r *PlayerStatsRepository) ListByPlayers(ctx context.Context, playerKeys []string) ([]playerstats.Line, error) {
	playerKeys = uniqueKeys(playerKeys)
	if len(playerKeys) == 0 {
		return nil, nil
	}
	return r.list(ctx, qb.AnyOf("player_key", playerKeys))
}

func (r *PlayerStatsRepository) list(ctx context.Context, condition qb.Condition) ([]playerstats.Line, error) {
	query, args, err := qb.Select(playerStatisticColumns...).From("player_statistics").
		Where(condition).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player statistics query: %w", err)
	}

	var rows []playerStatisticModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player statistics: %w", err)
	}

	out := make([]playerstats.Line, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromPlayerStatisticModel(row))
	}
	return out, nil
}

func toPlayerStatisticModel(item playerstats.Line) playerStatisticModel {
	return playerStatisticModel{
		FixtureID:          item.FixtureID,
		PlayerKey:          item.PlayerKey,
		Side:               string(item.Side),
		Position:           item.Position,
		Minutes:            item.Minutes,
		Points:             item.Points,
		Assists:            item.Assists,
		Blocks:             item.Blocks,
		Steals:             item.Steals,
		Turnovers:          item.Turnovers,
		PersonalFouls:      item.PersonalFouls,
		PlusMinus:          item.PlusMinus,
		DefenseRebounds:    item.DefenseRebounds,
		OffenceRebounds:    item.OffenceRebounds,
		TotalRebounds:      item.TotalRebounds,
		FieldGoalsMade:     item.FieldGoalsMade,
		FieldGoalsAttempts: item.FieldGoalsAttempts,
		ThreePointMade:     item.ThreePointMade,
		ThreePointAttempts: item.ThreePointAttempts,
		FreeThrowsMade:     item.FreeThrowsMade,
		FreeThrowsAttempts: item.FreeThrowsAttempts,
		OnCourt:            item.OnCourt,
	}
}

func fromPlayerStatisticModel(row playerStatisticModel) playerstats.Line {
	return playerstats.Line{
		FixtureID:          row.FixtureID,
		PlayerKey:          row.PlayerKey,
		Side:               fixture.Side(row.Side),
		Position:           row.Position,
		Minutes:            row.Minutes,
		Points:             row.Points,
		Assists:            row.Assists,
		Blocks:             row.Blocks,
		Steals:             row.Steals,
		Turnovers:          row.Turnovers,
		PersonalFouls:      row.PersonalFouls,
		PlusMinus:          row.PlusMinus,
		DefenseRebounds:    row.DefenseRebounds,
		OffenceRebounds:    row.OffenceRebounds,
		TotalRebounds:      row.TotalRebounds,
		FieldGoalsMade:     row.FieldGoalsMade,
		FieldGoalsAttempts: row.FieldGoalsAttempts,
		ThreePointMade:     row.ThreePointMade,
		ThreePointAttempts: row.ThreePointAttempts,
		FreeThrowsMade:     row.FreeThrowsMade,
		FreeThrowsAttempts: row.FreeThrowsAttempts,
		OnCourt:            row.OnCourt,
	}
}
