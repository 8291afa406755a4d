package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hoops-sync/internal/domain/player"
	qb "github.com/riskibarqy/hoops-sync/internal/platform/querybuilder"
)

var playerColumns = []string{"player_key", "name", "team_key"}

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) Upsert(ctx context.Context, item player.Player) (bool, error) {
	return execUpsert(ctx, r.db, qb.Upsert{
		Table: "players",
		Model: playerWriteModel{
			PlayerKey: item.Key,
			Name:      item.Name,
			TeamKey:   nullableString(item.TeamKey),
		},
		ConflictColumns: []string{"player_key"},
		Touch:           []string{"updated_at"},
	})
}

func (r *PlayerRepository) GetByKey(ctx context.Context, key string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerColumns...).From("players").
		Where(qb.Eq("player_key", key)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerWriteModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player by key: %w", err)
	}
	return toPlayer(row), true, nil
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamKey string) ([]player.Player, error) {
	return r.list(ctx, qb.Eq("team_key", teamKey))
}

func (r *PlayerRepository) ListByKeys(ctx context.Context, keys []string) ([]player.Player, error) {
	keys = uniqueKeys(keys)
	if len(keys) == 0 {
		return nil, nil
	}
	return r.list(ctx, qb.AnyOf("player_key", keys))
}

func (r *PlayerRepository) list(ctx context.Context, conditions ...qb.Condition) ([]player.Player, error) {
	query, args, err := qb.Select(playerColumns...).From("players").
		Where(conditions...).
		OrderBy("name", "player_key").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerWriteModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, toPlayer(row))
	}
	return out, nil
}

func toPlayer(row playerWriteModel) player.Player {
	return player.Player{Key: row.PlayerKey, Name: row.Name, TeamKey: row.TeamKey.String}
}
