package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hoops-sync/internal/domain/team"
	qb "github.com/riskibarqy/hoops-sync/internal/platform/querybuilder"
)

var teamColumns = []string{"team_key", "name", "logo", "league_key"}

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// teamUpsert never rewrites league_key: the first league a team is synced
// under stays its owner.
func teamUpsert(row teamWriteModel) qb.Upsert {
	return qb.Upsert{
		Table:           "teams",
		Model:           row,
		ConflictColumns: []string{"team_key"},
		UpdateColumns:   []string{"name", "logo"},
		Touch:           []string{"updated_at"},
	}
}

func (r *TeamRepository) Upsert(ctx context.Context, item team.Team) (bool, error) {
	return execUpsert(ctx, r.db, teamUpsert(teamWriteModel{
		TeamKey:   item.Key,
		Name:      item.Name,
		Logo:      item.Logo,
		LeagueKey: item.LeagueKey,
	}))
}

func (r *TeamRepository) GetByKey(ctx context.Context, key string) (team.Team, bool, error) {
	query, args, err := qb.Select(teamColumns...).From("teams").
		Where(qb.Eq("team_key", key)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamWriteModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by key: %w", err)
	}
	return toTeam(row), true, nil
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueKey string) ([]team.Team, error) {
	return r.list(ctx, qb.Eq("league_key", leagueKey))
}

func (r *TeamRepository) ListByKeys(ctx context.Context, keys []string) ([]team.Team, error) {
	keys = uniqueKeys(keys)
	if len(keys) == 0 {
		return nil, nil
	}
	return r.list(ctx, qb.AnyOf("team_key", keys))
}

func (r *TeamRepository) list(ctx context.Context, conditions ...qb.Condition) ([]team.Team, error) {
	query, args, err := qb.Select(teamColumns...).From("teams").
		Where(conditions...).
		OrderBy("name", "team_key").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamWriteModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, toTeam(row))
	}
	return out, nil
}

func toTeam(row teamWriteModel) team.Team {
	return team.Team{Key: row.TeamKey, Name: row.Name, Logo: row.Logo, LeagueKey: row.LeagueKey}
}
