package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hoops-sync/internal/domain/standing"
	qb "github.com/riskibarqy/hoops-sync/internal/platform/querybuilder"
)

var standingColumns = []string{
	"team_key", "league_key", "league_season", "league_round", "place", "place_type", "team_name",
	"played", "won", "won_overtime", "lost", "lost_overtime", "points_for", "points_against",
	"pct", "source_updated",
}

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) Upsert(ctx context.Context, item standing.Standing) (bool, error) {
	return execUpsert(ctx, r.db, qb.Upsert{
		Table: "standings",
		Model: standingModel{
			TeamKey:       item.TeamKey,
			LeagueKey:     item.LeagueKey,
			LeagueSeason:  item.LeagueSeason,
			LeagueRound:   item.LeagueRound,
			Place:         item.Place,
			PlaceType:     item.PlaceType,
			TeamName:      item.TeamName,
			Played:        item.Played,
			Won:           item.Won,
			WonOvertime:   item.WonOvertime,
			Lost:          item.Lost,
			LostOvertime:  item.LostOvertime,
			PointsFor:     item.PointsFor,
			PointsAgainst: item.PointsAgainst,
			Pct:           item.Pct,
			SourceUpdated: item.SourceUpdated,
		},
		ConflictColumns: []string{"team_key", "league_key", "league_season", "league_round"},
		Touch:           []string{"updated_at"},
	})
}

// ListByLeague returns rows in place order; place is text, so the final
// ordering is done by standing.SortByPlace.
func (r *StandingRepository) ListByLeague(ctx context.Context, leagueKey, season string) ([]standing.Standing, error) {
	conditions := []qb.Condition{qb.Eq("league_key", leagueKey)}
	if season = strings.TrimSpace(season); season != "" {
		conditions = append(conditions, qb.Eq("league_season", season))
	}

	query, args, err := qb.Select(standingColumns...).From("standings").
		Where(conditions...).
		OrderBy("league_season DESC", "team_key").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select standings query: %w", err)
	}

	var rows []standingModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select standings: %w", err)
	}

	out := make([]standing.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, standing.Standing{
			TeamKey:       row.TeamKey,
			LeagueKey:     row.LeagueKey,
			LeagueSeason:  row.LeagueSeason,
			LeagueRound:   row.LeagueRound,
			Place:         row.Place,
			PlaceType:     row.PlaceType,
			TeamName:      row.TeamName,
			Played:        row.Played,
			Won:           row.Won,
			WonOvertime:   row.WonOvertime,
			Lost:          row.Lost,
			LostOvertime:  row.LostOvertime,
			PointsFor:     row.PointsFor,
			PointsAgainst: row.PointsAgainst,
			Pct:           row.Pct,
			SourceUpdated: row.SourceUpdated,
		})
	}
	standing.SortByPlace(out)
	return out, nil
}
