package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hoops-sync/internal/domain/fixture"
	"github.com/riskibarqy/hoops-sync/internal/platform/id"
	qb "github.com/riskibarqy/hoops-sync/internal/platform/querybuilder"
)

var fixtureColumns = []string{
	"id", "event_key", "event_date", "event_time", "status", "quarter", "final_result", "live",
	"league_key", "league_round", "league_season", "home_team_key", "away_team_key",
}

// fixtureUpdateColumns leaves id and event_key alone so the surrogate key
// survives every re-sync.
var fixtureUpdateColumns = []string{
	"event_date", "event_time", "status", "quarter", "final_result", "live",
	"league_key", "league_round", "league_season", "home_team_key", "away_team_key",
}

const leagueTeamKeysQuery = `SELECT team_key FROM (
	SELECT home_team_key AS team_key FROM fixtures WHERE league_key = $1
	UNION
	SELECT away_team_key AS team_key FROM fixtures WHERE league_key = $1
) league_teams ORDER BY team_key`

type FixtureRepository struct {
	db  *sqlx.DB
	ids id.Generator
}

func NewFixtureRepository(db *sqlx.DB, ids id.Generator) *FixtureRepository {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &FixtureRepository{db: db, ids: ids}
}

func (r *FixtureRepository) Upsert(ctx context.Context, item fixture.Fixture) (fixture.Fixture, bool, error) {
	newID, err := r.ids.NewID()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("generate fixture id: %w", err)
	}

	row := fixtureWriteModel{
		ID:           newID,
		EventKey:     item.EventKey,
		EventDate:    item.Date,
		EventTime:    item.Time,
		Status:       item.Status,
		Quarter:      item.Quarter,
		FinalResult:  item.FinalResult,
		Live:         item.Live,
		LeagueKey:    item.LeagueKey,
		LeagueRound:  item.LeagueRound,
		LeagueSeason: item.LeagueSeason,
		HomeTeamKey:  item.HomeTeamKey,
		AwayTeamKey:  item.AwayTeamKey,
	}
	query, args, err := qb.Upsert{
		Table:           "fixtures",
		Model:           row,
		ConflictColumns: []string{"event_key"},
		UpdateColumns:   fixtureUpdateColumns,
		Touch:           []string{"updated_at"},
		Returning:       "id, " + insertedFlag,
	}.ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build upsert fixture query: %w", err)
	}

	var out struct {
		ID       string `db:"id"`
		Inserted bool   `db:"inserted"`
	}
	if err := r.db.GetContext(ctx, &out, query, args...); err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("upsert fixture event_key=%s: %w", item.EventKey, err)
	}

	item.ID = out.ID
	return item, out.Inserted, nil
}

func (r *FixtureRepository) GetByID(ctx context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	return r.getOne(ctx, qb.Eq("id", fixtureID))
}

func (r *FixtureRepository) GetByEventKey(ctx context.Context, eventKey string) (fixture.Fixture, bool, error) {
	return r.getOne(ctx, qb.Eq("event_key", eventKey))
}

func (r *FixtureRepository) getOne(ctx context.Context, condition qb.Condition) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select(fixtureColumns...).From("fixtures").
		Where(condition).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build get fixture query: %w", err)
	}

	var row fixtureWriteModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("get fixture: %w", err)
	}
	return toFixture(row), true, nil
}

func (r *FixtureRepository) List(ctx context.Context, filter fixture.Filter) ([]fixture.Fixture, error) {
	builder := qb.Select(fixtureColumns...).From("fixtures").
		Where(fixtureConditions(filter)...).
		OrderBy("event_date DESC", "event_time DESC", "event_key")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		builder = builder.Offset(filter.Offset)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures query: %w", err)
	}

	var rows []fixtureWriteModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixtures: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, toFixture(row))
	}
	return out, nil
}

func (r *FixtureRepository) Count(ctx context.Context, filter fixture.Filter) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("fixtures").
		Where(fixtureConditions(filter)...).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count fixtures query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count fixtures: %w", err)
	}
	return total, nil
}

func (r *FixtureRepository) LeagueSummary(ctx context.Context, leagueKey string) ([]string, string, error) {
	var teamKeys []string
	if err := r.db.SelectContext(ctx, &teamKeys, leagueTeamKeysQuery, leagueKey); err != nil {
		return nil, "", fmt.Errorf("select league team keys: %w", err)
	}

	query, args, err := qb.Select("COALESCE(MAX(league_season), '')").From("fixtures").
		Where(qb.Eq("league_key", leagueKey)).
		ToSQL()
	if err != nil {
		return nil, "", fmt.Errorf("build latest season query: %w", err)
	}

	var season string
	if err := r.db.GetContext(ctx, &season, query, args...); err != nil {
		return nil, "", fmt.Errorf("get latest season: %w", err)
	}
	return teamKeys, season, nil
}

func fixtureConditions(filter fixture.Filter) []qb.Condition {
	var conditions []qb.Condition
	if key := strings.TrimSpace(filter.LeagueKey); key != "" {
		conditions = append(conditions, qb.Eq("league_key", key))
	}
	if key := strings.TrimSpace(filter.TeamKey); key != "" {
		conditions = append(conditions, qb.Or(qb.Eq("home_team_key", key), qb.Eq("away_team_key", key)))
	}
	if season := strings.TrimSpace(filter.Season); season != "" {
		conditions = append(conditions, qb.Eq("league_season", season))
	}
	if from := strings.TrimSpace(filter.DateFrom); from != "" {
		conditions = append(conditions, qb.Gte("event_date", from))
	}
	if to := strings.TrimSpace(filter.DateTo); to != "" {
		conditions = append(conditions, qb.Lte("event_date", to))
	}
	return conditions
}

func toFixture(row fixtureWriteModel) fixture.Fixture {
	return fixture.Fixture{
		ID:           row.ID,
		EventKey:     row.EventKey,
		Date:         row.EventDate,
		Time:         row.EventTime,
		Status:       row.Status,
		Quarter:      row.Quarter,
		FinalResult:  row.FinalResult,
		Live:         row.Live,
		LeagueKey:    row.LeagueKey,
		LeagueRound:  row.LeagueRound,
		LeagueSeason: row.LeagueSeason,
		HomeTeamKey:  row.HomeTeamKey,
		AwayTeamKey:  row.AwayTeamKey,
	}
}
