package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/hoops-sync/internal/domain/fixture"
	"github.com/riskibarqy/hoops-sync/internal/domain/lineup"
	"github.com/riskibarqy/hoops-sync/internal/domain/player"
	"github.com/riskibarqy/hoops-sync/internal/domain/playerstats"
	"go.opentelemetry.io/otel/attribute"
)

// PlayerTotals are season sums across every stored box-score line.
type PlayerTotals struct {
	Points             float64 `json:"points"`
	Rebounds           float64 `json:"rebounds"`
	Assists            float64 `json:"assists"`
	Steals             float64 `json:"steals"`
	Blocks             float64 `json:"blocks"`
	Turnovers          float64 `json:"turnovers"`
	Minutes            float64 `json:"minutes"`
	FieldGoalsMade     float64 `json:"field_goals_made"`
	FieldGoalsAttempts float64 `json:"field_goals_attempts"`
	ThreePointMade     float64 `json:"three_point_made"`
	ThreePointAttempts float64 `json:"three_point_attempts"`
	FreeThrowsMade     float64 `json:"free_throws_made"`
	FreeThrowsAttempts float64 `json:"free_throws_attempts"`
}

type PlayerAverage struct {
	PlayerKey   string       `json:"player_key"`
	Name        string       `json:"name"`
	TeamKey     string       `json:"team_key"`
	GamesPlayed int          `json:"games_played"`
	Totals      PlayerTotals `json:"totals"`

	AvgPoints    float64 `json:"avg_points"`
	AvgRebounds  float64 `json:"avg_rebounds"`
	AvgAssists   float64 `json:"avg_assists"`
	AvgSteals    float64 `json:"avg_steals"`
	AvgBlocks    float64 `json:"avg_blocks"`
	AvgTurnovers float64 `json:"avg_turnovers"`
	AvgMinutes   float64 `json:"avg_minutes"`

	FGPercentage         float64 `json:"fg_percentage"`
	ThreePointPercentage float64 `json:"three_point_percentage"`
	FTPercentage         float64 `json:"ft_percentage"`
}

type FixtureDetail struct {
	Fixture    fixture.Fixture     `json:"fixture"`
	Scores     []fixture.Score     `json:"scores"`
	Statistics []fixture.Statistic `json:"statistics"`
	Home       TeamBoxScore        `json:"home"`
	Away       TeamBoxScore        `json:"away"`
}

type TeamBoxScore struct {
	TeamKey  string          `json:"team_key"`
	TeamName string          `json:"team_name"`
	Players  []PlayerBoxLine `json:"players"`
}

type PlayerBoxLine struct {
	PlayerName string           `json:"player_name"`
	Role       lineup.Role      `json:"role,omitempty"`
	Line       playerstats.Line `json:"line"`
}

// StatsService derives read-only views over stored player statistics.
type StatsService struct {
	repos FixtureRepositories
}

func NewStatsService(repos FixtureRepositories) *StatsService {
	return &StatsService{repos: repos}
}

// PlayerAverages returns one row per player currently on the team, ordered
// by name.
func (s *StatsService) PlayerAverages(ctx context.Context, teamKey string) ([]PlayerAverage, error) {
	teamKey = strings.TrimSpace(teamKey)
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.PlayerAverages", attribute.String("team_key", teamKey))
	defer span.End()

	if teamKey == "" {
		return nil, &ValidationError{Field: "team_key", Reason: "is required"}
	}

	players, err := s.repos.Players.ListByTeam(ctx, teamKey)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("list players team=%s: %w", teamKey, err)
	}
	if len(players) == 0 {
		return []PlayerAverage{}, nil
	}

	keys := make([]string, 0, len(players))
	for _, p := range players {
		keys = append(keys, p.Key)
	}
	lines, err := s.repos.PlayerStats.ListByPlayers(ctx, keys)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("list player statistics team=%s: %w", teamKey, err)
	}

	byPlayer := make(map[string][]playerstats.Line, len(players))
	for _, line := range lines {
		byPlayer[line.PlayerKey] = append(byPlayer[line.PlayerKey], line)
	}

	out := make([]PlayerAverage, 0, len(players))
	for _, p := range players {
		out = append(out, computePlayerAverage(p, byPlayer[p.Key]))
	}
	return out, nil
}

func (s *StatsService) PlayerAverage(ctx context.Context, playerKey string) (PlayerAverage, error) {
	playerKey = strings.TrimSpace(playerKey)
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.PlayerAverage", attribute.String("player_key", playerKey))
	defer span.End()

	if playerKey == "" {
		return PlayerAverage{}, &ValidationError{Field: "player_key", Reason: "is required"}
	}

	p, ok, err := s.repos.Players.GetByKey(ctx, playerKey)
	if err != nil {
		recordSpanError(span, err)
		return PlayerAverage{}, fmt.Errorf("get player=%s: %w", playerKey, err)
	}
	if !ok {
		return PlayerAverage{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerKey)
	}

	lines, err := s.repos.PlayerStats.ListByPlayers(ctx, []string{playerKey})
	if err != nil {
		recordSpanError(span, err)
		return PlayerAverage{}, fmt.Errorf("list player statistics player=%s: %w", playerKey, err)
	}
	return computePlayerAverage(p, lines), nil
}

func computePlayerAverage(p player.Player, lines []playerstats.Line) PlayerAverage {
	avg := PlayerAverage{
		PlayerKey:   p.Key,
		Name:        p.Name,
		TeamKey:     p.TeamKey,
		GamesPlayed: len(lines),
	}
	if len(lines) == 0 {
		return avg
	}

	var t PlayerTotals
	for _, line := range lines {
		t.Points += playerstats.Value(line.Points)
		t.Rebounds += playerstats.Value(line.TotalRebounds)
		t.Assists += playerstats.Value(line.Assists)
		t.Steals += playerstats.Value(line.Steals)
		t.Blocks += playerstats.Value(line.Blocks)
		t.Turnovers += playerstats.Value(line.Turnovers)
		t.Minutes += playerstats.Value(line.Minutes)
		t.FieldGoalsMade += playerstats.Value(line.FieldGoalsMade)
		t.FieldGoalsAttempts += playerstats.Value(line.FieldGoalsAttempts)
		t.ThreePointMade += playerstats.Value(line.ThreePointMade)
		t.ThreePointAttempts += playerstats.Value(line.ThreePointAttempts)
		t.FreeThrowsMade += playerstats.Value(line.FreeThrowsMade)
		t.FreeThrowsAttempts += playerstats.Value(line.FreeThrowsAttempts)
	}

	games := float64(len(lines))
	avg.Totals = t
	avg.AvgPoints = t.Points / games
	avg.AvgRebounds = t.Rebounds / games
	avg.AvgAssists = t.Assists / games
	avg.AvgSteals = t.Steals / games
	avg.AvgBlocks = t.Blocks / games
	avg.AvgTurnovers = t.Turnovers / games
	avg.AvgMinutes = t.Minutes / games
	avg.FGPercentage = percentage(t.FieldGoalsMade, t.FieldGoalsAttempts)
	avg.ThreePointPercentage = percentage(t.ThreePointMade, t.ThreePointAttempts)
	avg.FTPercentage = percentage(t.FreeThrowsMade, t.FreeThrowsAttempts)
	return avg
}

func percentage(made, attempts float64) float64 {
	if attempts <= 0 {
		return 0
	}
	return made / attempts * 100
}

func (s *StatsService) FixtureDetail(ctx context.Context, fixtureID string) (FixtureDetail, error) {
	fixtureID = strings.TrimSpace(fixtureID)
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.FixtureDetail", attribute.String("fixture_id", fixtureID))
	defer span.End()

	if fixtureID == "" {
		return FixtureDetail{}, &ValidationError{Field: "fixture_id", Reason: "is required"}
	}

	detail, err := s.fixtureDetail(ctx, fixtureID)
	recordSpanError(span, err)
	return detail, err
}

func (s *StatsService) fixtureDetail(ctx context.Context, fixtureID string) (FixtureDetail, error) {
	fx, ok, err := s.repos.Fixtures.GetByID(ctx, fixtureID)
	if err != nil {
		return FixtureDetail{}, fmt.Errorf("get fixture=%s: %w", fixtureID, err)
	}
	if !ok {
		return FixtureDetail{}, fmt.Errorf("%w: fixture=%s", ErrNotFound, fixtureID)
	}

	scores, err := s.repos.Scores.ListScores(ctx, fixtureID)
	if err != nil {
		return FixtureDetail{}, fmt.Errorf("list scores fixture=%s: %w", fixtureID, err)
	}
	stats, err := s.repos.Statistics.ListStatistics(ctx, fixtureID)
	if err != nil {
		return FixtureDetail{}, fmt.Errorf("list statistics fixture=%s: %w", fixtureID, err)
	}
	entries, err := s.repos.Lineups.ListByFixture(ctx, fixtureID)
	if err != nil {
		return FixtureDetail{}, fmt.Errorf("list lineups fixture=%s: %w", fixtureID, err)
	}
	lines, err := s.repos.PlayerStats.ListByFixture(ctx, fixtureID)
	if err != nil {
		return FixtureDetail{}, fmt.Errorf("list player statistics fixture=%s: %w", fixtureID, err)
	}
	lines = DedupePlayerLines(lines)

	playerKeys := make([]string, 0, len(lines))
	for _, line := range lines {
		playerKeys = append(playerKeys, line.PlayerKey)
	}
	players, err := s.repos.Players.ListByKeys(ctx, playerKeys)
	if err != nil {
		return FixtureDetail{}, fmt.Errorf("list players fixture=%s: %w", fixtureID, err)
	}
	teams, err := s.repos.Teams.ListByKeys(ctx, []string{fx.HomeTeamKey, fx.AwayTeamKey})
	if err != nil {
		return FixtureDetail{}, fmt.Errorf("list teams fixture=%s: %w", fixtureID, err)
	}

	names := make(map[string]string, len(players))
	for _, p := range players {
		names[p.Key] = p.Name
	}
	teamNames := make(map[string]string, len(teams))
	for _, t := range teams {
		teamNames[t.Key] = t.Name
	}
	roles := make(map[string]lineup.Role, len(entries))
	for _, entry := range entries {
		roles[string(entry.Side)+":"+entry.PlayerKey] = entry.Role
	}

	detail := FixtureDetail{
		Fixture:    fx,
		Scores:     OrderScores(scores),
		Statistics: stats,
		Home:       TeamBoxScore{TeamKey: fx.HomeTeamKey, TeamName: teamNames[fx.HomeTeamKey], Players: []PlayerBoxLine{}},
		Away:       TeamBoxScore{TeamKey: fx.AwayTeamKey, TeamName: teamNames[fx.AwayTeamKey], Players: []PlayerBoxLine{}},
	}
	for _, line := range lines {
		row := PlayerBoxLine{
			PlayerName: names[line.PlayerKey],
			Role:       roles[string(line.Side)+":"+line.PlayerKey],
			Line:       line,
		}
		switch line.Side {
		case fixture.SideHome:
			detail.Home.Players = append(detail.Home.Players, row)
		case fixture.SideAway:
			detail.Away.Players = append(detail.Away.Players, row)
		}
	}
	return detail, nil
}

// DedupePlayerLines keeps one line per (player, side): the one with the most
// points, the earliest on ties. The result is ordered by points descending.
func DedupePlayerLines(lines []playerstats.Line) []playerstats.Line {
	best := make(map[string]int, len(lines))
	out := make([]playerstats.Line, 0, len(lines))
	for _, line := range lines {
		key := string(line.Side) + ":" + line.PlayerKey
		idx, seen := best[key]
		if !seen {
			best[key] = len(out)
			out = append(out, line)
			continue
		}
		if playerstats.Value(line.Points) > playerstats.Value(out[idx].Points) {
			out[idx] = line
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return playerstats.Value(out[i].Points) > playerstats.Value(out[j].Points)
	})
	return out
}

// OrderScores drops repeated quarter labels and orders the rest by quarter
// rank, unknown labels first.
func OrderScores(scores []fixture.Score) []fixture.Score {
	seen := make(map[string]struct{}, len(scores))
	out := make([]fixture.Score, 0, len(scores))
	for _, score := range scores {
		label := fixture.NormalizeQuarter(score.Quarter)
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, score)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return fixture.QuarterRank(out[i].Quarter) < fixture.QuarterRank(out[j].Quarter)
	})
	return out
}
