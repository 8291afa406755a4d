package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/hoops-sync/internal/domain/fixture"
	"github.com/riskibarqy/hoops-sync/internal/domain/league"
	"github.com/riskibarqy/hoops-sync/internal/domain/team"
)

// DefaultSeason is reported when a league has no fixtures with a season.
const DefaultSeason = "2024/25"

type LeagueStats struct {
	TotalTeams    int    `json:"total_teams"`
	TotalGames    int    `json:"total_games"`
	CurrentSeason string `json:"current_season"`
}

type LeagueService struct {
	leagues  league.Repository
	teams    team.Repository
	fixtures fixture.Repository
}

func NewLeagueService(leagues league.Repository, teams team.Repository, fixtures fixture.Repository) *LeagueService {
	return &LeagueService{
		leagues:  leagues,
		teams:    teams,
		fixtures: fixtures,
	}
}

func (s *LeagueService) List(ctx context.Context, countryKey string) ([]league.League, error) {
	countryKey = strings.TrimSpace(countryKey)
	if countryKey == "" {
		items, err := s.leagues.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list leagues: %w", err)
		}
		return items, nil
	}

	items, err := s.leagues.ListByCountry(ctx, countryKey)
	if err != nil {
		return nil, fmt.Errorf("list leagues country=%s: %w", countryKey, err)
	}
	return items, nil
}

// Stats counts the distinct teams seen in the league's fixtures and the games
// of its latest season.
func (s *LeagueService) Stats(ctx context.Context, leagueKey string) (LeagueStats, error) {
	leagueKey = strings.TrimSpace(leagueKey)
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Stats")
	defer span.End()

	if leagueKey == "" {
		return LeagueStats{}, &ValidationError{Field: "league_key", Reason: "is required"}
	}

	teamKeys, season, err := s.fixtures.LeagueSummary(ctx, leagueKey)
	if err != nil {
		recordSpanError(span, err)
		return LeagueStats{}, fmt.Errorf("summarize league=%s: %w", leagueKey, err)
	}

	games, err := s.fixtures.Count(ctx, fixture.Filter{LeagueKey: leagueKey, Season: season})
	if err != nil {
		recordSpanError(span, err)
		return LeagueStats{}, fmt.Errorf("count fixtures league=%s: %w", leagueKey, err)
	}

	if season == "" {
		season = DefaultSeason
	}
	return LeagueStats{
		TotalTeams:    len(teamKeys),
		TotalGames:    games,
		CurrentSeason: season,
	}, nil
}

// TeamsByLeague returns the teams that played a fixture in the league,
// ordered by name.
func (s *LeagueService) TeamsByLeague(ctx context.Context, leagueKey string) ([]team.Team, error) {
	leagueKey = strings.TrimSpace(leagueKey)
	if leagueKey == "" {
		return nil, &ValidationError{Field: "league_key", Reason: "is required"}
	}

	teamKeys, _, err := s.fixtures.LeagueSummary(ctx, leagueKey)
	if err != nil {
		return nil, fmt.Errorf("summarize league=%s: %w", leagueKey, err)
	}
	if len(teamKeys) == 0 {
		return []team.Team{}, nil
	}

	items, err := s.teams.ListByKeys(ctx, teamKeys)
	if err != nil {
		return nil, fmt.Errorf("list teams league=%s: %w", leagueKey, err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})
	return items, nil
}
