package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/hoops-sync/internal/domain/league"
	"github.com/riskibarqy/hoops-sync/internal/domain/team"
)

type TeamSyncInput struct {
	LeagueKey string
}

type TeamSyncService struct {
	provider BasketballProvider
	leagues  league.Repository
	teams    team.Repository
	support  SyncSupport
}

func NewTeamSyncService(provider BasketballProvider, leagues league.Repository, teams team.Repository, support SyncSupport) *TeamSyncService {
	return &TeamSyncService{
		provider: provider,
		leagues:  leagues,
		teams:    teams,
		support:  support.normalized(),
	}
}

func (s *TeamSyncService) SyncTeams(ctx context.Context, input TeamSyncInput) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamSyncService.SyncTeams")
	defer span.End()

	leagueKey := strings.TrimSpace(input.LeagueKey)
	if leagueKey == "" {
		return SyncResult{}, &ValidationError{Field: "league_key", Reason: "is required"}
	}

	result, err := s.support.run(ctx, "teams", []string{syncLockKey("teams", leagueKey)}, func(ctx context.Context) (SyncResult, error) {
		return s.syncTeams(ctx, leagueKey)
	})
	recordSpanError(span, err)
	return result, err
}

func (s *TeamSyncService) syncTeams(ctx context.Context, leagueKey string) (SyncResult, error) {
	items, err := s.provider.FetchTeams(ctx, leagueKey)
	if err != nil {
		return SyncResult{}, fmt.Errorf("fetch teams league=%s: %w", leagueKey, err)
	}

	_, leagueExists, err := s.leagues.GetByKey(ctx, leagueKey)
	if err != nil {
		return SyncResult{}, fmt.Errorf("get league=%s: %w", leagueKey, err)
	}

	rec := newRecorder(s.support.Observer, s.support.Logger)
	for _, item := range items {
		t := team.Team{
			Key:       strings.TrimSpace(item.Key),
			Name:      strings.TrimSpace(item.Name),
			Logo:      strings.TrimSpace(item.Logo),
			LeagueKey: leagueKey,
		}
		if !leagueExists {
			rec.skipped(ctx, &ReferentialGapError{Entity: entityTeam, Key: t.Key, Missing: "league", MissingKey: leagueKey})
			continue
		}
		if err := t.Validate(); err != nil {
			s.support.Logger.WarnContext(ctx, "ignore malformed team", "key", item.Key, "error", err)
			continue
		}

		created, err := s.teams.Upsert(ctx, t)
		if err != nil {
			return SyncResult{}, fmt.Errorf("upsert team=%s: %w", t.Key, err)
		}
		rec.upserted(entityTeam, t.Key, created)
	}

	return rec.finish("synced %d teams for league %s", rec.result.Synced, leagueKey), nil
}
