package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/hoops-sync/internal/domain/league"
	"github.com/riskibarqy/hoops-sync/internal/domain/standing"
	"github.com/riskibarqy/hoops-sync/internal/domain/team"
	"go.opentelemetry.io/otel/attribute"
)

const entityStanding = "standing"

type StandingSyncInput struct {
	LeagueKey string
}

type StandingSyncService struct {
	provider  BasketballProvider
	leagues   league.Repository
	teams     team.Repository
	standings standing.Repository
	support   SyncSupport
}

func NewStandingSyncService(
	provider BasketballProvider,
	leagues league.Repository,
	teams team.Repository,
	standings standing.Repository,
	support SyncSupport,
) *StandingSyncService {
	return &StandingSyncService{
		provider:  provider,
		leagues:   leagues,
		teams:     teams,
		standings: standings,
		support:   support.normalized(),
	}
}

func (s *StandingSyncService) SyncStandings(ctx context.Context, input StandingSyncInput) (SyncResult, error) {
	leagueKey := strings.TrimSpace(input.LeagueKey)
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingSyncService.SyncStandings",
		attribute.String("league_key", leagueKey),
	)
	defer span.End()

	if leagueKey == "" {
		return SyncResult{}, &ValidationError{Field: "league_key", Reason: "is required"}
	}

	result, err := s.support.run(ctx, "standings", []string{syncLockKey("standings", leagueKey)}, func(ctx context.Context) (SyncResult, error) {
		return s.syncStandings(ctx, leagueKey)
	})
	recordSpanError(span, err)
	return result, err
}

func (s *StandingSyncService) syncStandings(ctx context.Context, leagueKey string) (SyncResult, error) {
	items, err := s.provider.FetchStandings(ctx, leagueKey)
	if err != nil {
		return SyncResult{}, fmt.Errorf("fetch standings league=%s: %w", leagueKey, err)
	}

	rec := newRecorder(s.support.Observer, s.support.Logger)
	knownLeagues := make(map[string]bool)
	for _, item := range items {
		row := standing.Standing{
			TeamKey:       strings.TrimSpace(item.TeamKey),
			LeagueKey:     strings.TrimSpace(item.LeagueKey),
			LeagueSeason:  strings.TrimSpace(item.LeagueSeason),
			LeagueRound:   strings.TrimSpace(item.LeagueRound),
			Place:         item.Place,
			PlaceType:     item.PlaceType,
			TeamName:      strings.TrimSpace(item.TeamName),
			Played:        item.Played,
			Won:           item.Won,
			WonOvertime:   item.WonOvertime,
			Lost:          item.Lost,
			LostOvertime:  item.LostOvertime,
			PointsFor:     item.PointsFor,
			PointsAgainst: item.PointsAgainst,
			Pct:           item.Pct,
			SourceUpdated: item.Updated,
		}
		if row.LeagueKey == "" {
			row.LeagueKey = leagueKey
		}
		key := standingRecordKey(row)

		exists, ok := knownLeagues[row.LeagueKey]
		if !ok {
			_, exists, err = s.leagues.GetByKey(ctx, row.LeagueKey)
			if err != nil {
				return SyncResult{}, fmt.Errorf("get league=%s: %w", row.LeagueKey, err)
			}
			knownLeagues[row.LeagueKey] = exists
		}
		if !exists {
			rec.skipped(ctx, &ReferentialGapError{Entity: entityStanding, Key: key, Missing: "league", MissingKey: row.LeagueKey})
			continue
		}

		_, teamExists, err := s.teams.GetByKey(ctx, row.TeamKey)
		if err != nil {
			return SyncResult{}, fmt.Errorf("get team=%s: %w", row.TeamKey, err)
		}
		if !teamExists {
			rec.skipped(ctx, &ReferentialGapError{Entity: entityStanding, Key: key, Missing: "team", MissingKey: row.TeamKey})
			continue
		}

		created, err := s.standings.Upsert(ctx, row)
		if err != nil {
			return SyncResult{}, fmt.Errorf("upsert standing %s: %w", key, err)
		}
		rec.upserted(entityStanding, key, created)
	}

	return rec.finish("synced %d standings for league %s", rec.result.Synced, leagueKey), nil
}

func standingRecordKey(row standing.Standing) string {
	return strings.Join([]string{row.TeamKey, row.LeagueKey, row.LeagueSeason, row.LeagueRound}, ":")
}
