package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/hoops-sync/internal/domain/country"
	"github.com/riskibarqy/hoops-sync/internal/domain/league"
)

type LeagueSyncInput struct {
	// CountryKey narrows the provider query.
	CountryKey string
	// LeagueKeys narrows which fetched leagues are stored. Empty stores all.
	LeagueKeys []string
}

type LeagueSyncService struct {
	provider  BasketballProvider
	countries country.Repository
	leagues   league.Repository
	support   SyncSupport
}

func NewLeagueSyncService(
	provider BasketballProvider,
	countries country.Repository,
	leagues league.Repository,
	support SyncSupport,
) *LeagueSyncService {
	return &LeagueSyncService{
		provider:  provider,
		countries: countries,
		leagues:   leagues,
		support:   support.normalized(),
	}
}

func (s *LeagueSyncService) SyncLeagues(ctx context.Context, input LeagueSyncInput) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueSyncService.SyncLeagues")
	defer span.End()

	// Country and key filters only narrow what is stored, so every league
	// run shares one key.
	result, err := s.support.run(ctx, "leagues", []string{syncLockKey("leagues", "")}, func(ctx context.Context) (SyncResult, error) {
		return s.syncLeagues(ctx, input)
	})
	recordSpanError(span, err)
	return result, err
}

func (s *LeagueSyncService) syncLeagues(ctx context.Context, input LeagueSyncInput) (SyncResult, error) {
	wanted := make(map[string]struct{}, len(input.LeagueKeys))
	for _, key := range input.LeagueKeys {
		if key = strings.TrimSpace(key); key != "" {
			wanted[key] = struct{}{}
		}
	}

	items, err := s.provider.FetchLeagues(ctx, strings.TrimSpace(input.CountryKey))
	if err != nil {
		return SyncResult{}, fmt.Errorf("fetch leagues country=%s: %w", input.CountryKey, err)
	}

	rec := newRecorder(s.support.Observer, s.support.Logger)
	for _, item := range items {
		lg := league.League{
			Key:        strings.TrimSpace(item.Key),
			Name:       strings.TrimSpace(item.Name),
			CountryKey: strings.TrimSpace(item.CountryKey),
		}
		if len(wanted) > 0 {
			if _, ok := wanted[lg.Key]; !ok {
				continue
			}
		}
		if err := lg.Validate(); err != nil {
			s.support.Logger.WarnContext(ctx, "ignore malformed league", "key", item.Key, "error", err)
			continue
		}

		_, exists, err := s.countries.GetByKey(ctx, lg.CountryKey)
		if err != nil {
			return SyncResult{}, fmt.Errorf("get country=%s: %w", lg.CountryKey, err)
		}
		if !exists {
			rec.skipped(ctx, &ReferentialGapError{Entity: entityLeague, Key: lg.Key, Missing: "country", MissingKey: lg.CountryKey})
			continue
		}

		created, err := s.leagues.Upsert(ctx, lg)
		if err != nil {
			return SyncResult{}, fmt.Errorf("upsert league=%s: %w", lg.Key, err)
		}
		rec.upserted(entityLeague, lg.Key, created)
	}

	return rec.finish("synced %d leagues", rec.result.Synced), nil
}
