package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/hoops-sync/internal/domain/country"
	"github.com/riskibarqy/hoops-sync/internal/domain/league"
)

const (
	entityCountry = "country"
	entityLeague  = "league"
	entityTeam    = "team"
)

const lockScopeAll = "all"

func syncLockKey(kind, scope string) string {
	scope = strings.TrimSpace(scope)
	if scope == "" {
		scope = lockScopeAll
	}
	return kind + ":" + scope
}

// leagueScopedLockKeys returns the keys a run of kind must hold. A run for
// one league holds that league's key. A run without a league touches every
// league, so it holds the "all" key plus the key of each stored league and
// cannot overlap any per-league run.
func leagueScopedLockKeys(ctx context.Context, leagues league.Repository, kind, leagueKey string) ([]string, error) {
	leagueKey = strings.TrimSpace(leagueKey)
	if leagueKey != "" {
		return []string{syncLockKey(kind, leagueKey)}, nil
	}

	keys := []string{syncLockKey(kind, lockScopeAll)}
	if leagues == nil {
		return keys, nil
	}
	items, err := leagues.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues for %s lock: %w", kind, err)
	}
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		key := strings.TrimSpace(item.Key)
		if key == "" || key == lockScopeAll {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, syncLockKey(kind, key))
	}
	sort.Strings(keys[1:])
	return keys, nil
}

type CountrySyncService struct {
	provider  BasketballProvider
	countries country.Repository
	support   SyncSupport
}

func NewCountrySyncService(provider BasketballProvider, countries country.Repository, support SyncSupport) *CountrySyncService {
	return &CountrySyncService{
		provider:  provider,
		countries: countries,
		support:   support.normalized(),
	}
}

func (s *CountrySyncService) SyncCountries(ctx context.Context) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CountrySyncService.SyncCountries")
	defer span.End()

	result, err := s.support.run(ctx, "countries", []string{syncLockKey("countries", "")}, s.syncCountries)
	recordSpanError(span, err)
	return result, err
}

func (s *CountrySyncService) syncCountries(ctx context.Context) (SyncResult, error) {
	items, err := s.provider.FetchCountries(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("fetch countries: %w", err)
	}

	rec := newRecorder(s.support.Observer, s.support.Logger)
	for _, item := range items {
		c := country.Country{Key: strings.TrimSpace(item.Key), Name: strings.TrimSpace(item.Name)}
		if err := c.Validate(); err != nil {
			s.support.Logger.WarnContext(ctx, "ignore malformed country", "key", item.Key, "error", err)
			continue
		}
		created, err := s.countries.Upsert(ctx, c)
		if err != nil {
			return SyncResult{}, fmt.Errorf("upsert country=%s: %w", c.Key, err)
		}
		rec.upserted(entityCountry, c.Key, created)
	}

	return rec.finish("synced %d countries", rec.result.Synced), nil
}
