package cache

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/hoops-sync/internal/domain/country"
	"github.com/riskibarqy/hoops-sync/internal/domain/fixture"
	"github.com/riskibarqy/hoops-sync/internal/domain/league"
	"github.com/riskibarqy/hoops-sync/internal/domain/standing"
	"github.com/riskibarqy/hoops-sync/internal/domain/team"
	basecache "github.com/riskibarqy/hoops-sync/internal/platform/cache"
)

// TTLs sets how long each read family stays cached.
type TTLs struct {
	Countries time.Duration
	Leagues   time.Duration
	Teams     time.Duration
	Fixtures  time.Duration
	Standings time.Duration
}

func DefaultTTLs() TTLs {
	return TTLs{
		Countries: 24 * time.Hour,
		Leagues:   24 * time.Hour,
		Teams:     12 * time.Hour,
		Fixtures:  5 * time.Minute,
		Standings: 30 * time.Minute,
	}
}

// loadSlice caches a slice result and hands every caller its own copy.
func loadSlice[T any](ctx context.Context, store *basecache.Store, key string, ttl time.Duration, loader func(context.Context) ([]T, error)) ([]T, error) {
	v, err := store.GetOrLoadTTL(ctx, key, ttl, func(ctx context.Context) (any, error) {
		items, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return append([]T(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]T)
	return append([]T(nil), items...), nil
}

// loadFound caches hits only. A miss is answered by the next repository every
// time so a freshly synced parent is visible right away.
func loadFound[T any](ctx context.Context, store *basecache.Store, key string, ttl time.Duration, loader func(context.Context) (T, bool, error)) (T, bool, error) {
	if v, ok := store.Get(ctx, key); ok {
		if item, ok := v.(T); ok {
			return item, true, nil
		}
	}

	item, exists, err := loader(ctx)
	if err != nil || !exists {
		return item, exists, err
	}
	store.SetWithTTL(ctx, key, item, ttl)
	return item, true, nil
}

func sortedKeyList(keys []string) string {
	ids := append([]string(nil), keys...)
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

type CountryRepository struct {
	next  country.Repository
	cache *basecache.Store
	ttl   time.Duration
}

func NewCountryRepository(next country.Repository, cache *basecache.Store, ttl time.Duration) *CountryRepository {
	return &CountryRepository{next: next, cache: cache, ttl: ttl}
}

func (r *CountryRepository) Upsert(ctx context.Context, item country.Country) (bool, error) {
	created, err := r.next.Upsert(ctx, item)
	if err != nil {
		return false, err
	}
	r.cache.DeletePrefix(ctx, "country:")
	return created, nil
}

func (r *CountryRepository) GetByKey(ctx context.Context, key string) (country.Country, bool, error) {
	return loadFound(ctx, r.cache, "country:key:"+key, r.ttl, func(ctx context.Context) (country.Country, bool, error) {
		return r.next.GetByKey(ctx, key)
	})
}

func (r *CountryRepository) List(ctx context.Context) ([]country.Country, error) {
	return loadSlice(ctx, r.cache, "country:list", r.ttl, r.next.List)
}

type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
	ttl   time.Duration
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store, ttl time.Duration) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache, ttl: ttl}
}

func (r *LeagueRepository) Upsert(ctx context.Context, item league.League) (bool, error) {
	created, err := r.next.Upsert(ctx, item)
	if err != nil {
		return false, err
	}
	r.cache.DeletePrefix(ctx, "league:")
	return created, nil
}

func (r *LeagueRepository) GetByKey(ctx context.Context, key string) (league.League, bool, error) {
	return loadFound(ctx, r.cache, "league:key:"+key, r.ttl, func(ctx context.Context) (league.League, bool, error) {
		return r.next.GetByKey(ctx, key)
	})
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	return loadSlice(ctx, r.cache, "league:list", r.ttl, r.next.List)
}

func (r *LeagueRepository) ListByCountry(ctx context.Context, countryKey string) ([]league.League, error) {
	return loadSlice(ctx, r.cache, "league:country:"+countryKey, r.ttl, func(ctx context.Context) ([]league.League, error) {
		return r.next.ListByCountry(ctx, countryKey)
	})
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
	ttl   time.Duration
}

func NewTeamRepository(next team.Repository, cache *basecache.Store, ttl time.Duration) *TeamRepository {
	return &TeamRepository{next: next, cache: cache, ttl: ttl}
}

func (r *TeamRepository) Upsert(ctx context.Context, item team.Team) (bool, error) {
	created, err := r.next.Upsert(ctx, item)
	if err != nil {
		return false, err
	}
	r.cache.DeletePrefix(ctx, "team:")
	return created, nil
}

func (r *TeamRepository) GetByKey(ctx context.Context, key string) (team.Team, bool, error) {
	return loadFound(ctx, r.cache, "team:key:"+key, r.ttl, func(ctx context.Context) (team.Team, bool, error) {
		return r.next.GetByKey(ctx, key)
	})
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueKey string) ([]team.Team, error) {
	return loadSlice(ctx, r.cache, "team:league:"+leagueKey, r.ttl, func(ctx context.Context) ([]team.Team, error) {
		return r.next.ListByLeague(ctx, leagueKey)
	})
}

func (r *TeamRepository) ListByKeys(ctx context.Context, keys []string) ([]team.Team, error) {
	return loadSlice(ctx, r.cache, "team:keys:"+sortedKeyList(keys), r.ttl, func(ctx context.Context) ([]team.Team, error) {
		return r.next.ListByKeys(ctx, keys)
	})
}

type FixtureRepository struct {
	next  fixture.Repository
	cache *basecache.Store
	ttl   time.Duration
}

func NewFixtureRepository(next fixture.Repository, cache *basecache.Store, ttl time.Duration) *FixtureRepository {
	return &FixtureRepository{next: next, cache: cache, ttl: ttl}
}

func (r *FixtureRepository) Upsert(ctx context.Context, item fixture.Fixture) (fixture.Fixture, bool, error) {
	stored, created, err := r.next.Upsert(ctx, item)
	if err != nil {
		return fixture.Fixture{}, false, err
	}
	r.cache.DeletePrefix(ctx, "fixture:")
	return stored, created, nil
}

func (r *FixtureRepository) GetByID(ctx context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	return loadFound(ctx, r.cache, "fixture:id:"+fixtureID, r.ttl, func(ctx context.Context) (fixture.Fixture, bool, error) {
		return r.next.GetByID(ctx, fixtureID)
	})
}

func (r *FixtureRepository) GetByEventKey(ctx context.Context, eventKey string) (fixture.Fixture, bool, error) {
	return loadFound(ctx, r.cache, "fixture:event:"+eventKey, r.ttl, func(ctx context.Context) (fixture.Fixture, bool, error) {
		return r.next.GetByEventKey(ctx, eventKey)
	})
}

func (r *FixtureRepository) List(ctx context.Context, filter fixture.Filter) ([]fixture.Fixture, error) {
	return loadSlice(ctx, r.cache, "fixture:list:"+filterKey(filter), r.ttl, func(ctx context.Context) ([]fixture.Fixture, error) {
		return r.next.List(ctx, filter)
	})
}

func (r *FixtureRepository) Count(ctx context.Context, filter fixture.Filter) (int, error) {
	filter.Limit, filter.Offset = 0, 0
	v, err := r.cache.GetOrLoadTTL(ctx, "fixture:count:"+filterKey(filter), r.ttl, func(ctx context.Context) (any, error) {
		return r.next.Count(ctx, filter)
	})
	if err != nil {
		return 0, err
	}
	total, _ := v.(int)
	return total, nil
}

func (r *FixtureRepository) LeagueSummary(ctx context.Context, leagueKey string) ([]string, string, error) {
	v, err := r.cache.GetOrLoadTTL(ctx, "fixture:summary:"+leagueKey, r.ttl, func(ctx context.Context) (any, error) {
		keys, season, err := r.next.LeagueSummary(ctx, leagueKey)
		if err != nil {
			return nil, err
		}
		return cachedLeagueSummary{teamKeys: keys, latestSeason: season}, nil
	})
	if err != nil {
		return nil, "", err
	}

	cached, _ := v.(cachedLeagueSummary)
	return append([]string(nil), cached.teamKeys...), cached.latestSeason, nil
}

type cachedLeagueSummary struct {
	teamKeys     []string
	latestSeason string
}

func filterKey(f fixture.Filter) string {
	return fmt.Sprintf("l=%s|t=%s|s=%s|f=%s|to=%s|n=%d|o=%d", f.LeagueKey, f.TeamKey, f.Season, f.DateFrom, f.DateTo, f.Limit, f.Offset)
}

type StandingRepository struct {
	next  standing.Repository
	cache *basecache.Store
	ttl   time.Duration
}

func NewStandingRepository(next standing.Repository, cache *basecache.Store, ttl time.Duration) *StandingRepository {
	return &StandingRepository{next: next, cache: cache, ttl: ttl}
}

func (r *StandingRepository) Upsert(ctx context.Context, item standing.Standing) (bool, error) {
	created, err := r.next.Upsert(ctx, item)
	if err != nil {
		return false, err
	}
	r.cache.DeletePrefix(ctx, "standing:"+item.LeagueKey+":")
	return created, nil
}

func (r *StandingRepository) ListByLeague(ctx context.Context, leagueKey, season string) ([]standing.Standing, error) {
	return loadSlice(ctx, r.cache, "standing:"+leagueKey+":"+season, r.ttl, func(ctx context.Context) ([]standing.Standing, error) {
		return r.next.ListByLeague(ctx, leagueKey, season)
	})
}
