package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/hoops-sync/external/allsports"
	"github.com/riskibarqy/hoops-sync/internal/config"
	"github.com/riskibarqy/hoops-sync/internal/domain/country"
	"github.com/riskibarqy/hoops-sync/internal/domain/fixture"
	"github.com/riskibarqy/hoops-sync/internal/domain/league"
	"github.com/riskibarqy/hoops-sync/internal/domain/standing"
	"github.com/riskibarqy/hoops-sync/internal/domain/team"
	"github.com/riskibarqy/hoops-sync/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/hoops-sync/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/hoops-sync/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/hoops-sync/internal/metrics"
	basecache "github.com/riskibarqy/hoops-sync/internal/platform/cache"
	"github.com/riskibarqy/hoops-sync/internal/platform/id"
	"github.com/riskibarqy/hoops-sync/internal/platform/lock"
	"github.com/riskibarqy/hoops-sync/internal/platform/logging"
	"github.com/riskibarqy/hoops-sync/internal/platform/resilience"
	"github.com/riskibarqy/hoops-sync/internal/scheduler"
	"github.com/riskibarqy/hoops-sync/internal/usecase"
)

const lockKeyPrefix = "hoops-sync:lock:"

// App wires the provider client, storage and use cases for one process.
type App struct {
	Config  config.Config
	Logger  *logging.Logger
	Metrics *metrics.Recorder

	Countries    *usecase.CountrySyncService
	Leagues      *usecase.LeagueSyncService
	Teams        *usecase.TeamSyncService
	Standings    *usecase.StandingSyncService
	Fixtures     *usecase.FixtureIngestionService
	Orchestrator *usecase.SyncOrchestrator

	Stats        *usecase.StatsService
	StandingRead *usecase.StandingService
	LeagueRead   *usecase.LeagueService
	FixtureRead  *usecase.FixtureService
	H2H          *usecase.H2HService

	leagueRepo league.Repository
	closers    []func() error
}

type repositories struct {
	countries country.Repository
	leagues   league.Repository
	teams     team.Repository
	fixtures  fixture.Repository
	standings standing.Repository
	detail    usecase.FixtureRepositories
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	a := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.NewRecorder(),
	}

	repos, err := a.openRepositories(cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	locker, err := a.newLocker(ctx, cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	client := allsports.NewClient(allsports.ClientConfig{
		BaseURL:           cfg.AllSportsBaseURL,
		APIKey:            cfg.AllSportsAPIKey,
		Timezone:          cfg.AllSportsTimezone,
		Timeout:           cfg.AllSportsTimeout,
		MaxRetries:        cfg.AllSportsMaxRetries,
		RequestsPerMinute: cfg.AllSportsRequestsPerMinute,
		Logger:            logger.Named("allsports"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AllSportsCircuitEnabled,
			FailureThreshold: cfg.AllSportsCircuitFailureCount,
			OpenTimeout:      cfg.AllSportsCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AllSportsCircuitHalfOpenMaxReq,
		},
		Observer: a.Metrics,
	})

	support := usecase.SyncSupport{
		Locker:   locker,
		Observer: a.Metrics,
		Logger:   logger.Named("sync"),
	}

	a.Countries = usecase.NewCountrySyncService(client, repos.countries, support)
	a.Leagues = usecase.NewLeagueSyncService(client, repos.countries, repos.leagues, support)
	a.Teams = usecase.NewTeamSyncService(client, repos.leagues, repos.teams, support)
	a.Standings = usecase.NewStandingSyncService(client, repos.leagues, repos.teams, repos.standings, support)
	a.Fixtures = usecase.NewFixtureIngestionService(client, repos.detail, support)
	a.Orchestrator = usecase.NewSyncOrchestrator(
		a.Countries,
		a.Leagues,
		a.Teams,
		a.Standings,
		a.Fixtures,
		usecase.OrchestratorConfig{
			LeagueKeys:     cfg.SyncLeagueKeys,
			MaxConcurrency: cfg.SyncMaxConcurrency,
			PastDays:       cfg.SyncFullPastDays,
			FutureDays:     cfg.SyncFullFutureDays,
		},
		logger.Named("orchestrator"),
	)

	a.Stats = usecase.NewStatsService(repos.detail)
	a.StandingRead = usecase.NewStandingService(repos.standings)
	a.LeagueRead = usecase.NewLeagueService(repos.leagues, repos.teams, repos.fixtures)
	a.FixtureRead = usecase.NewFixtureService(repos.fixtures)
	h2hCache := basecache.NewStore(cfg.CacheTTLH2H)
	if err := a.Metrics.RegisterCache("h2h", h2hCache.Stats); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("register h2h cache metrics: %w", err)
	}
	a.H2H = usecase.NewH2HService(client, h2hCache, cfg.CacheTTLH2H)
	a.leagueRepo = repos.leagues

	logger.Info("app initialized",
		"storage", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
		"distributed_lock", cfg.RedisURL != "",
		"league_keys", cfg.SyncLeagueKeys,
	)

	return a, nil
}

// NewScheduler builds the cron worker over the app's sync services.
func (a *App) NewScheduler() *scheduler.Scheduler {
	return scheduler.New(scheduler.Config{
		FixturesSpec:       a.Config.ScheduleFixturesCron,
		StandingsSpec:      a.Config.ScheduleStandingsCron,
		LivescoreSpec:      a.Config.ScheduleLivescoreCron,
		PastDays:           a.Config.SchedulePastDays,
		FutureDays:         a.Config.ScheduleFutureDays,
		Location:           a.Config.ScheduleTimezone,
		FallbackLeagueKeys: a.Config.SyncLeagueKeys,
	}, a.Fixtures, a.Standings, a.leagueRepo, a.Logger.Named("scheduler"))
}

// Close releases storage and lock connections in reverse order of opening.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) openRepositories(cfg config.Config) (repositories, error) {
	ids := id.NewUUIDGenerator()

	var repos repositories
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return repositories{}, err
		}
		a.closers = append(a.closers, db.Close)

		store := postgres.NewStore(db, ids)
		repos = repositories{
			countries: store.Countries,
			leagues:   store.Leagues,
			teams:     store.Teams,
			fixtures:  store.Fixtures,
			standings: store.Standings,
			detail: usecase.FixtureRepositories{
				Players:     store.Players,
				Scores:      store.Scores,
				Statistics:  store.Statistics,
				Lineups:     store.Lineups,
				PlayerStats: store.PlayerStats,
			},
		}
	default:
		store := memory.NewStore(ids)
		repos = repositories{
			countries: store.Countries,
			leagues:   store.Leagues,
			teams:     store.Teams,
			fixtures:  store.Fixtures,
			standings: store.Standings,
			detail: usecase.FixtureRepositories{
				Players:     store.Players,
				Scores:      store.Scores,
				Statistics:  store.Statistics,
				Lineups:     store.Lineups,
				PlayerStats: store.PlayerStats,
			},
		}
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTLFixtures)
		if err := a.Metrics.RegisterCache("repository", store.Stats); err != nil {
			return repositories{}, fmt.Errorf("register repository cache metrics: %w", err)
		}
		repos.countries = cache.NewCountryRepository(repos.countries, store, cfg.CacheTTLCountries)
		repos.leagues = cache.NewLeagueRepository(repos.leagues, store, cfg.CacheTTLLeagues)
		repos.teams = cache.NewTeamRepository(repos.teams, store, cfg.CacheTTLTeams)
		repos.fixtures = cache.NewFixtureRepository(repos.fixtures, store, cfg.CacheTTLFixtures)
		repos.standings = cache.NewStandingRepository(repos.standings, store, cfg.CacheTTLStandings)
	}

	repos.detail.Leagues = repos.leagues
	repos.detail.Teams = repos.teams
	repos.detail.Fixtures = repos.fixtures

	return repos, nil
}

func (a *App) newLocker(ctx context.Context, cfg config.Config) (lock.Locker, error) {
	if cfg.RedisURL == "" {
		return lock.NewKeyedMutex(), nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	a.closers = append(a.closers, client.Close)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return lock.NewRedisLease(client, lockKeyPrefix, cfg.LockTTL), nil
}
