package app

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/hoops-sync/internal/config"
	"github.com/riskibarqy/hoops-sync/internal/platform/logging"
)

func memoryConfig(cacheEnabled bool) config.Config {
	return config.Config{
		AppEnv:                       config.EnvDev,
		StorageDriver:                config.StorageMemory,
		AllSportsTimeout:             time.Second,
		AllSportsCircuitEnabled:      true,
		AllSportsCircuitFailureCount: 3,
		AllSportsCircuitOpenTimeout:  time.Second,
		SyncLeagueKeys:               []string{"757"},
		SyncMaxConcurrency:           1,
		ScheduleFixturesCron:         "0 * * * *",
		ScheduleStandingsCron:        "0 0 * * *",
		SchedulePastDays:             2,
		ScheduleFutureDays:           7,
		ScheduleTimezone:             time.UTC,
		CacheEnabled:                 cacheEnabled,
		CacheTTLCountries:            time.Minute,
		CacheTTLLeagues:              time.Minute,
		CacheTTLTeams:                time.Minute,
		CacheTTLFixtures:             time.Minute,
		CacheTTLStandings:            time.Minute,
		CacheTTLH2H:                  time.Minute,
	}
}

func TestNew_MemoryStorage(t *testing.T) {
	for _, cacheEnabled := range []bool{false, true} {
		a, err := New(context.Background(), memoryConfig(cacheEnabled), logging.NewNop())
		if err != nil {
			t.Fatalf("new app (cache=%v): %v", cacheEnabled, err)
		}
		if a.Orchestrator == nil || a.Fixtures == nil || a.Stats == nil || a.H2H == nil {
			t.Fatalf("expected services to be wired")
		}

		standings, err := a.StandingRead.ListByLeague(context.Background(), "757", "")
		if err != nil {
			t.Fatalf("list standings: %v", err)
		}
		if len(standings) != 0 {
			t.Fatalf("expected empty store, got %d standings", len(standings))
		}

		sched := a.NewScheduler()
		if sched == nil {
			t.Fatalf("expected scheduler")
		}
		if err := a.Close(); err != nil {
			t.Fatalf("close app: %v", err)
		}
	}
}

func TestNew_InvalidRedisURL(t *testing.T) {
	cfg := memoryConfig(false)
	cfg.RedisURL = "not a redis url"

	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for invalid REDIS_URL")
	}
}
