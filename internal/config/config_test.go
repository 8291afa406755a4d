package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("DB_URL", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("SYNC_LEAGUE_KEYS", "")
	t.Setenv("SCHEDULE_LIVESCORE_CRON", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Fatalf("expected memory storage without DB_URL, got %q", cfg.StorageDriver)
	}
	if len(cfg.SyncLeagueKeys) != 2 || cfg.SyncLeagueKeys[0] != "757" || cfg.SyncLeagueKeys[1] != "756" {
		t.Fatalf("unexpected default league keys: %+v", cfg.SyncLeagueKeys)
	}
	if cfg.SyncMaxConcurrency != 1 {
		t.Fatalf("expected sequential sync by default, got %d", cfg.SyncMaxConcurrency)
	}
	if cfg.AllSportsTimeout != 20*time.Second {
		t.Fatalf("unexpected AllSportsTimeout: %s", cfg.AllSportsTimeout)
	}
	if cfg.AllSportsMaxRetries != 0 {
		t.Fatalf("expected no retries by default, got %d", cfg.AllSportsMaxRetries)
	}
	if cfg.ScheduleFixturesCron != "0 * * * *" || cfg.ScheduleStandingsCron != "0 0 * * *" {
		t.Fatalf("unexpected cron defaults: %q %q", cfg.ScheduleFixturesCron, cfg.ScheduleStandingsCron)
	}
	if cfg.ScheduleLivescoreCron != "" {
		t.Fatalf("expected livescore job disabled by default")
	}
	if cfg.SchedulePastDays != 2 || cfg.ScheduleFutureDays != 7 {
		t.Fatalf("unexpected schedule window: -%d/+%d", cfg.SchedulePastDays, cfg.ScheduleFutureDays)
	}
	if cfg.CacheTTLFixtures != 5*time.Minute {
		t.Fatalf("unexpected CacheTTLFixtures: %s", cfg.CacheTTLFixtures)
	}
	if cfg.LogFormat != "console" {
		t.Fatalf("expected console logs in dev, got %q", cfg.LogFormat)
	}
}

func TestLoad_StorageDriver(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("db url selects postgres", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "")
		t.Setenv("DB_URL", "postgres://localhost:5432/hoops?sslmode=disable")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageDriver != StoragePostgres {
			t.Fatalf("expected postgres, got %q", cfg.StorageDriver)
		}
	})

	t.Run("postgres requires db url", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "postgres")
		t.Setenv("DB_URL", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when STORAGE_DRIVER=postgres without DB_URL")
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "mysql")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown STORAGE_DRIVER")
		}
	})
}

func TestLoad_APIKeyFallback(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("ALLSPORTS_API_KEY", "")
	t.Setenv("BASKETBALL_API_KEY", "legacy-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AllSportsAPIKey != "legacy-key" {
		t.Fatalf("expected BASKETBALL_API_KEY fallback, got %q", cfg.AllSportsAPIKey)
	}

	t.Setenv("ALLSPORTS_API_KEY", "primary-key")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AllSportsAPIKey != "primary-key" {
		t.Fatalf("expected ALLSPORTS_API_KEY to win, got %q", cfg.AllSportsAPIKey)
	}
}

func TestLoad_SyncLeagueKeysParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SYNC_LEAGUE_KEYS", " 766, 757 ,,766 ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.SyncLeagueKeys) != 2 || cfg.SyncLeagueKeys[0] != "766" || cfg.SyncLeagueKeys[1] != "757" {
		t.Fatalf("unexpected league keys: %+v", cfg.SyncLeagueKeys)
	}
}

func TestLoad_RejectsInvalidNumbers(t *testing.T) {
	cases := map[string]string{
		"SYNC_MAX_CONCURRENCY":            "0",
		"ALLSPORTS_TIMEOUT":               "soon",
		"ALLSPORTS_MAX_RETRIES":           "-1",
		"ALLSPORTS_CIRCUIT_FAILURE_COUNT": "0",
		"SCHEDULE_PAST_DAYS":              "-2",
		"SCHEDULE_TIMEZONE":               "Mars/Olympus",
		"CACHE_TTL_STANDINGS":             "0s",
		"LOCK_TTL":                        "forever",
		"CACHE_ENABLED":                   "maybe",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "foo=bar, uptrace-dsn='https://token@api.uptrace.dev?grpc=4317'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("APP_SERVICE_NAME", "hoops-sync-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "hoops-sync-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
	if cfg.LogFormat != "json" {
		t.Fatalf("expected json logs outside dev, got %q", cfg.LogFormat)
	}
}

func TestLoad_DBDisablePreparedBinaryResultParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("default true", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.DBDisablePreparedBinary {
			t.Fatalf("expected DBDisablePreparedBinary=true by default")
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "not-bool")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid DB_DISABLE_PREPARED_BINARY_RESULT")
		}
	})
}
