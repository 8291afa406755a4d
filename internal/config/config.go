package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/hoops-sync/internal/platform/logging"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config stores runtime configuration for the sync engine.
type Config struct {
	AppEnv                         string
	ServiceName                    string
	ServiceVersion                 string
	LogLevel                       logging.Level
	LogFormat                      logging.Format
	StorageDriver                  string
	DBURL                          string
	DBDisablePreparedBinary        bool
	AllSportsBaseURL               string
	AllSportsAPIKey                string
	AllSportsTimezone              string
	AllSportsTimeout               time.Duration
	AllSportsMaxRetries            int
	AllSportsRequestsPerMinute     int
	AllSportsCircuitEnabled        bool
	AllSportsCircuitFailureCount   int
	AllSportsCircuitOpenTimeout    time.Duration
	AllSportsCircuitHalfOpenMaxReq int
	SyncLeagueKeys                 []string
	SyncMaxConcurrency             int
	SyncFullPastDays               int
	SyncFullFutureDays             int
	ScheduleFixturesCron           string
	ScheduleStandingsCron          string
	ScheduleLivescoreCron          string
	SchedulePastDays               int
	ScheduleFutureDays             int
	ScheduleTimezone               *time.Location
	CacheEnabled                   bool
	CacheTTLCountries              time.Duration
	CacheTTLLeagues                time.Duration
	CacheTTLTeams                  time.Duration
	CacheTTLFixtures               time.Duration
	CacheTTLStandings              time.Duration
	CacheTTLH2H                    time.Duration
	RedisURL                       string
	LockTTL                        time.Duration
	MetricsAddr                    string
	PprofEnabled                   bool
	PprofAddr                      string
	UptraceEnabled                 bool
	UptraceDSN                     string
	PyroscopeEnabled               bool
	PyroscopeServerAddress         string
	PyroscopeAppName               string
	PyroscopeAuthToken             string
	PyroscopeBasicAuthUser         string
	PyroscopeBasicAuthPassword     string
	PyroscopeUploadRate            time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logFormatDefault := string(logging.FormatConsole)
	if appEnv != EnvDev {
		logFormatDefault = string(logging.FormatJSON)
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	storageDefault := StorageMemory
	if dbURL != "" {
		storageDefault = StoragePostgres
	}
	storageDriver, err := parseStorageDriver(getEnv("STORAGE_DRIVER", storageDefault))
	if err != nil {
		return Config{}, err
	}
	if storageDriver == StoragePostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when STORAGE_DRIVER=postgres")
	}
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	apiKey := strings.TrimSpace(getEnv("ALLSPORTS_API_KEY", getEnv("BASKETBALL_API_KEY", "")))
	baseURL := strings.TrimSpace(getEnv("ALLSPORTS_BASE_URL", getEnv("BASKETBALL_API_URL", "https://apiv2.allsportsapi.com/basketball/")))
	allSportsTimeout, err := time.ParseDuration(getEnv("ALLSPORTS_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ALLSPORTS_TIMEOUT: %w", err)
	}
	if allSportsTimeout <= 0 {
		return Config{}, fmt.Errorf("ALLSPORTS_TIMEOUT must be > 0")
	}
	allSportsMaxRetries, err := getEnvAsInt("ALLSPORTS_MAX_RETRIES", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse ALLSPORTS_MAX_RETRIES: %w", err)
	}
	if allSportsMaxRetries < 0 {
		return Config{}, fmt.Errorf("ALLSPORTS_MAX_RETRIES must be >= 0")
	}
	allSportsRPM, err := getEnvAsInt("ALLSPORTS_REQUESTS_PER_MINUTE", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse ALLSPORTS_REQUESTS_PER_MINUTE: %w", err)
	}
	if allSportsRPM < 0 {
		return Config{}, fmt.Errorf("ALLSPORTS_REQUESTS_PER_MINUTE must be >= 0")
	}
	allSportsCircuitEnabled, err := strconv.ParseBool(getEnv("ALLSPORTS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ALLSPORTS_CIRCUIT_ENABLED: %w", err)
	}
	allSportsCircuitFailureCount, err := getEnvAsInt("ALLSPORTS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse ALLSPORTS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if allSportsCircuitFailureCount <= 0 {
		return Config{}, fmt.Errorf("ALLSPORTS_CIRCUIT_FAILURE_COUNT must be > 0")
	}
	allSportsCircuitOpenTimeout, err := time.ParseDuration(getEnv("ALLSPORTS_CIRCUIT_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ALLSPORTS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if allSportsCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("ALLSPORTS_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	allSportsCircuitHalfOpenMaxReq, err := getEnvAsInt("ALLSPORTS_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse ALLSPORTS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if allSportsCircuitHalfOpenMaxReq <= 0 {
		return Config{}, fmt.Errorf("ALLSPORTS_CIRCUIT_HALF_OPEN_MAX_REQ must be > 0")
	}

	syncLeagueKeys := splitCSV(getEnv("SYNC_LEAGUE_KEYS", "757,756"))
	if len(syncLeagueKeys) == 0 {
		return Config{}, fmt.Errorf("SYNC_LEAGUE_KEYS must not be empty")
	}
	syncMaxConcurrency, err := getEnvAsInt("SYNC_MAX_CONCURRENCY", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse SYNC_MAX_CONCURRENCY: %w", err)
	}
	if syncMaxConcurrency <= 0 {
		return Config{}, fmt.Errorf("SYNC_MAX_CONCURRENCY must be > 0")
	}
	syncFullPastDays, err := getEnvAsInt("SYNC_FULL_PAST_DAYS", 30)
	if err != nil {
		return Config{}, fmt.Errorf("parse SYNC_FULL_PAST_DAYS: %w", err)
	}
	syncFullFutureDays, err := getEnvAsInt("SYNC_FULL_FUTURE_DAYS", 7)
	if err != nil {
		return Config{}, fmt.Errorf("parse SYNC_FULL_FUTURE_DAYS: %w", err)
	}
	if syncFullPastDays < 0 || syncFullFutureDays < 0 {
		return Config{}, fmt.Errorf("SYNC_FULL_PAST_DAYS and SYNC_FULL_FUTURE_DAYS must be >= 0")
	}

	schedulePastDays, err := getEnvAsInt("SCHEDULE_PAST_DAYS", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCHEDULE_PAST_DAYS: %w", err)
	}
	if schedulePastDays <= 0 {
		return Config{}, fmt.Errorf("SCHEDULE_PAST_DAYS must be > 0")
	}
	scheduleFutureDays, err := getEnvAsInt("SCHEDULE_FUTURE_DAYS", 7)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCHEDULE_FUTURE_DAYS: %w", err)
	}
	if scheduleFutureDays <= 0 {
		return Config{}, fmt.Errorf("SCHEDULE_FUTURE_DAYS must be > 0")
	}
	scheduleTimezone, err := time.LoadLocation(getEnv("SCHEDULE_TIMEZONE", "UTC"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCHEDULE_TIMEZONE: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	var ttlCountries, ttlLeagues, ttlTeams, ttlFixtures, ttlStandings, ttlH2H time.Duration
	for key, ttl := range map[string]struct {
		fallback string
		dst      *time.Duration
	}{
		"CACHE_TTL_COUNTRIES": {"24h", &ttlCountries},
		"CACHE_TTL_LEAGUES":   {"24h", &ttlLeagues},
		"CACHE_TTL_TEAMS":     {"12h", &ttlTeams},
		"CACHE_TTL_FIXTURES":  {"5m", &ttlFixtures},
		"CACHE_TTL_STANDINGS": {"30m", &ttlStandings},
		"CACHE_TTL_H2H":       {"30m", &ttlH2H},
	} {
		value, err := time.ParseDuration(getEnv(key, ttl.fallback))
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", key, err)
		}
		if value <= 0 {
			return Config{}, fmt.Errorf("%s must be > 0", key)
		}
		*ttl.dst = value
	}

	lockTTL, err := time.ParseDuration(getEnv("LOCK_TTL", "10m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LOCK_TTL: %w", err)
	}
	if lockTTL <= 0 {
		return Config{}, fmt.Errorf("LOCK_TTL must be > 0")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	serviceName := getEnv("APP_SERVICE_NAME", "hoops-sync")
	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                         appEnv,
		ServiceName:                    serviceName,
		ServiceVersion:                 getEnv("APP_SERVICE_VERSION", "dev"),
		LogLevel:                       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		LogFormat:                      logging.Format(getEnv("APP_LOG_FORMAT", logFormatDefault)),
		StorageDriver:                  storageDriver,
		DBURL:                          dbURL,
		DBDisablePreparedBinary:        dbDisablePreparedBinary,
		AllSportsBaseURL:               baseURL,
		AllSportsAPIKey:                apiKey,
		AllSportsTimezone:              strings.TrimSpace(getEnv("ALLSPORTS_TIMEZONE", "")),
		AllSportsTimeout:               allSportsTimeout,
		AllSportsMaxRetries:            allSportsMaxRetries,
		AllSportsRequestsPerMinute:     allSportsRPM,
		AllSportsCircuitEnabled:        allSportsCircuitEnabled,
		AllSportsCircuitFailureCount:   allSportsCircuitFailureCount,
		AllSportsCircuitOpenTimeout:    allSportsCircuitOpenTimeout,
		AllSportsCircuitHalfOpenMaxReq: allSportsCircuitHalfOpenMaxReq,
		SyncLeagueKeys:                 syncLeagueKeys,
		SyncMaxConcurrency:             syncMaxConcurrency,
		SyncFullPastDays:               syncFullPastDays,
		SyncFullFutureDays:             syncFullFutureDays,
		ScheduleFixturesCron:           strings.TrimSpace(getEnv("SCHEDULE_FIXTURES_CRON", "0 * * * *")),
		ScheduleStandingsCron:          strings.TrimSpace(getEnv("SCHEDULE_STANDINGS_CRON", "0 0 * * *")),
		ScheduleLivescoreCron:          strings.TrimSpace(os.Getenv("SCHEDULE_LIVESCORE_CRON")),
		SchedulePastDays:               schedulePastDays,
		ScheduleFutureDays:             scheduleFutureDays,
		ScheduleTimezone:               scheduleTimezone,
		CacheEnabled:                   cacheEnabled,
		CacheTTLCountries:              ttlCountries,
		CacheTTLLeagues:                ttlLeagues,
		CacheTTLTeams:                  ttlTeams,
		CacheTTLFixtures:               ttlFixtures,
		CacheTTLStandings:              ttlStandings,
		CacheTTLH2H:                    ttlH2H,
		RedisURL:                       strings.TrimSpace(getEnv("REDIS_URL", "")),
		LockTTL:                        lockTTL,
		MetricsAddr:                    strings.TrimSpace(getEnv("METRICS_ADDR", ":9090")),
		PprofEnabled:                   pprofEnabled,
		PprofAddr:                      strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
		UptraceEnabled:                 uptraceEnabled,
		UptraceDSN:                     uptraceDSN,
		PyroscopeEnabled:               pyroscopeEnabled,
		PyroscopeServerAddress:         pyroscopeServerAddress,
		PyroscopeAppName:               getEnv("PYROSCOPE_APP_NAME", serviceName),
		PyroscopeAuthToken:             getEnv("PYROSCOPE_AUTH_TOKEN", ""),
		PyroscopeBasicAuthUser:         getEnv("PYROSCOPE_BASIC_AUTH_USER", ""),
		PyroscopeBasicAuthPassword:     getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""),
		PyroscopeUploadRate:            pyroscopeUploadRate,
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseStorageDriver(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case StorageMemory, StoragePostgres:
		return value, nil
	default:
		return "", fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s", v, StorageMemory, StoragePostgres)
	}
}
