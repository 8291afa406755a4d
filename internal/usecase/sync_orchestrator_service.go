package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/hoops-sync/internal/platform/logging"
)

var DefaultLeagueKeys = []string{"757", "756"}

const (
	defaultFullSyncPastDays   = 30
	defaultFullSyncFutureDays = 7
)

type SyncAllInput struct {
	// LeagueKeys defaults to the orchestrator's configured keys.
	LeagueKeys []string
	// From and To default to the configured full-sync window.
	From string
	To   string
}

type SyncAllResult struct {
	Countries int           `json:"countries"`
	Leagues   int           `json:"leagues"`
	Teams     int           `json:"teams"`
	Standings int           `json:"standings"`
	Fixtures  int           `json:"fixtures"`
	Errors    []string      `json:"errors"`
	Duration  time.Duration `json:"duration"`
}

type OrchestratorConfig struct {
	LeagueKeys     []string
	MaxConcurrency int
	PastDays       int
	FutureDays     int
}

type SyncOrchestrator struct {
	countries *CountrySyncService
	leagues   *LeagueSyncService
	teams     *TeamSyncService
	standings *StandingSyncService
	fixtures  *FixtureIngestionService
	cfg       OrchestratorConfig
	logger    *logging.Logger
	now       func() time.Time
}

func NewSyncOrchestrator(
	countries *CountrySyncService,
	leagues *LeagueSyncService,
	teams *TeamSyncService,
	standings *StandingSyncService,
	fixtures *FixtureIngestionService,
	cfg OrchestratorConfig,
	logger *logging.Logger,
) *SyncOrchestrator {
	if len(cfg.LeagueKeys) == 0 {
		cfg.LeagueKeys = DefaultLeagueKeys
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = 1
	}
	if cfg.PastDays <= 0 {
		cfg.PastDays = defaultFullSyncPastDays
	}
	if cfg.FutureDays <= 0 {
		cfg.FutureDays = defaultFullSyncFutureDays
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &SyncOrchestrator{
		countries: countries,
		leagues:   leagues,
		teams:     teams,
		standings: standings,
		fixtures:  fixtures,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// SyncAll refreshes countries once, then each league's teams, standings and
// fixtures in that order. Failures are collected per league in Errors and
// never abort other leagues.
func (s *SyncOrchestrator) SyncAll(ctx context.Context, input SyncAllInput) (SyncAllResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncOrchestrator.SyncAll")
	defer span.End()

	start := s.now()
	leagueKeys := normalizeLeagueKeys(input.LeagueKeys)
	if len(leagueKeys) == 0 {
		leagueKeys = normalizeLeagueKeys(s.cfg.LeagueKeys)
	}
	from, to := strings.TrimSpace(input.From), strings.TrimSpace(input.To)
	if from == "" || to == "" {
		defFrom, defTo := DateWindow(start, s.cfg.PastDays, s.cfg.FutureDays)
		if from == "" {
			from = defFrom
		}
		if to == "" {
			to = defTo
		}
	}
	if err := validateDateWindow(from, to); err != nil {
		return SyncAllResult{}, err
	}

	result := SyncAllResult{Errors: []string{}}
	var mu sync.Mutex
	addError := func(league, step string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if league == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("step=%s: %v", step, err))
			return
		}
		result.Errors = append(result.Errors, fmt.Sprintf("league=%s step=%s: %v", league, step, err))
	}

	countries, err := s.countries.SyncCountries(ctx)
	if err != nil {
		addError("", "countries", err)
	}
	result.Countries = countries.Synced

	leagues, err := s.leagues.SyncLeagues(ctx, LeagueSyncInput{LeagueKeys: leagueKeys})
	if err != nil {
		addError("", "leagues", err)
	}
	result.Leagues = leagues.Synced

	workerCount := s.cfg.MaxConcurrency
	if workerCount > len(leagueKeys) {
		workerCount = len(leagueKeys)
	}
	if workerCount < 1 {
		workerCount = 1
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return SyncAllResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, leagueKey := range leagueKeys {
		leagueKey := leagueKey
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			leagueCtx := logging.ContextWith(ctx, "league_key", leagueKey)
			counts, step, err := s.syncLeague(leagueCtx, leagueKey, from, to)
			mu.Lock()
			result.Teams += counts.teams
			result.Standings += counts.standings
			result.Fixtures += counts.fixtures
			mu.Unlock()
			if err != nil {
				s.logger.WarnContext(leagueCtx, "league sync failed", "step", step, "error", err)
				addError(leagueKey, step, err)
			}
		}); err != nil {
			workers.Done()
			addError(leagueKey, "submit", err)
		}
	}
	workers.Wait()

	sort.Strings(result.Errors)
	result.Duration = s.now().Sub(start)
	s.logger.InfoContext(ctx, "full sync finished",
		"leagues", len(leagueKeys),
		"teams", result.Teams,
		"standings", result.Standings,
		"fixtures", result.Fixtures,
		"errors", len(result.Errors),
		"duration", result.Duration.String(),
	)
	return result, nil
}

type leagueCounts struct {
	teams     int
	standings int
	fixtures  int
}

// syncLeague stops at the first failing step since later steps depend on it.
func (s *SyncOrchestrator) syncLeague(ctx context.Context, leagueKey, from, to string) (leagueCounts, string, error) {
	var counts leagueCounts

	teams, err := s.teams.SyncTeams(ctx, TeamSyncInput{LeagueKey: leagueKey})
	if err != nil {
		return counts, "teams", err
	}
	counts.teams = teams.Synced

	standings, err := s.standings.SyncStandings(ctx, StandingSyncInput{LeagueKey: leagueKey})
	if err != nil {
		return counts, "standings", err
	}
	counts.standings = standings.Synced

	fixtures, err := s.fixtures.SyncFixtures(ctx, FixtureSyncInput{From: from, To: to, LeagueKey: leagueKey})
	if err != nil {
		return counts, "fixtures", err
	}
	counts.fixtures = fixtures.Synced

	return counts, "", nil
}

func normalizeLeagueKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
