package scheduler

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/riskibarqy/hoops-sync/internal/domain/league"
	"github.com/riskibarqy/hoops-sync/internal/platform/logging"
	"github.com/riskibarqy/hoops-sync/internal/usecase"
	"github.com/robfig/cron/v3"
	"github.com/sourcegraph/conc/panics"
)

const (
	JobFixtures  = "fixtures"
	JobStandings = "standings"
	JobLivescore = "livescore"

	DefaultFixturesSpec  = "0 * * * *"
	DefaultStandingsSpec = "0 0 * * *"
	DefaultPastDays      = 2
	DefaultFutureDays    = 7
)

type FixtureSyncer interface {
	SyncFixtures(ctx context.Context, input usecase.FixtureSyncInput) (usecase.SyncResult, error)
	SyncLivescore(ctx context.Context, input usecase.LivescoreSyncInput) (usecase.SyncResult, error)
}

type StandingSyncer interface {
	SyncStandings(ctx context.Context, input usecase.StandingSyncInput) (usecase.SyncResult, error)
}

type LeagueLister interface {
	List(ctx context.Context) ([]league.League, error)
}

// Config holds cron specs in the standard five-field format. An empty
// LivescoreSpec leaves the livescore job unscheduled.
type Config struct {
	FixturesSpec  string
	StandingsSpec string
	LivescoreSpec string
	PastDays      int
	FutureDays    int
	Location      *time.Location
	// FallbackLeagueKeys are synced while no league is stored yet.
	FallbackLeagueKeys []string
}

// CycleReport summarizes one scheduled pass over every league.
type CycleReport struct {
	Job       string            `json:"job"`
	StartedAt time.Time         `json:"started_at"`
	Duration  time.Duration     `json:"duration"`
	Leagues   int               `json:"leagues"`
	Synced    int               `json:"synced"`
	Failures  map[string]string `json:"failures,omitempty"`
	Err       string            `json:"error,omitempty"`
}

type Scheduler struct {
	cfg       Config
	fixtures  FixtureSyncer
	standings StandingSyncer
	leagues   LeagueLister
	logger    *logging.Logger
	cron      *cron.Cron
	now       func() time.Time

	mu      sync.Mutex
	started bool
}

func New(cfg Config, fixtures FixtureSyncer, standings StandingSyncer, leagues LeagueLister, logger *logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.FixturesSpec) == "" {
		cfg.FixturesSpec = DefaultFixturesSpec
	}
	if strings.TrimSpace(cfg.StandingsSpec) == "" {
		cfg.StandingsSpec = DefaultStandingsSpec
	}
	if cfg.PastDays <= 0 {
		cfg.PastDays = DefaultPastDays
	}
	if cfg.FutureDays <= 0 {
		cfg.FutureDays = DefaultFutureDays
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &Scheduler{
		cfg:       cfg,
		fixtures:  fixtures,
		standings: standings,
		leagues:   leagues,
		logger:    logger.Named("scheduler"),
		cron:      cron.New(cron.WithLocation(cfg.Location)),
		now:       time.Now,
	}
}

// Start registers every job and starts the cron loop. Jobs run with ctx, so
// cancelling it aborts in-flight cycles.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return fmt.Errorf("scheduler already started")
	}

	jobs := []struct {
		name string
		spec string
		run  func(context.Context) CycleReport
	}{
		{name: JobFixtures, spec: s.cfg.FixturesSpec, run: s.RunFixturesCycle},
		{name: JobStandings, spec: s.cfg.StandingsSpec, run: s.RunStandingsCycle},
		{name: JobLivescore, spec: s.cfg.LivescoreSpec, run: s.RunLivescoreCycle},
	}
	for _, job := range jobs {
		if strings.TrimSpace(job.spec) == "" {
			s.logger.Info("scheduled job disabled", "job", job.name)
			continue
		}
		run := job.run
		if _, err := s.cron.AddFunc(job.spec, func() { run(ctx) }); err != nil {
			return fmt.Errorf("schedule %s job spec=%q: %w", job.name, job.spec, err)
		}
		s.logger.Info("scheduled job registered", "job", job.name, "spec", job.spec)
	}

	s.cron.Start()
	s.started = true
	return nil
}

// Stop halts the cron loop and returns a context done once running jobs end.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) RunFixturesCycle(ctx context.Context) CycleReport {
	from, to := usecase.DateWindow(s.now().In(s.cfg.Location), s.cfg.PastDays, s.cfg.FutureDays)
	return s.runCycle(ctx, JobFixtures, func(ctx context.Context, leagueKey string) (usecase.SyncResult, error) {
		return s.fixtures.SyncFixtures(ctx, usecase.FixtureSyncInput{From: from, To: to, LeagueKey: leagueKey})
	})
}

func (s *Scheduler) RunStandingsCycle(ctx context.Context) CycleReport {
	return s.runCycle(ctx, JobStandings, func(ctx context.Context, leagueKey string) (usecase.SyncResult, error) {
		return s.standings.SyncStandings(ctx, usecase.StandingSyncInput{LeagueKey: leagueKey})
	})
}

func (s *Scheduler) RunLivescoreCycle(ctx context.Context) CycleReport {
	return s.runCycle(ctx, JobLivescore, func(ctx context.Context, leagueKey string) (usecase.SyncResult, error) {
		return s.fixtures.SyncLivescore(ctx, usecase.LivescoreSyncInput{LeagueKey: leagueKey})
	})
}

// runCycle syncs every league independently. A failing or panicking league
// is recorded in the report and never stops the rest of the cycle.
func (s *Scheduler) runCycle(ctx context.Context, job string, syncLeague func(context.Context, string) (usecase.SyncResult, error)) CycleReport {
	report := CycleReport{Job: job, StartedAt: s.now()}
	ctx = logging.ContextWith(ctx, "job", job, "run_id", uuid.NewString())
	defer func() {
		report.Duration = s.now().Sub(report.StartedAt)
		s.logReport(ctx, report)
	}()

	var keys []string
	if recovered := panics.Try(func() {
		var err error
		keys, err = s.leagueKeys(ctx)
		if err != nil {
			report.Err = err.Error()
		}
	}); recovered != nil {
		report.Err = recovered.AsError().Error()
	}
	if report.Err != "" {
		return report
	}

	report.Leagues = len(keys)
	for _, key := range keys {
		if ctx.Err() != nil {
			report.addFailure(key, ctx.Err())
			continue
		}

		var (
			res usecase.SyncResult
			err error
		)
		leagueCtx := logging.ContextWith(ctx, "league_key", key)
		if recovered := panics.Try(func() { res, err = syncLeague(leagueCtx, key) }); recovered != nil {
			err = recovered.AsError()
		}
		if err != nil {
			report.addFailure(key, err)
			continue
		}
		report.Synced += res.Synced
	}
	return report
}

func (s *Scheduler) leagueKeys(ctx context.Context) ([]string, error) {
	items, err := s.leagues.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	seen := make(map[string]struct{}, len(items))
	keys := make([]string, 0, len(items))
	add := func(key string) {
		key = strings.TrimSpace(key)
		if key == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	for _, item := range items {
		add(item.Key)
	}
	if len(keys) == 0 {
		for _, key := range s.cfg.FallbackLeagueKeys {
			add(key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (r *CycleReport) addFailure(leagueKey string, err error) {
	if r.Failures == nil {
		r.Failures = make(map[string]string)
	}
	r.Failures[leagueKey] = err.Error()
}

func (s *Scheduler) logReport(ctx context.Context, report CycleReport) {
	args := []any{
		"leagues", report.Leagues,
		"synced", report.Synced,
		"failures", len(report.Failures),
		"duration_ms", report.Duration.Milliseconds(),
	}
	switch {
	case report.Err != "":
		s.logger.ErrorContext(ctx, "scheduled cycle failed", append(args, "error", report.Err)...)
	case len(report.Failures) > 0:
		s.logger.WarnContext(ctx, "scheduled cycle finished with failures", append(args, "failed_leagues", report.Failures)...)
	default:
		s.logger.InfoContext(ctx, "scheduled cycle finished", args...)
	}
}
