package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/hoops-sync/internal/platform/lock"
	"github.com/riskibarqy/hoops-sync/internal/platform/logging"
)

type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeUpdated Outcome = "updated"
	OutcomeSkipped Outcome = "skipped"
)

// RecordOutcome is the per-record result of a sync pass.
type RecordOutcome struct {
	Entity  string  `json:"entity"`
	Key     string  `json:"key"`
	Outcome Outcome `json:"outcome"`
	Reason  string  `json:"reason,omitempty"`
}

// SyncResult is returned by every sync job. Synced counts created and updated
// top-level records; skipped ones appear only in Records.
type SyncResult struct {
	Synced  int             `json:"synced"`
	Message string          `json:"message"`
	Records []RecordOutcome `json:"records,omitempty"`
}

// Skipped returns the skipped outcomes, optionally narrowed to one entity.
func (r SyncResult) Skipped(entity string) []RecordOutcome {
	var out []RecordOutcome
	for _, rec := range r.Records {
		if rec.Outcome != OutcomeSkipped {
			continue
		}
		if entity != "" && rec.Entity != entity {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// SyncObserver receives sync telemetry. Implementations must be safe for
// concurrent use.
type SyncObserver interface {
	ObserveRecord(entity string, outcome Outcome)
	ObserveRun(job, status string, elapsed time.Duration)
}

type noopObserver struct{}

func (noopObserver) ObserveRecord(string, Outcome)              {}
func (noopObserver) ObserveRun(string, string, time.Duration) {}

// NoopObserver discards telemetry.
func NoopObserver() SyncObserver { return noopObserver{} }

// SyncSupport bundles the collaborators shared by every sync service.
type SyncSupport struct {
	Locker   lock.Locker
	Observer SyncObserver
	Logger   *logging.Logger
}

func (s SyncSupport) normalized() SyncSupport {
	if s.Locker == nil {
		s.Locker = lock.NewKeyedMutex()
	}
	if s.Observer == nil {
		s.Observer = NoopObserver()
	}
	if s.Logger == nil {
		s.Logger = logging.Default()
	}
	return s
}

// run serializes a sync job per lock key and reports its duration. Every key
// must be free; a busy key releases the ones already taken.
func (s SyncSupport) run(ctx context.Context, job string, keys []string, fn func(ctx context.Context) (SyncResult, error)) (SyncResult, error) {
	releases := make([]lock.Release, 0, len(keys))
	releaseAll := func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}
	for _, key := range keys {
		release, err := s.Locker.TryAcquire(ctx, key)
		if err != nil {
			releaseAll()
			if errors.Is(err, lock.ErrHeld) {
				s.Observer.ObserveRun(job, "busy", 0)
				return SyncResult{}, fmt.Errorf("%w: %s", ErrSyncInProgress, key)
			}
			return SyncResult{}, fmt.Errorf("acquire sync lock %s: %w", key, err)
		}
		releases = append(releases, release)
	}
	defer releaseAll()

	start := time.Now()
	result, err := fn(ctx)
	status := "success"
	if err != nil {
		status = "failed"
	}
	s.Observer.ObserveRun(job, status, time.Since(start))
	return result, err
}

// recorder accumulates outcomes for one SyncResult.
type recorder struct {
	result   SyncResult
	observer SyncObserver
	logger   *logging.Logger
}

func newRecorder(observer SyncObserver, logger *logging.Logger) *recorder {
	return &recorder{observer: observer, logger: logger}
}

// upserted records a top-level row and counts it as synced.
func (r *recorder) upserted(entity, key string, created bool) {
	r.child(entity, key, created)
	r.result.Synced++
}

// child records a nested row without touching the synced counter.
func (r *recorder) child(entity, key string, created bool) {
	outcome := OutcomeUpdated
	if created {
		outcome = OutcomeCreated
	}
	r.result.Records = append(r.result.Records, RecordOutcome{Entity: entity, Key: key, Outcome: outcome})
	r.observer.ObserveRecord(entity, outcome)
}

func (r *recorder) skipped(ctx context.Context, gap *ReferentialGapError) {
	r.result.Records = append(r.result.Records, RecordOutcome{
		Entity:  gap.Entity,
		Key:     gap.Key,
		Outcome: OutcomeSkipped,
		Reason:  gap.Reason(),
	})
	r.observer.ObserveRecord(gap.Entity, OutcomeSkipped)
	r.logger.InfoContext(ctx, "sync record skipped",
		"entity", gap.Entity,
		"key", gap.Key,
		"reason", gap.Reason(),
		"missing_key", gap.MissingKey,
	)
}

func (r *recorder) finish(format string, args ...any) SyncResult {
	r.result.Message = fmt.Sprintf(format, args...)
	return r.result
}
