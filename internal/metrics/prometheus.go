package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/riskibarqy/hoops-sync/internal/usecase"
)

// Recorder owns the sync and upstream collectors on its own registry. It
// satisfies usecase.SyncObserver and allsports.RequestObserver.
type Recorder struct {
	registry *prometheus.Registry

	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	syncRecords      *prometheus.CounterVec
	syncRuns         *prometheus.CounterVec
	syncRunDuration  *prometheus.HistogramVec
}

var _ usecase.SyncObserver = (*Recorder)(nil)

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		upstreamRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hoops_upstream_requests_total",
				Help: "Basketball provider requests by method and outcome",
			},
			[]string{"method", "status"},
		),
		upstreamDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hoops_upstream_request_duration_seconds",
				Help:    "Basketball provider request latency including retries",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20},
			},
			[]string{"method"},
		),
		syncRecords: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hoops_sync_records_total",
				Help: "Synced records by entity and outcome",
			},
			[]string{"entity", "outcome"},
		),
		syncRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hoops_sync_runs_total",
				Help: "Sync job runs by job and status",
			},
			[]string{"job", "status"},
		),
		syncRunDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hoops_sync_run_duration_seconds",
				Help:    "Sync job duration in seconds",
				Buckets: []float64{.1, .5, 1, 5, 10, 30, 60, 120, 300, 600},
			},
			[]string{"job"},
		),
	}
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) ObserveRequest(method, outcome string, elapsed time.Duration) {
	r.upstreamRequests.WithLabelValues(method, outcome).Inc()
	r.upstreamDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func (r *Recorder) ObserveRecord(entity string, outcome usecase.Outcome) {
	r.syncRecords.WithLabelValues(entity, string(outcome)).Inc()
}

func (r *Recorder) ObserveRun(job, status string, elapsed time.Duration) {
	r.syncRuns.WithLabelValues(job, status).Inc()
	r.syncRunDuration.WithLabelValues(job).Observe(elapsed.Seconds())
}
