package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/riskibarqy/hoops-sync/internal/platform/cache"
)

type cacheCollector struct {
	stats   func() cache.Stats
	hits    *prometheus.Desc
	misses  *prometheus.Desc
	entries *prometheus.Desc
}

// RegisterCache exposes the Stats of a cache store under
// the given name. Values are read at scrape time.
func (r *Recorder) RegisterCache(name string, stats func() cache.Stats) error {
	labels := prometheus.Labels{"cache": name}
	return r.registry.Register(&cacheCollector{
		stats:   stats,
		hits:    prometheus.NewDesc("hoops_cache_hits_total", "Cache lookups that found a live entry", nil, labels),
		misses:  prometheus.NewDesc("hoops_cache_misses_total", "Cache lookups that found nothing or an expired entry", nil, labels),
		entries: prometheus.NewDesc("hoops_cache_entries", "Entries currently held, expired ones included until read", nil, labels),
	})
}

func (c *cacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.misses
	ch <- c.entries
}

func (c *cacheCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.stats()
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(s.Misses))
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(s.Entries))
}
