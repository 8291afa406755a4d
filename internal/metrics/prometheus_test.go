package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/riskibarqy/hoops-sync/internal/platform/cache"
	"github.com/riskibarqy/hoops-sync/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_CountsByLabel(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	rec.ObserveRecord("fixture", usecase.OutcomeCreated)
	rec.ObserveRecord("fixture", usecase.OutcomeCreated)
	rec.ObserveRecord("fixture", usecase.OutcomeSkipped)
	rec.ObserveRun("fixtures", "success", time.Second)
	rec.ObserveRequest("Fixtures", "success", 200*time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(rec.syncRecords.WithLabelValues("fixture", "created")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(rec.syncRecords.WithLabelValues("fixture", "skipped")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(rec.syncRuns.WithLabelValues("fixtures", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(rec.upstreamRequests.WithLabelValues("Fixtures", "success")), 0)
}

func TestHandler_ExposesMetrics(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	rec.ObserveRun("standings", "error", time.Second)

	server := httptest.NewServer(Handler(rec.Registry()))
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `hoops_sync_runs_total{job="standings",status="error"} 1`)
}

func TestRecorder_RegisterCache(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	store := cache.NewStore(time.Minute)
	ctx := context.Background()
	store.Set(ctx, "team:list:757", 1)
	store.Get(ctx, "team:list:757")
	store.Get(ctx, "team:list:756")

	require.NoError(t, rec.RegisterCache("repository", store.Stats))
	require.Error(t, rec.RegisterCache("repository", store.Stats), "duplicate cache name")

	expected := `
# HELP hoops_cache_hits_total Cache lookups that found a live entry
# TYPE hoops_cache_hits_total counter
hoops_cache_hits_total{cache="repository"} 1
# HELP hoops_cache_misses_total Cache lookups that found nothing or an expired entry
# TYPE hoops_cache_misses_total counter
hoops_cache_misses_total{cache="repository"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(rec.Registry(), strings.NewReader(expected), "hoops_cache_hits_total", "hoops_cache_misses_total"))
}
