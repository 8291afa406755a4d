package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/hoops-sync/internal/config"
	"github.com/riskibarqy/hoops-sync/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

func TestInitTracing_Disabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "hoops-sync",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitTracing(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init tracing: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown tracing: %v", err)
	}
}

func TestInitTracing_EnabledWithoutDSN(t *testing.T) {
	shutdown, err := InitTracing(config.Config{UptraceEnabled: true}, nil)
	if err != nil {
		t.Fatalf("init tracing: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown tracing: %v", err)
	}
}

func TestResourceAttributes(t *testing.T) {
	attrs := resourceAttributes(config.Config{
		StorageDriver:  config.StoragePostgres,
		SyncLeagueKeys: []string{"757", "756"},
	})

	got := map[attribute.Key]attribute.Value{}
	for _, kv := range attrs {
		got[kv.Key] = kv.Value
	}
	if got["hoops.storage_driver"].AsString() != config.StoragePostgres {
		t.Fatalf("unexpected storage attribute: %v", got["hoops.storage_driver"])
	}
	leagues := got["hoops.league_keys"].AsStringSlice()
	if len(leagues) != 2 || leagues[0] != "757" || leagues[1] != "756" {
		t.Fatalf("unexpected league attribute: %v", leagues)
	}

	if n := len(resourceAttributes(config.Config{StorageDriver: config.StorageMemory})); n != 2 {
		t.Fatalf("expected no league attribute without league keys, got %d attributes", n)
	}
}

func TestStartProfiling_Disabled(t *testing.T) {
	p, err := StartProfiling(config.Config{}, logging.NewNop())
	if err != nil {
		t.Fatalf("start profiling: %v", err)
	}
	if p.profiler != nil || p.pprof != nil {
		t.Fatalf("expected nothing started when profiling is disabled")
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("stop profiling: %v", err)
	}

	var nilProfiling *Profiling
	if err := nilProfiling.Stop(context.Background()); err != nil {
		t.Fatalf("stop nil profiling: %v", err)
	}
}

func TestPyroscopeConfig_Tags(t *testing.T) {
	pc := pyroscopeConfig(config.Config{
		AppEnv:           config.EnvProd,
		ServiceName:      "hoops-sync",
		ServiceVersion:   "1.2.0",
		StorageDriver:    config.StoragePostgres,
		SyncLeagueKeys:   []string{"757", "756"},
		PyroscopeAppName: "hoops-sync",
	})

	if pc.Tags["leagues"] != "757,756" {
		t.Fatalf("unexpected leagues tag: %q", pc.Tags["leagues"])
	}
	if pc.Tags["storage"] != config.StoragePostgres || pc.Tags["env"] != config.EnvProd {
		t.Fatalf("unexpected tags: %v", pc.Tags)
	}
	if pc.ApplicationName != "hoops-sync" {
		t.Fatalf("unexpected application name: %q", pc.ApplicationName)
	}
}

func TestNewPprofServer(t *testing.T) {
	srv := newPprofServer(":6060")
	if srv.Addr != ":6060" || srv.Handler == nil || srv.ReadHeaderTimeout == 0 {
		t.Fatalf("unexpected pprof server: %+v", srv)
	}
}
