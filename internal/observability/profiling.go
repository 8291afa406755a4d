package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/pprof"
	"strings"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/hoops-sync/internal/config"
	"github.com/riskibarqy/hoops-sync/internal/platform/logging"
)

// Profiling owns the continuous profiler and the pprof listener of a
// long-running worker. Either part may be disabled.
type Profiling struct {
	logger   *logging.Logger
	profiler *pyroscope.Profiler
	pprof    *http.Server
}

// StartProfiling starts Pyroscope and the pprof listener according to cfg.
func StartProfiling(cfg config.Config, logger *logging.Logger) (*Profiling, error) {
	if logger == nil {
		logger = logging.Default()
	}
	p := &Profiling{logger: logger}

	if cfg.PyroscopeEnabled {
		profiler, err := pyroscope.Start(pyroscopeConfig(cfg))
		if err != nil {
			return nil, err
		}
		p.profiler = profiler
		logger.Info("pyroscope enabled",
			"server_address", cfg.PyroscopeServerAddress,
			"application", cfg.PyroscopeAppName,
		)
	} else {
		logger.Info("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
	}

	if cfg.PprofEnabled {
		p.pprof = newPprofServer(cfg.PprofAddr)
		go func(srv *http.Server) {
			logger.Info("pprof server starting", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("pprof server failed", "error", err)
			}
		}(p.pprof)
	} else {
		logger.Info("pprof disabled", "reason", "PPROF_ENABLED=false")
	}

	return p, nil
}

// Stop flushes the profiler and shuts the pprof listener down. It is safe
// on a nil receiver.
func (p *Profiling) Stop(ctx context.Context) error {
	if p == nil {
		return nil
	}

	var errs []error
	if p.pprof != nil {
		if err := p.pprof.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		} else {
			p.logger.Info("pprof server stopped")
		}
		p.pprof = nil
	}
	if p.profiler != nil {
		if err := p.profiler.Stop(); err != nil {
			errs = append(errs, err)
		}
		p.profiler = nil
	}
	return errors.Join(errs...)
}

func pyroscopeConfig(cfg config.Config) pyroscope.Config {
	tags := map[string]string{
		"env":     cfg.AppEnv,
		"service": cfg.ServiceName,
		"version": cfg.ServiceVersion,
		"storage": cfg.StorageDriver,
	}
	if len(cfg.SyncLeagueKeys) > 0 {
		tags["leagues"] = strings.Join(cfg.SyncLeagueKeys, ",")
	}

	return pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags:              tags,
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	}
}

func newPprofServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
