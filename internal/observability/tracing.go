package observability

import (
	"context"
	"strings"

	"github.com/riskibarqy/hoops-sync/internal/config"
	"github.com/riskibarqy/hoops-sync/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"
)

// InitTracing installs the global OpenTelemetry providers and exports to
// Uptrace. Sync spans carry the configured leagues and storage driver as
// resource attributes.
func InitTracing(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	noop := func(context.Context) error { return nil }

	if !cfg.UptraceEnabled {
		logger.Info("tracing disabled", "reason", "UPTRACE_ENABLED=false")
		return noop, nil
	}
	if strings.TrimSpace(cfg.UptraceDSN) == "" {
		logger.Info("tracing disabled", "reason", "UPTRACE_DSN empty")
		return noop, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(resourceAttributes(cfg)...),
	)

	logger.Info("tracing enabled",
		"exporter", "uptrace",
		"service_name", cfg.ServiceName,
		"environment", cfg.AppEnv,
		"storage", cfg.StorageDriver,
	)

	return uptrace.Shutdown, nil
}

func resourceAttributes(cfg config.Config) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("hoops.storage_driver", cfg.StorageDriver),
		attribute.String("hoops.provider", "allsports"),
	}
	if len(cfg.SyncLeagueKeys) > 0 {
		attrs = append(attrs, attribute.StringSlice("hoops.league_keys", cfg.SyncLeagueKeys))
	}
	return attrs
}
