// Command hoops syncs AllSports basketball data into local storage and
// reports on what has been stored.
//
// Usage:
//
//	hoops sync all --from 2025-01-01 --to 2025-01-31
//	hoops sync fixtures --league 757 --from 2025-01-01 --to 2025-01-07
//	hoops sync standings --league 757
//	hoops schedule
//	hoops report players --team 100
//	hoops report h2h --first 100 --second 200
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"
	"github.com/riskibarqy/hoops-sync/internal/app"
	"github.com/riskibarqy/hoops-sync/internal/config"
	"github.com/riskibarqy/hoops-sync/internal/observability"
	"github.com/riskibarqy/hoops-sync/internal/platform/logging"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load(".env")

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hoops",
		Short:         "AllSports basketball sync engine",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(syncCmd())
	root.AddCommand(scheduleCmd())
	root.AddCommand(reportCmd())
	return root
}

// runApp loads configuration, boots tracing and builds the app for the
// duration of fn. ctx is cancelled on SIGINT or SIGTERM.
func runApp(fn func(ctx context.Context, a *app.App) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat).With(
		"service", cfg.ServiceName,
		"version", cfg.ServiceVersion,
		"env", cfg.AppEnv,
	)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitTracing(cfg, logger)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("tracing shutdown failed", "error", err)
		}
	}()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("close app failed", "error", err)
		}
	}()

	return fn(ctx, a)
}

func writeJSON(w io.Writer, v any) error {
	raw, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	raw = append(raw, '\n')
	_, err = w.Write(raw)
	return err
}
