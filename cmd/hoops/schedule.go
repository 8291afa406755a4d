package main

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/hoops-sync/internal/app"
	"github.com/riskibarqy/hoops-sync/internal/metrics"
	"github.com/riskibarqy/hoops-sync/internal/observability"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func scheduleCmd() *cobra.Command {
	var runNow bool
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the cron worker and metrics endpoint until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(func(ctx context.Context, a *app.App) error {
				return runSchedule(ctx, a, runNow)
			})
		},
	}
	cmd.Flags().BoolVar(&runNow, "run-now", false, "Run one fixtures and standings cycle before waiting for cron")
	return cmd
}

func runSchedule(ctx context.Context, a *app.App, runNow bool) error {
	logger := a.Logger

	profiling, err := observability.StartProfiling(a.Config, logger)
	if err != nil {
		return fmt.Errorf("start profiling: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := profiling.Stop(stopCtx); err != nil {
			logger.Warn("profiling stop failed", "error", err)
		}
	}()

	sched := a.NewScheduler()
	if runNow {
		sched.RunStandingsCycle(ctx)
		sched.RunFixturesCycle(ctx)
	}
	if err := sched.Start(ctx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return metrics.Serve(gctx, a.Config.MetricsAddr, a.Metrics.Registry(), logger)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("scheduler stopping, waiting for running jobs")
		<-sched.Stop().Done()
		logger.Info("scheduler stopped")
		return nil
	})

	return g.Wait()
}
