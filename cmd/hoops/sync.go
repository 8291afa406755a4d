package main

import (
	"context"
	"time"

	"github.com/riskibarqy/hoops-sync/internal/app"
	"github.com/riskibarqy/hoops-sync/internal/usecase"
	"github.com/spf13/cobra"
)

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Pull data from AllSports into storage",
	}
	cmd.AddCommand(syncAllCmd())
	cmd.AddCommand(syncCountriesCmd())
	cmd.AddCommand(syncLeaguesCmd())
	cmd.AddCommand(syncTeamsCmd())
	cmd.AddCommand(syncFixturesCmd())
	cmd.AddCommand(syncLivescoreCmd())
	cmd.AddCommand(syncStandingsCmd())
	return cmd
}

func syncAllCmd() *cobra.Command {
	var (
		leagues  []string
		from, to string
	)
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Countries, leagues, then teams, standings and fixtures per league",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(func(ctx context.Context, a *app.App) error {
				res, err := a.Orchestrator.SyncAll(ctx, usecase.SyncAllInput{
					LeagueKeys: leagues,
					From:       from,
					To:         to,
				})
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	cmd.Flags().StringSliceVar(&leagues, "league", nil, "League keys (default SYNC_LEAGUE_KEYS)")
	cmd.Flags().StringVar(&from, "from", "", "Window start, YYYY-MM-DD (default today - SYNC_FULL_PAST_DAYS)")
	cmd.Flags().StringVar(&to, "to", "", "Window end, YYYY-MM-DD (default today + SYNC_FULL_FUTURE_DAYS)")
	return cmd
}

func syncCountriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "Sync every country",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(func(ctx context.Context, a *app.App) error {
				res, err := a.Countries.SyncCountries(ctx)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), res)
			})
		},
	}
}

func syncLeaguesCmd() *cobra.Command {
	var (
		countryKey string
		leagues    []string
	)
	cmd := &cobra.Command{
		Use:   "leagues",
		Short: "Sync leagues whose country is already stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(func(ctx context.Context, a *app.App) error {
				res, err := a.Leagues.SyncLeagues(ctx, usecase.LeagueSyncInput{
					CountryKey: countryKey,
					LeagueKeys: leagues,
				})
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	cmd.Flags().StringVar(&countryKey, "country", "", "Provider country key")
	cmd.Flags().StringSliceVar(&leagues, "league", nil, "Only store these league keys")
	return cmd
}

func syncTeamsCmd() *cobra.Command {
	var leagueKey string
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Sync the teams of one league",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(func(ctx context.Context, a *app.App) error {
				res, err := a.Teams.SyncTeams(ctx, usecase.TeamSyncInput{LeagueKey: leagueKey})
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	cmd.Flags().StringVar(&leagueKey, "league", "", "League key")
	_ = cmd.MarkFlagRequired("league")
	return cmd
}

func syncFixturesCmd() *cobra.Command {
	var input usecase.FixtureSyncInput
	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Sync fixtures with scores, statistics, lineups and box scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(func(ctx context.Context, a *app.App) error {
				if input.From == "" || input.To == "" {
					from, to := usecase.DateWindow(time.Now(), a.Config.SchedulePastDays, a.Config.ScheduleFutureDays)
					if input.From == "" {
						input.From = from
					}
					if input.To == "" {
						input.To = to
					}
				}
				res, err := a.Fixtures.SyncFixtures(ctx, input)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	cmd.Flags().StringVar(&input.From, "from", "", "Window start, YYYY-MM-DD (default today - SCHEDULE_PAST_DAYS)")
	cmd.Flags().StringVar(&input.To, "to", "", "Window end, YYYY-MM-DD (default today + SCHEDULE_FUTURE_DAYS)")
	cmd.Flags().StringVar(&input.LeagueKey, "league", "", "League key")
	cmd.Flags().StringVar(&input.TeamKey, "team", "", "Team key")
	return cmd
}

func syncLivescoreCmd() *cobra.Command {
	var leagueKey string
	cmd := &cobra.Command{
		Use:   "livescore",
		Short: "Sync fixtures currently in play",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(func(ctx context.Context, a *app.App) error {
				res, err := a.Fixtures.SyncLivescore(ctx, usecase.LivescoreSyncInput{LeagueKey: leagueKey})
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	cmd.Flags().StringVar(&leagueKey, "league", "", "League key")
	return cmd
}

func syncStandingsCmd() *cobra.Command {
	var leagueKey string
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Sync the standings table of one league",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(func(ctx context.Context, a *app.App) error {
				res, err := a.Standings.SyncStandings(ctx, usecase.StandingSyncInput{LeagueKey: leagueKey})
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	cmd.Flags().StringVar(&leagueKey, "league", "", "League key")
	_ = cmd.MarkFlagRequired("league")
	return cmd
}
