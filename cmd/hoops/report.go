package main

import (
	"context"

	"github.com/riskibarqy/hoops-sync/internal/app"
	"github.com/riskibarqy/hoops-sync/internal/domain/team"
	"github.com/riskibarqy/hoops-sync/internal/usecase"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Read aggregated data from storage",
	}
	cmd.AddCommand(reportPlayersCmd())
	cmd.AddCommand(reportPlayerCmd())
	cmd.AddCommand(reportFixtureCmd())
	cmd.AddCommand(reportFixturesCmd())
	cmd.AddCommand(reportStandingsCmd())
	cmd.AddCommand(reportLeagueCmd())
	cmd.AddCommand(reportH2HCmd())
	return cmd
}

func reportPlayersCmd() *cobra.Command {
	var teamKey string
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Per-game averages for every player of a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(func(ctx context.Context, a *app.App) error {
				out, err := a.Stats.PlayerAverages(ctx, teamKey)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), out)
			})
		},
	}
	cmd.Flags().StringVar(&teamKey, "team", "", "Team key")
	_ = cmd.MarkFlagRequired("team")
	return cmd
}

func reportPlayerCmd() *cobra.Command {
	var playerKey string
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Per-game averages for one player",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(func(ctx context.Context, a *app.App) error {
				out, err := a.Stats.PlayerAverage(ctx, playerKey)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), out)
			})
		},
	}
	cmd.Flags().StringVar(&playerKey, "player", "", "Player key")
	_ = cmd.MarkFlagRequired("player")
	return cmd
}

func reportFixtureCmd() *cobra.Command {
	var eventKey string
	cmd := &cobra.Command{
		Use:   "fixture",
		Short: "Quarter scores, team statistics and box score of one fixture",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(func(ctx context.Context, a *app.App) error {
				fx, err := a.FixtureRead.GetByEventKey(ctx, eventKey)
				if err != nil {
					return err
				}
				out, err := a.Stats.FixtureDetail(ctx, fx.ID)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), out)
			})
		},
	}
	cmd.Flags().StringVar(&eventKey, "event", "", "Provider event key")
	_ = cmd.MarkFlagRequired("event")
	return cmd
}

func reportFixturesCmd() *cobra.Command {
	var filter usecase.FixtureFilter
	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Page through stored fixtures, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(func(ctx context.Context, a *app.App) error {
				out, err := a.FixtureRead.List(ctx, filter)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), out)
			})
		},
	}
	cmd.Flags().StringVar(&filter.LeagueKey, "league", "", "League key")
	cmd.Flags().StringVar(&filter.TeamKey, "team", "", "Team key, home or away")
	cmd.Flags().StringVar(&filter.Date, "date", "", "Event date, YYYY-MM-DD")
	cmd.Flags().IntVar(&filter.Page, "page", 1, "Page number")
	cmd.Flags().IntVar(&filter.Limit, "limit", 20, "Page size, at most 100")
	return cmd
}

func reportStandingsCmd() *cobra.Command {
	var leagueKey, season string
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Stored standings of a league ordered by place",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(func(ctx context.Context, a *app.App) error {
				out, err := a.StandingRead.ListByLeague(ctx, leagueKey, season)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), out)
			})
		},
	}
	cmd.Flags().StringVar(&leagueKey, "league", "", "League key")
	cmd.Flags().StringVar(&season, "season", "", "Season label, e.g. 2024/2025")
	_ = cmd.MarkFlagRequired("league")
	return cmd
}

type leagueReport struct {
	Stats usecase.LeagueStats `json:"stats"`
	Teams []team.Team         `json:"teams"`
}

func reportLeagueCmd() *cobra.Command {
	var leagueKey string
	cmd := &cobra.Command{
		Use:   "league",
		Short: "Team count, game count, current season and teams of a league",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(func(ctx context.Context, a *app.App) error {
				stats, err := a.LeagueRead.Stats(ctx, leagueKey)
				if err != nil {
					return err
				}
				teams, err := a.LeagueRead.TeamsByLeague(ctx, leagueKey)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), leagueReport{Stats: stats, Teams: teams})
			})
		},
	}
	cmd.Flags().StringVar(&leagueKey, "league", "", "League key")
	_ = cmd.MarkFlagRequired("league")
	return cmd
}

func reportH2HCmd() *cobra.Command {
	var first, second string
	cmd := &cobra.Command{
		Use:   "h2h",
		Short: "Head-to-head history of two teams, fetched live",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(func(ctx context.Context, a *app.App) error {
				out, err := a.H2H.HeadToHead(ctx, first, second)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), out)
			})
		},
	}
	cmd.Flags().StringVar(&first, "first", "", "First team key")
	cmd.Flags().StringVar(&second, "second", "", "Second team key")
	_ = cmd.MarkFlagRequired("first")
	_ = cmd.MarkFlagRequired("second")
	return cmd
}
