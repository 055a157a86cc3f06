package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"worktrack/internal/config"
	"worktrack/internal/logging"
	"worktrack/internal/repository/sqlite"
	"worktrack/internal/scheduler"
	"worktrack/internal/server"
	"worktrack/internal/services"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "worktrackd",
		Short:         "Employee time-tracking backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newSweepCommand())

	return root
}

// newServeCommand runs the HTTP server and the sweep scheduler until
// interrupted.
func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the inactivity sweep scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := logging.Setup(cfg.Log.Level)

			repo, err := sqlite.New(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("open repository: %w", err)
			}
			defer repo.Close()

			guard := services.NewFraudGuard(repo, logger)
			shifts := services.NewShiftEngine(repo)
			rates := services.NewRateResolver()
			windows := services.NewWindowService(repo, guard, shifts, rates)
			screenshots := services.NewScreenshotService(repo)
			sweeper := services.NewSweeper(repo, logger)
			analytics := services.NewAnalyticsService(repo)

			srv := server.New(repo, windows, screenshots, sweeper, analytics, cfg.Sweep.CronSecret)
			sched := scheduler.New(sweeper, cfg.Sweep.Schedule)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			group, ctx := errgroup.WithContext(ctx)
			group.Go(func() error {
				return srv.Run(ctx, cfg.Server)
			})
			group.Go(func() error {
				if err := sched.Start(); err != nil {
					return fmt.Errorf("start scheduler: %w", err)
				}
				<-ctx.Done()
				sched.Stop()
				return nil
			})

			return group.Wait()
		},
	}
}

// newSweepCommand runs a single inactivity sweep and exits, for use from an
// external cron.
func newSweepCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Run one inactivity sweep and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := logging.Setup(cfg.Log.Level)

			repo, err := sqlite.New(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("open repository: %w", err)
			}
			defer repo.Close()

			sweeper := services.NewSweeper(repo, logger)
			result, err := sweeper.Sweep(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Println(result.Message)
			return nil
		},
	}
}
