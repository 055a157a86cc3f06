package scheduler

import (
	"context"
	"log/slog"

	"worktrack/internal/services"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the inactivity sweeper on a cron schedule, in addition to
// the externally triggered HTTP cron endpoint.
type Scheduler struct {
	sweeper  services.Sweeper
	schedule string
	cron     *cron.Cron
}

// New creates a new Scheduler firing the given sweeper on the given
// standard 5-field cron schedule.
func New(sweeper services.Sweeper, schedule string) *Scheduler {
	return &Scheduler{
		sweeper:  sweeper,
		schedule: schedule,
		cron:     cron.New(),
	}
}

// Start registers the sweep entry and starts the cron ticker.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		result, err := s.sweeper.Sweep(context.Background())
		if err != nil {
			slog.Error("scheduled sweep failed", "error", err)
			return
		}
		slog.Info("scheduled sweep finished", "flagged", len(result.UpdatedWindowIDs))
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	slog.Info("sweep scheduler started", "schedule", s.schedule)
	return nil
}

// Stop stops the cron ticker and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
