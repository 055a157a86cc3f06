package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"worktrack/internal/repository/sqlite"
)

// StaleHeartbeatMillis is the fixed policy threshold after which an open
// window with no heartbeat is considered stale.
const StaleHeartbeatMillis = int64(15 * 60000)

// sweeperImpl implements the Sweeper interface
type sweeperImpl struct {
	repo   sqlite.Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewSweeper creates a new Sweeper instance
func NewSweeper(repo sqlite.Repository, logger *slog.Logger) Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &sweeperImpl{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Sweep flags every open window whose heartbeat has gone stale, appending
// the current time to its missed-screenshot log. The flag time is recorded
// separately from the heartbeat, so the true last-seen time is preserved
// and the same staleness is not re-flagged on the next tick. The whole
// batch commits or rolls back as one transaction.
func (s *sweeperImpl) Sweep(ctx context.Context) (*SweepResult, error) {
	nowMillis := s.now().UnixMilli()
	cutoff := nowMillis - StaleHeartbeatMillis

	stale, err := s.repo.FindStaleOpenWindows(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	if len(stale) == 0 {
		return &SweepResult{
			Message:          "no stale windows",
			UpdatedWindowIDs: []string{},
		}, nil
	}

	if err := s.repo.FlagMissedHeartbeats(ctx, stale, nowMillis); err != nil {
		return nil, err
	}

	ids := make([]string, len(stale))
	for i, window := range stale {
		ids[i] = window.ID
	}

	s.logger.Info("inactivity sweep flagged windows", "count", len(ids))

	return &SweepResult{
		Message:          fmt.Sprintf("flagged %d stale windows", len(ids)),
		UpdatedWindowIDs: ids,
	}, nil
}
