package services

import (
	"context"
	"log/slog"

	"worktrack/internal/errors"
	"worktrack/internal/repository/sqlite"
)

// FraudGuard rejects session starts when the same employee identity
// appears to be active concurrently on different hardware. A simple
// heuristic, not a full fraud model.
type FraudGuard struct {
	repo   sqlite.Repository
	logger *slog.Logger
}

// NewFraudGuard creates a new FraudGuard instance
func NewFraudGuard(repo sqlite.Repository, logger *slog.Logger) *FraudGuard {
	if logger == nil {
		logger = slog.Default()
	}
	return &FraudGuard{
		repo:   repo,
		logger: logger,
	}
}

// Check fails with a conflict error if the employee has an open window on
// different hardware. A hardware fingerprint never seen before for this
// employee still passes, but emits an audit warning for manual review.
func (g *FraudGuard) Check(ctx context.Context, employeeID, hwid string) error {
	open, err := g.repo.GetOpenWindow(ctx, employeeID)
	if err != nil && !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return err
	}

	if open != nil && open.HWID != hwid {
		return errors.NewConflictError("concurrent session detected on different hardware").
			WithContext("employee_id", employeeID).
			WithContext("open_hwid", open.HWID).
			WithContext("request_hwid", hwid)
	}

	seen, err := g.repo.CountWindowsByHWID(ctx, employeeID, hwid)
	if err != nil {
		return err
	}
	if seen == 0 {
		g.logger.Warn("first session from unknown hardware",
			"employee_id", employeeID,
			"hwid", hwid)
	}

	return nil
}
