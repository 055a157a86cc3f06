package services

import (
	"context"
	"time"

	"worktrack/internal/errors"
	"worktrack/internal/repository/sqlite"
	"worktrack/internal/validation"

	"github.com/google/uuid"
)

// ShiftGapMillis is the fixed policy threshold grouping temporally adjacent
// windows into one shift: a new window within 4 hours of the employee's
// last closed window continues that shift.
const ShiftGapMillis = int64(4 * 3600000)

// ShiftEngine decides whether a new window continues an existing shift or
// starts a new one.
type ShiftEngine struct {
	repo sqlite.Repository
	now  func() time.Time
}

// NewShiftEngine creates a new ShiftEngine instance
func NewShiftEngine(repo sqlite.Repository) *ShiftEngine {
	return &ShiftEngine{
		repo: repo,
		now:  time.Now,
	}
}

// Resolve returns the shift identifier for a session starting now.
//
// An explicit shift ID supplied by the caller is honored, but only after an
// ownership check: if windows under that shift already exist for a
// different employee, the request is rejected. A shift ID with no windows
// at all is accepted as-is, since clients may pre-generate identifiers.
func (e *ShiftEngine) Resolve(ctx context.Context, employeeID, explicitShiftID string) (string, error) {
	if explicitShiftID != "" {
		owners, err := e.repo.GetShiftOwners(ctx, explicitShiftID)
		if err != nil {
			return "", err
		}
		for _, owner := range owners {
			if owner != employeeID {
				validationError := validation.NewValidationError()
				validationError.AddInvalidValueError("shiftId", explicitShiftID, "shift belongs to another employee")
				return "", validationError
			}
		}
		return explicitShiftID, nil
	}

	last, err := e.repo.GetLastClosedWindow(ctx, employeeID)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return uuid.NewString(), nil
		}
		return "", err
	}

	nowMillis := e.now().UnixMilli()
	if last.End == nil || nowMillis-*last.End > ShiftGapMillis {
		return uuid.NewString(), nil
	}

	return last.ShiftID, nil
}
