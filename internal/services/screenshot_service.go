package services

import (
	"context"
	"time"

	"worktrack/internal/domain"
	"worktrack/internal/repository/sqlite"
	"worktrack/internal/validation"

	"github.com/google/uuid"
)

// screenshotServiceImpl implements the ScreenshotService interface
type screenshotServiceImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	validator *validation.ScreenshotValidator
	now       func() time.Time
	newID     func() string
}

// NewScreenshotService creates a new ScreenshotService instance
func NewScreenshotService(repo sqlite.Repository) ScreenshotService {
	return &screenshotServiceImpl{
		repo:      repo,
		mapper:    domain.NewMapper(),
		validator: validation.NewScreenshotValidator(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Upload records a screenshot against the employee's open window. The
// screenshot inherits the window's scoping references and hardware
// fingerprint, and the parent window's heartbeat is refreshed in the same
// transaction.
func (s *screenshotServiceImpl) Upload(ctx context.Context, employeeID string, req UploadRequest) (*domain.Screenshot, error) {
	if err := s.validator.ValidateUpload(req.WindowID, req.Timestamp, req.TimezoneOffset); err != nil {
		return nil, err
	}

	dbWindow, err := s.repo.GetOpenWindowByID(ctx, req.WindowID, employeeID)
	if err != nil {
		return nil, err
	}
	window := s.mapper.Window.FromDatabase(*dbWindow)

	nowMillis := s.now().UnixMilli()
	screenshot := domain.Screenshot{
		ID:             s.newID(),
		WindowID:       window.ID,
		EmployeeID:     window.EmployeeID,
		OrganizationID: window.OrganizationID,
		TeamID:         window.TeamID,
		ProjectID:      window.ProjectID,
		TaskID:         window.TaskID,
		ShiftID:        window.ShiftID,

		TakenAt:           req.Timestamp,
		TimezoneOffset:    req.TimezoneOffset,
		TakenAtTranslated: req.Timestamp - req.TimezoneOffset,

		HWID:  window.HWID,
		App:   req.App,
		Title: req.Title,
		Site:  req.Site,

		CreatedAt: nowMillis,
	}

	dbScreenshot := s.mapper.Screenshot.ToDatabase(screenshot)
	if err := s.repo.CreateScreenshotWithHeartbeat(ctx, &dbScreenshot, nowMillis); err != nil {
		return nil, err
	}

	return &screenshot, nil
}
