package services

import (
	"context"
	"time"

	"worktrack/internal/domain"
	"worktrack/internal/errors"
	"worktrack/internal/repository/sqlite"
	"worktrack/internal/validation"

	"github.com/google/uuid"
)

// windowServiceImpl implements the WindowService interface
type windowServiceImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	validator *validation.WindowValidator
	guard     *FraudGuard
	shifts    *ShiftEngine
	rates     *RateResolver
	now       func() time.Time
	newID     func() string
}

// NewWindowService creates a new WindowService instance
func NewWindowService(repo sqlite.Repository, guard *FraudGuard, shifts *ShiftEngine, rates *RateResolver) WindowService {
	return &windowServiceImpl{
		repo:      repo,
		mapper:    domain.NewMapper(),
		validator: validation.NewWindowValidator(),
		guard:     guard,
		shifts:    shifts,
		rates:     rates,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// StartSession validates and persists a new tracked session. Precondition
// checks run in a fixed order, first failure wins: hardware guard, no open
// window, task/project/assignment validity, employee active.
func (s *windowServiceImpl) StartSession(ctx context.Context, employeeID, organizationID string, req StartRequest) (*StartResult, error) {
	if err := s.validator.ValidateStart(req.ProjectID, req.TaskID, req.HWID, req.TimezoneOffset, req.ShiftID); err != nil {
		return nil, err
	}

	if err := s.guard.Check(ctx, employeeID, req.HWID); err != nil {
		return nil, err
	}

	open, err := s.repo.GetOpenWindow(ctx, employeeID)
	if err != nil && !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil, err
	}
	if open != nil {
		return nil, errors.NewConflictError("active session exists").
			WithContext("window_id", open.ID)
	}

	task, project, err := s.validateAssignment(ctx, employeeID, organizationID, req.ProjectID, req.TaskID)
	if err != nil {
		return nil, err
	}

	shiftID, err := s.shifts.Resolve(ctx, employeeID, req.ShiftID)
	if err != nil {
		return nil, err
	}

	snapshot := s.rates.Resolve(task, project)

	startMillis := s.now().UnixMilli()
	window := domain.Window{
		ID:              s.newID(),
		EmployeeID:      employeeID,
		OrganizationID:  organizationID,
		TeamID:          "",
		ProjectID:       req.ProjectID,
		TaskID:          req.TaskID,
		ShiftID:         shiftID,
		Start:           startMillis,
		TimezoneOffset:  req.TimezoneOffset,
		StartTranslated: startMillis - req.TimezoneOffset,
		Type:            req.Type,
		Note:            req.Note,
		Domain:          req.Domain,
		Computer:        req.Computer,
		HWID:            req.HWID,
		OS:              req.OS,
		OSVersion:       req.OSVersion,

		BillRate:         snapshot.BillRate,
		OvertimeBillRate: snapshot.OvertimeBillRate,
		PayRate:          snapshot.PayRate,
		OvertimePayRate:  snapshot.OvertimePayRate,

		LastHeartbeat: startMillis,
		CreatedAt:     startMillis,
		UpdatedAt:     startMillis,
	}

	dbWindow := s.mapper.Window.ToDatabase(window)
	if err := s.repo.CreateWindow(ctx, &dbWindow); err != nil {
		return nil, err
	}

	return &StartResult{
		WindowID:  window.ID,
		ShiftID:   shiftID,
		StartTime: startMillis,
		Status:    "started",
	}, nil
}

// validateAssignment checks the task/project/employee relationships for a
// session start and returns the loaded task and project on success. Every
// failure is a field-attributed validation error.
func (s *windowServiceImpl) validateAssignment(ctx context.Context, employeeID, organizationID, projectID, taskID string) (*domain.Task, *domain.Project, error) {
	validationError := validation.NewValidationError()

	dbTask, err := s.repo.GetTask(ctx, organizationID, taskID)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			validationError.AddInvalidValueError("taskId", taskID, "task not found in organization")
			return nil, nil, validationError
		}
		return nil, nil, err
	}
	task := s.mapper.Task.FromDatabase(*dbTask)

	if !task.BelongsToProject(projectID) {
		validationError.AddInvalidValueError("projectId", projectID, "task does not belong to project")
		return nil, nil, validationError
	}

	dbProject, err := s.repo.GetProject(ctx, organizationID, projectID)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			validationError.AddInvalidValueError("projectId", projectID, "project not found in organization")
			return nil, nil, validationError
		}
		return nil, nil, err
	}
	project := s.mapper.Project.FromDatabase(*dbProject)

	dbEmployee, err := s.repo.GetEmployee(ctx, organizationID, employeeID)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			validationError.AddInvalidValueError("employeeId", employeeID, "employee not found in organization")
			return nil, nil, validationError
		}
		return nil, nil, err
	}
	employee := s.mapper.Employee.FromDatabase(*dbEmployee)

	if !employee.IsAssignedToProject(projectID) {
		validationError.AddNotAssignedError("projectId", projectID)
	}
	if !employee.IsAssignedToTask(taskID) {
		validationError.AddNotAssignedError("taskId", taskID)
	}
	if err := validationError.ErrorOrNil(); err != nil {
		return nil, nil, err
	}

	if employee.IsDeactivated() {
		validationError.AddInvalidValueError("employeeId", employeeID, "employee is deactivated")
		return nil, nil, validationError
	}

	return &task, &project, nil
}

// StopSession closes the open window identified by (windowId, employeeId).
// The billable amount uses the rate snapshot recorded at start, never a
// freshly re-resolved rate.
func (s *windowServiceImpl) StopSession(ctx context.Context, windowID, employeeID string, req StopRequest) (*StopResult, error) {
	if err := s.validator.ValidateWindowID(windowID); err != nil {
		return nil, err
	}

	dbWindow, err := s.repo.GetOpenWindowByID(ctx, windowID, employeeID)
	if err != nil {
		return nil, err
	}
	window := s.mapper.Window.FromDatabase(*dbWindow)

	nowMillis := s.now().UnixMilli()
	endMillis := nowMillis
	if req.EndTime != nil {
		endMillis = *req.EndTime
	}

	if err := s.validator.ValidateStop(window.Start, endMillis); err != nil {
		return nil, err
	}

	window = window.Stop(endMillis)
	if req.Note != nil {
		window.Note = *req.Note
	}
	if req.DeletedScreenshots != nil {
		window.DeletedScreenshots = *req.DeletedScreenshots
	}
	window.UpdatedAt = nowMillis

	closed := s.mapper.Window.ToDatabase(window)
	if err := s.repo.CloseWindow(ctx, &closed); err != nil {
		return nil, err
	}

	duration := endMillis - window.Start
	return &StopResult{
		WindowID:       window.ID,
		Duration:       duration,
		BillableAmount: domain.Hours(duration) * window.BillRate,
		Status:         "stopped",
	}, nil
}

// GetCurrentSession returns the employee's open window with a live-computed
// duration. Pure read, no mutation.
func (s *windowServiceImpl) GetCurrentSession(ctx context.Context, employeeID string) (*CurrentSession, error) {
	dbWindow, err := s.repo.GetOpenWindow(ctx, employeeID)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return &CurrentSession{Active: false}, nil
		}
		return nil, err
	}

	window := s.mapper.Window.FromDatabase(*dbWindow)
	return &CurrentSession{
		Active:   true,
		Window:   &window,
		Duration: window.Duration(s.now().UnixMilli()),
	}, nil
}

// Heartbeat refreshes the liveness signal on an open window.
func (s *windowServiceImpl) Heartbeat(ctx context.Context, windowID, employeeID string) error {
	if err := s.validator.ValidateWindowID(windowID); err != nil {
		return err
	}

	if _, err := s.repo.GetOpenWindowByID(ctx, windowID, employeeID); err != nil {
		return err
	}

	return s.repo.UpdateHeartbeat(ctx, windowID, s.now().UnixMilli())
}
