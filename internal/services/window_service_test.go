package services

import (
	"context"
	"testing"
	"time"

	"worktrack/internal/errors"
	"worktrack/internal/repository/sqlite"
	"worktrack/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowService_StartSession(t *testing.T) {
	tests := []struct {
		name           string
		mutate         func(req *StartRequest)
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name: "should start session with valid request",
		},
		{
			name: "should return validation error for missing hwid",
			mutate: func(req *StartRequest) {
				req.HWID = ""
			},
			errorAssertion: func(t *testing.T, err error) {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "hwid")
			},
		},
		{
			name: "should return validation error for missing project",
			mutate: func(req *StartRequest) {
				req.ProjectID = ""
			},
			errorAssertion: func(t *testing.T, err error) {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "projectId")
			},
		},
		{
			name: "should return validation error for out-of-range timezone offset",
			mutate: func(req *StartRequest) {
				req.TimezoneOffset = 15 * 3600000
			},
			errorAssertion: func(t *testing.T, err error) {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "timezoneOffset")
			},
		},
		{
			name: "should return validation error for unknown task",
			mutate: func(req *StartRequest) {
				req.TaskID = "task-nope"
			},
			errorAssertion: func(t *testing.T, err error) {
				assert.Error(t, err)
				assert.True(t, validation.IsValidationError(err))
				assert.Contains(t, err.Error(), "taskId")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			repo := setupRepo(t)
			seedFixtures(t, repo)
			service := newTestWindowService(t, repo)
			ctx := context.Background()

			req := startRequest()
			if tt.mutate != nil {
				tt.mutate(&req)
			}

			// Act
			result, err := service.StartSession(ctx, testEmployeeID, testOrgID, req)

			// Assert
			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
				assert.NotEmpty(t, result.WindowID)
				assert.NotEmpty(t, result.ShiftID)
				assert.Equal(t, "started", result.Status)
			}
		})
	}
}

func TestWindowService_StartSession_RejectsSecondOpenSession(t *testing.T) {
	repo := setupRepo(t)
	seedFixtures(t, repo)
	service := newTestWindowService(t, repo)
	ctx := context.Background()

	_, err := service.StartSession(ctx, testEmployeeID, testOrgID, startRequest())
	require.NoError(t, err)

	result, err := service.StartSession(ctx, testEmployeeID, testOrgID, startRequest())
	assert.Nil(t, result)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.True(t, appErr.IsType(errors.ErrorTypeConflict))
}

func TestWindowService_StartSession_RejectsDifferentHardware(t *testing.T) {
	repo := setupRepo(t)
	seedFixtures(t, repo)
	service := newTestWindowService(t, repo)
	ctx := context.Background()

	_, err := service.StartSession(ctx, testEmployeeID, testOrgID, startRequest())
	require.NoError(t, err)

	// Same employee, second device while the first session is still open.
	req := startRequest()
	req.HWID = "hwid-b"
	result, err := service.StartSession(ctx, testEmployeeID, testOrgID, req)

	assert.Nil(t, result)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.True(t, appErr.IsType(errors.ErrorTypeConflict))
	assert.Contains(t, appErr.Message, "hardware")
}

func TestWindowService_StartSession_RejectsUnassignedEmployee(t *testing.T) {
	repo := setupRepo(t)
	seedFixtures(t, repo)
	ctx := context.Background()
	now := time.Now().UnixMilli()

	// A second project/task the employee is not assigned to.
	require.NoError(t, repo.CreateProject(ctx, &sqlite.Project{
		ID: "proj-2", OrganizationID: testOrgID, Name: "Internal", CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, repo.CreateTask(ctx, &sqlite.Task{
		ID: "task-2", OrganizationID: testOrgID, ProjectID: "proj-2", Name: "Chores",
		Status: "To do", CreatedAt: now, UpdatedAt: now,
	}))

	service := newTestWindowService(t, repo)
	req := startRequest()
	req.ProjectID = "proj-2"
	req.TaskID = "task-2"

	result, err := service.StartSession(ctx, testEmployeeID, testOrgID, req)

	assert.Nil(t, result)
	require.True(t, validation.IsValidationError(err))
	validationErr := err.(*validation.ValidationError)
	assert.Len(t, validationErr.Errors, 2)
}

func TestWindowService_StartSession_RejectsDeactivatedEmployee(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := time.Now().UnixMilli()

	require.NoError(t, repo.CreateProject(ctx, &sqlite.Project{
		ID: testProjectID, OrganizationID: testOrgID, Name: "Website rebuild", CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, repo.CreateTask(ctx, &sqlite.Task{
		ID: testTaskID, OrganizationID: testOrgID, ProjectID: testProjectID, Name: "Landing page",
		Status: "To do", CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, repo.CreateEmployee(ctx, &sqlite.Employee{
		ID: testEmployeeID, OrganizationID: testOrgID, Name: "Ada Example", Email: "ada@example.com",
		DeactivatedAt: int64Ptr(now - 1000),
		Projects:      []string{testProjectID},
		Tasks:         []string{testTaskID},
		CreatedAt:     now, UpdatedAt: now,
	}))

	service := newTestWindowService(t, repo)
	result, err := service.StartSession(ctx, testEmployeeID, testOrgID, startRequest())

	assert.Nil(t, result)
	require.True(t, validation.IsValidationError(err))
	assert.Contains(t, err.Error(), "deactivated")
}

func TestWindowService_StopSession(t *testing.T) {
	base := time.Now().UnixMilli()

	tests := []struct {
		name           string
		endOffset      int64
		expectDuration int64
		expectBillable float64
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:           "should compute duration and billable amount from explicit end",
			endOffset:      2 * 3600000,
			expectDuration: 2 * 3600000,
			expectBillable: 20, // 2h at the project's 10/h bill rate
		},
		{
			name:      "should reject end before start",
			endOffset: -1000,
			errorAssertion: func(t *testing.T, err error) {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "endTime")
			},
		},
		{
			name:      "should reject session longer than 24 hours",
			endOffset: validation.MaxSessionMillis + 1,
			errorAssertion: func(t *testing.T, err error) {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "endTime")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			repo := setupRepo(t)
			seedFixtures(t, repo)
			service := newTestWindowService(t, repo)
			service.now = func() time.Time { return time.UnixMilli(base) }
			ctx := context.Background()

			started, err := service.StartSession(ctx, testEmployeeID, testOrgID, startRequest())
			require.NoError(t, err)

			end := base + tt.endOffset

			// Act
			result, err := service.StopSession(ctx, started.WindowID, testEmployeeID, StopRequest{EndTime: &end})

			// Assert
			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, started.WindowID, result.WindowID)
				assert.Equal(t, tt.expectDuration, result.Duration)
				assert.InDelta(t, tt.expectBillable, result.BillableAmount, 0.0001)
				assert.Equal(t, "stopped", result.Status)
			}
		})
	}
}

func TestWindowService_StopSession_UsesRateSnapshotFromStart(t *testing.T) {
	base := time.Now().UnixMilli()

	repo := setupRepo(t)
	seedFixtures(t, repo)
	service := newTestWindowService(t, repo)
	service.now = func() time.Time { return time.UnixMilli(base) }
	ctx := context.Background()

	started, err := service.StartSession(ctx, testEmployeeID, testOrgID, startRequest())
	require.NoError(t, err)

	// The project rate doubles mid-session. The window keeps the rate it
	// was started with.
	require.NoError(t, repo.UpdateProjectPayroll(ctx, testOrgID, testProjectID,
		floatPtr(20), nil, nil, nil))

	end := base + 2*3600000
	result, err := service.StopSession(ctx, started.WindowID, testEmployeeID, StopRequest{EndTime: &end})
	require.NoError(t, err)
	assert.InDelta(t, 20.0, result.BillableAmount, 0.0001)
}

func TestWindowService_StopSession_NotFoundForClosedWindow(t *testing.T) {
	repo := setupRepo(t)
	seedFixtures(t, repo)
	service := newTestWindowService(t, repo)
	ctx := context.Background()

	started, err := service.StartSession(ctx, testEmployeeID, testOrgID, startRequest())
	require.NoError(t, err)

	_, err = service.StopSession(ctx, started.WindowID, testEmployeeID, StopRequest{})
	require.NoError(t, err)

	// Second stop on an already-closed window.
	result, err := service.StopSession(ctx, started.WindowID, testEmployeeID, StopRequest{})
	assert.Nil(t, result)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.True(t, appErr.IsType(errors.ErrorTypeNotFound))
}

func TestWindowService_StopSession_OverridesNoteAndDeletedScreenshots(t *testing.T) {
	repo := setupRepo(t)
	seedFixtures(t, repo)
	service := newTestWindowService(t, repo)
	ctx := context.Background()

	started, err := service.StartSession(ctx, testEmployeeID, testOrgID, startRequest())
	require.NoError(t, err)

	note := "wrapped up early"
	deleted := int64(3)
	_, err = service.StopSession(ctx, started.WindowID, testEmployeeID, StopRequest{
		Note:               &note,
		DeletedScreenshots: &deleted,
	})
	require.NoError(t, err)

	stored, err := repo.GetWindow(ctx, started.WindowID)
	require.NoError(t, err)
	assert.Equal(t, note, stored.Note)
	assert.Equal(t, deleted, stored.DeletedScreenshots)
	require.NotNil(t, stored.End)
}

func TestWindowService_GetCurrentSession(t *testing.T) {
	repo := setupRepo(t)
	seedFixtures(t, repo)
	service := newTestWindowService(t, repo)
	ctx := context.Background()

	// No session yet.
	current, err := service.GetCurrentSession(ctx, testEmployeeID)
	require.NoError(t, err)
	assert.False(t, current.Active)
	assert.Nil(t, current.Window)

	started, err := service.StartSession(ctx, testEmployeeID, testOrgID, startRequest())
	require.NoError(t, err)

	current, err = service.GetCurrentSession(ctx, testEmployeeID)
	require.NoError(t, err)
	assert.True(t, current.Active)
	require.NotNil(t, current.Window)
	assert.Equal(t, started.WindowID, current.Window.ID)
	assert.GreaterOrEqual(t, current.Duration, int64(0))
}

func TestWindowService_Heartbeat(t *testing.T) {
	base := time.Now().UnixMilli()

	repo := setupRepo(t)
	seedFixtures(t, repo)
	service := newTestWindowService(t, repo)
	service.now = func() time.Time { return time.UnixMilli(base) }
	ctx := context.Background()

	started, err := service.StartSession(ctx, testEmployeeID, testOrgID, startRequest())
	require.NoError(t, err)

	service.now = func() time.Time { return time.UnixMilli(base + 60000) }
	require.NoError(t, service.Heartbeat(ctx, started.WindowID, testEmployeeID))

	stored, err := repo.GetWindow(ctx, started.WindowID)
	require.NoError(t, err)
	assert.Equal(t, base+60000, stored.LastHeartbeat)

	err = service.Heartbeat(ctx, "window-nope", testEmployeeID)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.True(t, appErr.IsType(errors.ErrorTypeNotFound))
}
