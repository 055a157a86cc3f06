package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"worktrack/internal/repository/sqlite"

	"github.com/stretchr/testify/require"
)

const (
	testOrgID      = "org-1"
	testEmployeeID = "emp-1"
	testProjectID  = "proj-1"
	testTaskID     = "task-1"
	testHWID       = "hwid-a"
)

func setupRepo(t *testing.T) sqlite.Repository {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func floatPtr(f float64) *float64 {
	return &f
}

func int64Ptr(v int64) *int64 {
	return &v
}

// seedFixtures creates the default employee/project/task graph used by most
// service tests: one active employee assigned to one project and one task,
// project bill rate 10, no task overrides.
func seedFixtures(t *testing.T, repo sqlite.Repository) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UnixMilli()

	require.NoError(t, repo.CreateProject(ctx, &sqlite.Project{
		ID:             testProjectID,
		OrganizationID: testOrgID,
		Name:           "Website rebuild",
		Billable:       true,
		BillRate:       floatPtr(10),
		CreatedAt:      now,
		UpdatedAt:      now,
	}))

	require.NoError(t, repo.CreateTask(ctx, &sqlite.Task{
		ID:             testTaskID,
		OrganizationID: testOrgID,
		ProjectID:      testProjectID,
		Name:           "Landing page",
		Status:         "To do",
		CreatedAt:      now,
		UpdatedAt:      now,
	}))

	require.NoError(t, repo.CreateEmployee(ctx, &sqlite.Employee{
		ID:             testEmployeeID,
		OrganizationID: testOrgID,
		Name:           "Ada Example",
		Email:          "ada@example.com",
		Projects:       []string{testProjectID},
		Tasks:          []string{testTaskID},
		CreatedAt:      now,
		UpdatedAt:      now,
	}))
}

func newTestWindowService(t *testing.T, repo sqlite.Repository) *windowServiceImpl {
	t.Helper()
	logger := slog.Default()
	service := NewWindowService(repo, NewFraudGuard(repo, logger), NewShiftEngine(repo), NewRateResolver())
	return service.(*windowServiceImpl)
}

func startRequest() StartRequest {
	return StartRequest{
		ProjectID:      testProjectID,
		TaskID:         testTaskID,
		Type:           "manual",
		Computer:       "ada-laptop",
		HWID:           testHWID,
		OS:             "linux",
		OSVersion:      "6.1",
		TimezoneOffset: -3600000,
	}
}
