package services

import (
	"context"
	"testing"
	"time"

	"worktrack/internal/repository/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createBilledWindow(t *testing.T, repo sqlite.Repository, id, employeeID, projectID string, billRate float64, startMillis int64, endMillis *int64) {
	t.Helper()
	heartbeat := startMillis
	if endMillis != nil {
		heartbeat = *endMillis
	}
	require.NoError(t, repo.CreateWindow(context.Background(), &sqlite.Window{
		ID:              id,
		EmployeeID:      employeeID,
		OrganizationID:  testOrgID,
		ProjectID:       projectID,
		TaskID:          testTaskID,
		ShiftID:         "shift-1",
		Start:           startMillis,
		End:             endMillis,
		StartTranslated: startMillis,
		EndTranslated:   endMillis,
		Type:            "manual",
		HWID:            testHWID,
		BillRate:        billRate,
		LastHeartbeat:   heartbeat,
		CreatedAt:       startMillis,
		UpdatedAt:       heartbeat,
	}))
}

func TestAnalyticsService_SearchWindows(t *testing.T) {
	base := time.Now().UnixMilli()
	hour := time.Hour.Milliseconds()

	repo := setupRepo(t)
	createBilledWindow(t, repo, "w-1", testEmployeeID, testProjectID, 10, base-4*hour, int64Ptr(base-3*hour))
	createBilledWindow(t, repo, "w-2", testEmployeeID, "proj-2", 20, base-2*hour, int64Ptr(base-hour))
	createBilledWindow(t, repo, "w-3", "emp-2", testProjectID, 10, base-hour, nil)

	service := NewAnalyticsService(repo)
	ctx := context.Background()

	tests := []struct {
		name      string
		filter    WindowFilter
		expectIDs []string
	}{
		{
			name:      "should return all organization windows ordered by start",
			expectIDs: []string{"w-1", "w-2", "w-3"},
		},
		{
			name:      "should filter by employee",
			filter:    WindowFilter{EmployeeID: strPtr(testEmployeeID)},
			expectIDs: []string{"w-1", "w-2"},
		},
		{
			name:      "should filter by project",
			filter:    WindowFilter{ProjectID: strPtr(testProjectID)},
			expectIDs: []string{"w-1", "w-3"},
		},
		{
			name:      "should filter open windows only",
			filter:    WindowFilter{OpenOnly: true},
			expectIDs: []string{"w-3"},
		},
		{
			name:      "should filter by start time range",
			filter:    WindowFilter{StartTime: int64Ptr(base - 2*hour - 1)},
			expectIDs: []string{"w-2", "w-3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			windows, err := service.SearchWindows(ctx, testOrgID, tt.filter)
			require.NoError(t, err)

			ids := make([]string, len(windows))
			for i, window := range windows {
				ids[i] = window.ID
			}
			assert.Equal(t, tt.expectIDs, ids)
		})
	}
}

func TestAnalyticsService_SearchWindows_IsolatesOrganizations(t *testing.T) {
	base := time.Now().UnixMilli()

	repo := setupRepo(t)
	createBilledWindow(t, repo, "w-1", testEmployeeID, testProjectID, 10, base-3600000, int64Ptr(base))

	service := NewAnalyticsService(repo)
	windows, err := service.SearchWindows(context.Background(), "org-other", WindowFilter{})

	require.NoError(t, err)
	assert.Empty(t, windows)
}

func TestAnalyticsService_ProjectTime(t *testing.T) {
	base := time.Now().UnixMilli()
	hour := time.Hour.Milliseconds()

	repo := setupRepo(t)
	// Two closed hours at 10/h on the first project, one closed hour at
	// 20/h on the second, plus an open window contributing live duration.
	createBilledWindow(t, repo, "w-1", testEmployeeID, testProjectID, 10, base-8*hour, int64Ptr(base-7*hour))
	createBilledWindow(t, repo, "w-2", "emp-2", testProjectID, 10, base-6*hour, int64Ptr(base-5*hour))
	createBilledWindow(t, repo, "w-3", testEmployeeID, "proj-2", 20, base-4*hour, int64Ptr(base-3*hour))
	createBilledWindow(t, repo, "w-4", "emp-2", "proj-2", 20, base-hour, nil)

	service := NewAnalyticsService(repo).(*analyticsServiceImpl)
	service.now = func() time.Time { return time.UnixMilli(base) }

	results, err := service.ProjectTime(context.Background(), testOrgID, WindowFilter{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	first := results[0]
	assert.Equal(t, "proj-1", first.ProjectID)
	assert.Equal(t, 2, first.WindowCount)
	assert.Equal(t, 2*hour, first.TotalMillis)
	assert.InDelta(t, 20.0, first.BillableAmount, 0.0001)

	second := results[1]
	assert.Equal(t, "proj-2", second.ProjectID)
	assert.Equal(t, 2, second.WindowCount)
	assert.Equal(t, 2*hour, second.TotalMillis)
	assert.InDelta(t, 40.0, second.BillableAmount, 0.0001)
}

func strPtr(s string) *string {
	return &s
}
