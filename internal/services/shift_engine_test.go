package services

import (
	"context"
	"testing"
	"time"

	"worktrack/internal/repository/sqlite"
	"worktrack/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createClosedWindow(t *testing.T, repo sqlite.Repository, id, employeeID, shiftID string, startMillis, endMillis int64) {
	t.Helper()
	require.NoError(t, repo.CreateWindow(context.Background(), &sqlite.Window{
		ID:              id,
		EmployeeID:      employeeID,
		OrganizationID:  testOrgID,
		ProjectID:       testProjectID,
		TaskID:          testTaskID,
		ShiftID:         shiftID,
		Start:           startMillis,
		End:             int64Ptr(endMillis),
		StartTranslated: startMillis,
		EndTranslated:   int64Ptr(endMillis),
		Type:            "manual",
		HWID:            testHWID,
		LastHeartbeat:   endMillis,
		CreatedAt:       startMillis,
		UpdatedAt:       endMillis,
	}))
}

func TestShiftEngine_Resolve_GapPolicy(t *testing.T) {
	base := time.Now().UnixMilli()

	tests := []struct {
		name        string
		gap         int64
		expectReuse bool
	}{
		{
			name:        "should continue shift when new start is within the gap",
			gap:         time.Hour.Milliseconds(),
			expectReuse: true,
		},
		{
			name:        "should continue shift exactly at the gap boundary",
			gap:         ShiftGapMillis,
			expectReuse: true,
		},
		{
			name:        "should start new shift one millisecond past the gap",
			gap:         ShiftGapMillis + 1,
			expectReuse: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			repo := setupRepo(t)
			createClosedWindow(t, repo, "w-prev", testEmployeeID, "shift-prev", base-7200000, base)

			engine := NewShiftEngine(repo)
			engine.now = func() time.Time { return time.UnixMilli(base + tt.gap) }

			// Act
			shiftID, err := engine.Resolve(context.Background(), testEmployeeID, "")

			// Assert
			require.NoError(t, err)
			if tt.expectReuse {
				assert.Equal(t, "shift-prev", shiftID)
			} else {
				assert.NotEqual(t, "shift-prev", shiftID)
				assert.NotEmpty(t, shiftID)
			}
		})
	}
}

func TestShiftEngine_Resolve_NoPriorWindow(t *testing.T) {
	repo := setupRepo(t)
	engine := NewShiftEngine(repo)

	shiftID, err := engine.Resolve(context.Background(), testEmployeeID, "")

	require.NoError(t, err)
	assert.NotEmpty(t, shiftID)
}

func TestShiftEngine_Resolve_UsesMostRecentClosedWindow(t *testing.T) {
	base := time.Now().UnixMilli()
	repo := setupRepo(t)

	// An old shift far in the past and a fresh one just closed.
	createClosedWindow(t, repo, "w-old", testEmployeeID, "shift-old", base-90000000, base-86400000)
	createClosedWindow(t, repo, "w-new", testEmployeeID, "shift-new", base-3600000, base-60000)

	engine := NewShiftEngine(repo)
	engine.now = func() time.Time { return time.UnixMilli(base) }

	shiftID, err := engine.Resolve(context.Background(), testEmployeeID, "")

	require.NoError(t, err)
	assert.Equal(t, "shift-new", shiftID)
}

func TestShiftEngine_Resolve_ExplicitShiftID(t *testing.T) {
	base := time.Now().UnixMilli()

	tests := []struct {
		name           string
		shiftID        string
		ownerEmployee  string
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:          "should accept explicit shift owned by the same employee",
			shiftID:       "shift-mine",
			ownerEmployee: testEmployeeID,
		},
		{
			name:    "should accept explicit shift with no windows",
			shiftID: "shift-fresh",
		},
		{
			name:          "should reject explicit shift owned by another employee",
			shiftID:       "shift-theirs",
			ownerEmployee: "emp-2",
			errorAssertion: func(t *testing.T, err error) {
				require.True(t, validation.IsValidationError(err))
				assert.Contains(t, err.Error(), "shiftId")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			repo := setupRepo(t)
			if tt.ownerEmployee != "" {
				createClosedWindow(t, repo, "w-owner", tt.ownerEmployee, tt.shiftID, base-7200000, base-3600000)
			}
			engine := NewShiftEngine(repo)

			// Act
			shiftID, err := engine.Resolve(context.Background(), testEmployeeID, tt.shiftID)

			// Assert
			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				assert.Empty(t, shiftID)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.shiftID, shiftID)
			}
		})
	}
}
