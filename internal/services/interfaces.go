package services

import (
	"context"

	"worktrack/internal/domain"
)

// StartRequest carries the client fields of a start-tracking request.
type StartRequest struct {
	ProjectID      string `json:"projectId"`
	TaskID         string `json:"taskId"`
	Type           string `json:"type"`
	Note           string `json:"note"`
	Computer       string `json:"computer"`
	Domain         string `json:"domain"`
	HWID           string `json:"hwid"`
	OS             string `json:"os"`
	OSVersion      string `json:"osVersion"`
	TimezoneOffset int64  `json:"timezoneOffset"`
	ShiftID        string `json:"shiftId,omitempty"`
}

// StartResult is the response of a successful session start.
type StartResult struct {
	WindowID  string `json:"windowId"`
	ShiftID   string `json:"shiftId"`
	StartTime int64  `json:"startTime"`
	Status    string `json:"status"`
}

// StopRequest carries the optional fields of a stop-tracking request. A nil
// EndTime means "stop now".
type StopRequest struct {
	EndTime            *int64  `json:"endTime,omitempty"`
	Note               *string `json:"note,omitempty"`
	DeletedScreenshots *int64  `json:"deletedScreenshots,omitempty"`
}

// StopResult is the response of a successful session stop. Duration is in
// milliseconds; BillableAmount uses the rate snapshot recorded at start.
type StopResult struct {
	WindowID       string  `json:"windowId"`
	Duration       int64   `json:"duration"`
	BillableAmount float64 `json:"billableAmount"`
	Status         string  `json:"status"`
}

// CurrentSession describes the employee's open window, if any. Duration is
// computed live against the current time and never persisted.
type CurrentSession struct {
	Active   bool           `json:"active"`
	Window   *domain.Window `json:"window,omitempty"`
	Duration int64          `json:"duration,omitempty"`
}

// UploadRequest carries the fields of a screenshot upload.
type UploadRequest struct {
	WindowID       string `json:"windowId"`
	Timestamp      int64  `json:"timestamp"`
	TimezoneOffset int64  `json:"timezoneOffset"`
	App            string `json:"app,omitempty"`
	Title          string `json:"title,omitempty"`
	Site           string `json:"site,omitempty"`
}

// SweepResult reports which open windows a sweep flagged.
type SweepResult struct {
	Message          string   `json:"message"`
	UpdatedWindowIDs []string `json:"updatedWindowIds"`
}

// WindowFilter narrows analytics window reads.
type WindowFilter struct {
	EmployeeID *string
	ProjectID  *string
	TaskID     *string
	ShiftID    *string
	StartTime  *int64
	EndTime    *int64
	OpenOnly   bool
}

// ProjectTime is the per-project aggregation returned by the analytics
// project-time read.
type ProjectTime struct {
	ProjectID      string  `json:"projectId"`
	WindowCount    int     `json:"windowCount"`
	TotalMillis    int64   `json:"totalMillis"`
	BillableAmount float64 `json:"billableAmount"`
}

// WindowService orchestrates the tracked-session lifecycle.
type WindowService interface {
	StartSession(ctx context.Context, employeeID, organizationID string, req StartRequest) (*StartResult, error)
	StopSession(ctx context.Context, windowID, employeeID string, req StopRequest) (*StopResult, error)
	GetCurrentSession(ctx context.Context, employeeID string) (*CurrentSession, error)
	Heartbeat(ctx context.Context, windowID, employeeID string) error
}

// ScreenshotService persists screenshots and their heartbeat side effect.
type ScreenshotService interface {
	Upload(ctx context.Context, employeeID string, req UploadRequest) (*domain.Screenshot, error)
}

// Sweeper flags open windows with lapsed heartbeats.
type Sweeper interface {
	Sweep(ctx context.Context) (*SweepResult, error)
}

// AnalyticsService provides read-only window consumers.
type AnalyticsService interface {
	SearchWindows(ctx context.Context, organizationID string, filter WindowFilter) ([]domain.Window, error)
	ProjectTime(ctx context.Context, organizationID string, filter WindowFilter) ([]ProjectTime, error)
}
