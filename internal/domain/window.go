package domain

// MillisPerHour is the number of milliseconds in one hour, used when
// converting tracked durations into billable hours.
const MillisPerHour = int64(3600000)

// Window represents one continuous tracked work session in the domain model.
// This is a pure domain model without database-specific concerns.
// Timestamps are millisecond Unix times; End == nil means the session is
// open/active.
type Window struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employeeId"`
	OrganizationID string `json:"organizationId"`
	TeamID         string `json:"teamId"`
	ProjectID      string `json:"projectId"`
	TaskID         string `json:"taskId"`
	ShiftID        string `json:"shiftId"`

	Start           int64  `json:"start"`
	End             *int64 `json:"end"`
	TimezoneOffset  int64  `json:"timezoneOffset"`
	StartTranslated int64  `json:"startTranslated"`
	EndTranslated   *int64 `json:"endTranslated"`

	Type   string `json:"type"`
	Note   string `json:"note"`
	Domain string `json:"domain"`

	// Device fingerprint, captured at start and never changed.
	Computer  string `json:"computer"`
	HWID      string `json:"hwid"`
	OS        string `json:"os"`
	OSVersion string `json:"osVersion"`

	// Rate snapshot taken at start time. Immutable once recorded; later
	// edits to the task or project payroll config do not touch it.
	BillRate         float64 `json:"billRate"`
	OvertimeBillRate float64 `json:"overtimeBillRate"`
	PayRate          float64 `json:"payRate"`
	OvertimePayRate  float64 `json:"overtimePayRate"`

	LastHeartbeat     int64   `json:"lastHeartbeat"`
	LastFlagged       *int64  `json:"lastFlagged,omitempty"`
	MissedScreenshots []int64 `json:"missedScreenshots"`

	NegativeTime       int64 `json:"negativeTime"`
	DeletedScreenshots int64 `json:"deletedScreenshots"`
	Processed          bool  `json:"processed"`

	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

// IsOpen returns true if the window is still being tracked (no end time).
func (w Window) IsOpen() bool {
	return w.End == nil
}

// Duration returns the tracked duration in milliseconds. For an open window
// the duration is computed up to nowMillis.
func (w Window) Duration(nowMillis int64) int64 {
	if w.End == nil {
		return nowMillis - w.Start
	}
	return *w.End - w.Start
}

// BillableAmount returns hours of the closed window multiplied by the bill
// rate snapshot recorded at start. For an open window it returns 0.
func (w Window) BillableAmount() float64 {
	if w.End == nil {
		return 0
	}
	return Hours(*w.End-w.Start) * w.BillRate
}

// Stop returns a copy of the window closed at endMillis, with the
// timezone-adjusted end computed once from the window's stored offset.
func (w Window) Stop(endMillis int64) Window {
	translated := endMillis - w.TimezoneOffset
	w.End = &endMillis
	w.EndTranslated = &translated
	return w
}

// IsValid checks if the window has valid data.
func (w Window) IsValid() bool {
	if w.ID == "" || w.EmployeeID == "" || w.OrganizationID == "" {
		return false
	}
	if w.Start <= 0 {
		return false
	}
	if w.End != nil && *w.End <= w.Start {
		return false
	}
	return true
}

// Hours converts a millisecond duration into fractional hours.
func Hours(millis int64) float64 {
	return float64(millis) / float64(MillisPerHour)
}
