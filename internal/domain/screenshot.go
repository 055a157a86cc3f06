package domain

// Screenshot represents a capture taken during an open window. It inherits
// the device fingerprint and scoping references from its parent window at
// creation time.
type Screenshot struct {
	ID             string `json:"id"`
	WindowID       string `json:"windowId"`
	EmployeeID     string `json:"employeeId"`
	OrganizationID string `json:"organizationId"`
	TeamID         string `json:"teamId"`
	ProjectID      string `json:"projectId"`
	TaskID         string `json:"taskId"`
	ShiftID        string `json:"shiftId"`

	TakenAt           int64 `json:"takenAt"`
	TimezoneOffset    int64 `json:"timezoneOffset"`
	TakenAtTranslated int64 `json:"takenAtTranslated"`

	HWID  string `json:"hwid"`
	App   string `json:"app"`
	Title string `json:"title"`
	Site  string `json:"site"`

	CreatedAt int64 `json:"createdAt"`
}

// IsValid checks if the screenshot has valid data.
func (s Screenshot) IsValid() bool {
	return s.ID != "" && s.WindowID != "" && s.EmployeeID != "" && s.TakenAt > 0
}
