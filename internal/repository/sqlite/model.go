package sqlite

// Database record types for the entity store. Timestamps are millisecond
// Unix integers; pointer fields map to NULL-able columns.

// Employee represents an employee row. Project and task assignments live
// in the employee_projects / employee_tasks join tables and are loaded
// alongside the row.
type Employee struct {
	ID             string
	OrganizationID string
	TeamID         string
	Name           string
	Email          string
	DeactivatedAt  *int64
	Projects       []string
	Tasks          []string
	CreatedAt      int64
	UpdatedAt      int64
}

// Project represents a project row with its optional payroll columns.
type Project struct {
	ID               string
	OrganizationID   string
	Name             string
	Billable         bool
	Archived         bool
	BillRate         *float64
	OvertimeBillRate *float64
	PayRate          *float64
	OvertimePayRate  *float64
	CreatedAt        int64
	UpdatedAt        int64
}

// Task represents a task row. Payroll columns are overrides on top of the
// parent project's configuration.
type Task struct {
	ID               string
	OrganizationID   string
	ProjectID        string
	Name             string
	Status           string
	BillRate         *float64
	OvertimeBillRate *float64
	PayRate          *float64
	OvertimePayRate  *float64
	CreatedAt        int64
	UpdatedAt        int64
}

// Window represents a tracked session row. End == nil marks an open
// session; the partial unique index on (employee_id) WHERE end_ms IS NULL
// guarantees at most one open row per employee.
type Window struct {
	ID             string
	EmployeeID     string
	OrganizationID string
	TeamID         string
	ProjectID      string
	TaskID         string
	ShiftID        string

	Start           int64
	End             *int64
	TimezoneOffset  int64
	StartTranslated int64
	EndTranslated   *int64

	Type     string
	Note     string
	Domain   string
	Computer string

	HWID      string
	OS        string
	OSVersion string

	BillRate         float64
	OvertimeBillRate float64
	PayRate          float64
	OvertimePayRate  float64

	LastHeartbeat     int64
	LastFlagged       *int64
	MissedScreenshots []int64

	NegativeTime       int64
	DeletedScreenshots int64
	Processed          bool

	CreatedAt int64
	UpdatedAt int64
}

// Screenshot represents a screenshot row scoped to its parent window.
type Screenshot struct {
	ID             string
	WindowID       string
	EmployeeID     string
	OrganizationID string
	TeamID         string
	ProjectID      string
	TaskID         string
	ShiftID        string

	TakenAt           int64
	TimezoneOffset    int64
	TakenAtTranslated int64

	HWID  string
	App   string
	Title string
	Site  string

	CreatedAt int64
}

// Token kinds for bearer principals.
const (
	TokenKindEmployee = "employee"
	TokenKindAPI      = "api"
)

// Token represents a bearer token row mapping to a principal.
type Token struct {
	Token          string
	Kind           string
	EmployeeID     string
	OrganizationID string
}
