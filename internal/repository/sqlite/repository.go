package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"worktrack/internal/errors"
	"worktrack/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// windowColumns is the canonical column list matched by ScanWindow.
const windowColumns = `id, employee_id, organization_id, team_id, project_id, task_id, shift_id,
	start_ms, end_ms, timezone_offset_ms, start_translated_ms, end_translated_ms,
	type, note, domain, computer, hwid, os, os_version,
	bill_rate, overtime_bill_rate, pay_rate, overtime_pay_rate,
	last_heartbeat_ms, last_flagged_ms, missed_screenshots,
	negative_time_ms, deleted_screenshots, processed, created_at_ms, updated_at_ms`

// SearchOptions contains the window search parameters used by analytics
// reads. OrganizationID is mandatory; everything else narrows the result.
type SearchOptions struct {
	OrganizationID string
	EmployeeID     *string
	ProjectID      *string
	TaskID         *string
	ShiftID        *string
	StartTime      *int64
	EndTime        *int64
	OpenOnly       bool
}

// Repository defines the interface for entity store operations
type Repository interface {
	// Employee / project / task entities
	CreateEmployee(ctx context.Context, employee *Employee) error
	GetEmployee(ctx context.Context, organizationID, id string) (*Employee, error)
	CreateProject(ctx context.Context, project *Project) error
	GetProject(ctx context.Context, organizationID, id string) (*Project, error)
	UpdateProjectPayroll(ctx context.Context, organizationID, id string, billRate, overtimeBillRate, payRate, overtimePayRate *float64) error
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, organizationID, id string) (*Task, error)

	// Window operations
	CreateWindow(ctx context.Context, window *Window) error
	GetWindow(ctx context.Context, id string) (*Window, error)
	GetOpenWindow(ctx context.Context, employeeID string) (*Window, error)
	GetOpenWindowByID(ctx context.Context, id, employeeID string) (*Window, error)
	GetLastClosedWindow(ctx context.Context, employeeID string) (*Window, error)
	GetShiftOwners(ctx context.Context, shiftID string) ([]string, error)
	CountWindowsByHWID(ctx context.Context, employeeID, hwid string) (int64, error)
	CloseWindow(ctx context.Context, window *Window) error
	UpdateHeartbeat(ctx context.Context, windowID string, heartbeatMillis int64) error
	FindStaleOpenWindows(ctx context.Context, cutoffMillis int64) ([]*Window, error)
	FlagMissedHeartbeats(ctx context.Context, windows []*Window, nowMillis int64) error
	SearchWindows(ctx context.Context, opts SearchOptions) ([]*Window, error)

	// Screenshot operations
	CreateScreenshotWithHeartbeat(ctx context.Context, screenshot *Screenshot, heartbeatMillis int64) error

	// Bearer principals
	CreateToken(ctx context.Context, token *Token) error
	GetToken(ctx context.Context, token string) (*Token, error)

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateEmployee creates an employee row plus its assignment rows
func (r *SQLiteRepository) CreateEmployee(ctx context.Context, employee *Employee) error {
	query := `
	INSERT INTO employees (id, organization_id, team_id, name, email, deactivated_at_ms, created_at_ms, updated_at_ms)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	if err := Execute(ctx, r.db, query,
		employee.ID, employee.OrganizationID, employee.TeamID, employee.Name,
		employee.Email, employee.DeactivatedAt, employee.CreatedAt, employee.UpdatedAt); err != nil {
		return err
	}

	for _, projectID := range employee.Projects {
		if err := Execute(ctx, r.db,
			`INSERT INTO employee_projects (employee_id, project_id) VALUES (?, ?)`,
			employee.ID, projectID); err != nil {
			return err
		}
	}
	for _, taskID := range employee.Tasks {
		if err := Execute(ctx, r.db,
			`INSERT INTO employee_tasks (employee_id, task_id) VALUES (?, ?)`,
			employee.ID, taskID); err != nil {
			return err
		}
	}

	return nil
}

// GetEmployee retrieves an employee by organization and ID, including its
// project and task assignments
func (r *SQLiteRepository) GetEmployee(ctx context.Context, organizationID, id string) (*Employee, error) {
	query := `
	SELECT id, organization_id, team_id, name, email, deactivated_at_ms, created_at_ms, updated_at_ms
	FROM employees
	WHERE id = ? AND organization_id = ?`

	employee, err := QuerySingle(ctx, r.db, query, ScanEmployee, "employee", id, id, organizationID)
	if err != nil {
		return nil, err
	}

	employee.Projects, err = QueryStrings(ctx, r.db,
		`SELECT project_id FROM employee_projects WHERE employee_id = ?`, id)
	if err != nil {
		return nil, err
	}
	employee.Tasks, err = QueryStrings(ctx, r.db,
		`SELECT task_id FROM employee_tasks WHERE employee_id = ?`, id)
	if err != nil {
		return nil, err
	}

	return employee, nil
}

// CreateProject creates a new project
func (r *SQLiteRepository) CreateProject(ctx context.Context, project *Project) error {
	query := `
	INSERT INTO projects (id, organization_id, name, billable, archived,
		bill_rate, overtime_bill_rate, pay_rate, overtime_pay_rate, created_at_ms, updated_at_ms)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	return Execute(ctx, r.db, query,
		project.ID, project.OrganizationID, project.Name,
		BoolToInt(project.Billable), BoolToInt(project.Archived),
		project.BillRate, project.OvertimeBillRate, project.PayRate, project.OvertimePayRate,
		project.CreatedAt, project.UpdatedAt)
}

// GetProject retrieves a project by organization and ID
func (r *SQLiteRepository) GetProject(ctx context.Context, organizationID, id string) (*Project, error) {
	query := `
	SELECT id, organization_id, name, billable, archived,
		bill_rate, overtime_bill_rate, pay_rate, overtime_pay_rate, created_at_ms, updated_at_ms
	FROM projects
	WHERE id = ? AND organization_id = ?`

	return QuerySingle(ctx, r.db, query, ScanProject, "project", id, id, organizationID)
}

// UpdateProjectPayroll replaces the payroll configuration on a project.
// Existing windows keep their rate snapshot; only future starts see the
// new configuration.
func (r *SQLiteRepository) UpdateProjectPayroll(ctx context.Context, organizationID, id string, billRate, overtimeBillRate, payRate, overtimePayRate *float64) error {
	query := `
	UPDATE projects
	SET bill_rate = ?, overtime_bill_rate = ?, pay_rate = ?, overtime_pay_rate = ?
	WHERE id = ? AND organization_id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "project", id,
		billRate, overtimeBillRate, payRate, overtimePayRate, id, organizationID)
}

// CreateTask creates a new task
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) error {
	query := `
	INSERT INTO tasks (id, organization_id, project_id, name, status,
		bill_rate, overtime_bill_rate, pay_rate, overtime_pay_rate, created_at_ms, updated_at_ms)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	return Execute(ctx, r.db, query,
		task.ID, task.OrganizationID, task.ProjectID, task.Name, task.Status,
		task.BillRate, task.OvertimeBillRate, task.PayRate, task.OvertimePayRate,
		task.CreatedAt, task.UpdatedAt)
}

// GetTask retrieves a task by organization and ID
func (r *SQLiteRepository) GetTask(ctx context.Context, organizationID, id string) (*Task, error) {
	query := `
	SELECT id, organization_id, project_id, name, status,
		bill_rate, overtime_bill_rate, pay_rate, overtime_pay_rate, created_at_ms, updated_at_ms
	FROM tasks
	WHERE id = ? AND organization_id = ?`

	return QuerySingle(ctx, r.db, query, ScanTask, "task", id, id, organizationID)
}

// CreateWindow inserts a new window row. The partial unique index on open
// windows turns a lost start-session race into a conflict here instead of
// a second open row.
func (r *SQLiteRepository) CreateWindow(ctx context.Context, window *Window) error {
	missed, err := EncodeTimestamps(window.MissedScreenshots)
	if err != nil {
		return HandleDatabaseError("encode missed screenshots", err)
	}

	query := `
	INSERT INTO windows (` + windowColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		window.ID, window.EmployeeID, window.OrganizationID, window.TeamID,
		window.ProjectID, window.TaskID, window.ShiftID,
		window.Start, window.End, window.TimezoneOffset, window.StartTranslated, window.EndTranslated,
		window.Type, window.Note, window.Domain, window.Computer,
		window.HWID, window.OS, window.OSVersion,
		window.BillRate, window.OvertimeBillRate, window.PayRate, window.OvertimePayRate,
		window.LastHeartbeat, window.LastFlagged, missed,
		window.NegativeTime, window.DeletedScreenshots, BoolToInt(window.Processed),
		window.CreatedAt, window.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "idx_windows_open_employee") ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return errors.NewConflictError("active session exists for employee").
				WithContext("employee_id", window.EmployeeID)
		}
		return HandleDatabaseError("create window", err)
	}

	return nil
}

// GetWindow retrieves a window by ID
func (r *SQLiteRepository) GetWindow(ctx context.Context, id string) (*Window, error) {
	query := `SELECT ` + windowColumns + ` FROM windows WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanWindow, "window", id, id)
}

// GetOpenWindow retrieves the single open window for an employee, if any
func (r *SQLiteRepository) GetOpenWindow(ctx context.Context, employeeID string) (*Window, error) {
	query := `SELECT ` + windowColumns + ` FROM windows WHERE employee_id = ? AND end_ms IS NULL`
	return QuerySingle(ctx, r.db, query, ScanWindow, "window", employeeID, employeeID)
}

// GetOpenWindowByID retrieves an open window by ID scoped to its employee
func (r *SQLiteRepository) GetOpenWindowByID(ctx context.Context, id, employeeID string) (*Window, error) {
	query := `SELECT ` + windowColumns + ` FROM windows WHERE id = ? AND employee_id = ? AND end_ms IS NULL`
	return QuerySingle(ctx, r.db, query, ScanWindow, "window", id, id, employeeID)
}

// GetLastClosedWindow retrieves the most recently closed window for an
// employee, ordered by end time
func (r *SQLiteRepository) GetLastClosedWindow(ctx context.Context, employeeID string) (*Window, error) {
	query := `
	SELECT ` + windowColumns + `
	FROM windows
	WHERE employee_id = ? AND end_ms IS NOT NULL
	ORDER BY end_ms DESC
	LIMIT 1`

	return QuerySingle(ctx, r.db, query, ScanWindow, "window", employeeID, employeeID)
}

// GetShiftOwners returns the distinct employee IDs that have windows under
// the given shift
func (r *SQLiteRepository) GetShiftOwners(ctx context.Context, shiftID string) ([]string, error) {
	return QueryStrings(ctx, r.db,
		`SELECT DISTINCT employee_id FROM windows WHERE shift_id = ?`, shiftID)
}

// CountWindowsByHWID returns how many windows an employee has tracked on
// the given hardware fingerprint
func (r *SQLiteRepository) CountWindowsByHWID(ctx context.Context, employeeID, hwid string) (int64, error) {
	var count int64
	row := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM windows WHERE employee_id = ? AND hwid = ?`, employeeID, hwid)
	if err := row.Scan(&count); err != nil {
		return 0, HandleDatabaseError("count windows by hwid", err)
	}
	return count, nil
}

// CloseWindow persists the closure of a window. Only the mutable-on-close
// fields are written; the row must still be open.
func (r *SQLiteRepository) CloseWindow(ctx context.Context, window *Window) error {
	query := `
	UPDATE windows
	SET end_ms = ?, end_translated_ms = ?, note = ?, deleted_screenshots = ?, updated_at_ms = ?
	WHERE id = ? AND end_ms IS NULL`

	return ExecuteWithRowsAffected(ctx, r.db, query, "window", window.ID,
		window.End, window.EndTranslated, window.Note, window.DeletedScreenshots, window.UpdatedAt,
		window.ID)
}

// UpdateHeartbeat refreshes the heartbeat on an open window
func (r *SQLiteRepository) UpdateHeartbeat(ctx context.Context, windowID string, heartbeatMillis int64) error {
	query := `
	UPDATE windows
	SET last_heartbeat_ms = ?, updated_at_ms = ?
	WHERE id = ? AND end_ms IS NULL`

	return ExecuteWithRowsAffected(ctx, r.db, query, "window", windowID,
		heartbeatMillis, heartbeatMillis, windowID)
}

// FindStaleOpenWindows returns open windows whose heartbeat and last flag
// are both older than the cutoff
func (r *SQLiteRepository) FindStaleOpenWindows(ctx context.Context, cutoffMillis int64) ([]*Window, error) {
	query := `
	SELECT ` + windowColumns + `
	FROM windows
	WHERE end_ms IS NULL
	  AND last_heartbeat_ms < ?
	  AND (last_flagged_ms IS NULL OR last_flagged_ms < ?)
	ORDER BY start_ms ASC`

	return QueryMultiple(ctx, r.db, query, ScanWindows, "windows", cutoffMillis, cutoffMillis)
}

// FlagMissedHeartbeats appends nowMillis to each window's missed-screenshot
// log and records the flag time, in a single transaction. Partial failure
// rolls back the whole batch.
func (r *SQLiteRepository) FlagMissedHeartbeats(ctx context.Context, windows []*Window, nowMillis int64) error {
	if len(windows) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin sweep transaction", err)
	}

	query := `
	UPDATE windows
	SET missed_screenshots = ?, last_flagged_ms = ?, updated_at_ms = ?
	WHERE id = ? AND end_ms IS NULL`

	for _, window := range windows {
		missed, err := EncodeTimestamps(append(window.MissedScreenshots, nowMillis))
		if err != nil {
			tx.Rollback()
			return HandleDatabaseError("encode missed screenshots", err)
		}
		if err := ExecuteWithRowsAffected(ctx, tx, query, "window", window.ID,
			missed, nowMillis, nowMillis, window.ID); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit sweep transaction", err)
	}
	return nil
}

// SearchWindows searches windows with the provided options
func (r *SQLiteRepository) SearchWindows(ctx context.Context, opts SearchOptions) ([]*Window, error) {
	conditions := []string{"organization_id = ?"}
	args := []interface{}{opts.OrganizationID}

	if opts.EmployeeID != nil {
		conditions = append(conditions, "employee_id = ?")
		args = append(args, *opts.EmployeeID)
	}
	if opts.ProjectID != nil {
		conditions = append(conditions, "project_id = ?")
		args = append(args, *opts.ProjectID)
	}
	if opts.TaskID != nil {
		conditions = append(conditions, "task_id = ?")
		args = append(args, *opts.TaskID)
	}
	if opts.ShiftID != nil {
		conditions = append(conditions, "shift_id = ?")
		args = append(args, *opts.ShiftID)
	}
	if opts.StartTime != nil {
		conditions = append(conditions, "start_ms >= ?")
		args = append(args, *opts.StartTime)
	}
	if opts.EndTime != nil {
		conditions = append(conditions, "start_ms <= ?")
		args = append(args, *opts.EndTime)
	}
	if opts.OpenOnly {
		conditions = append(conditions, "end_ms IS NULL")
	}

	query := `SELECT ` + windowColumns + ` FROM windows WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY start_ms ASC`

	return QueryMultiple(ctx, r.db, query, ScanWindows, "windows", args...)
}

// CreateScreenshotWithHeartbeat inserts a screenshot and refreshes the
// parent window's heartbeat as one atomic transaction
func (r *SQLiteRepository) CreateScreenshotWithHeartbeat(ctx context.Context, screenshot *Screenshot, heartbeatMillis int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin screenshot transaction", err)
	}

	insert := `
	INSERT INTO screenshots (id, window_id, employee_id, organization_id, team_id,
		project_id, task_id, shift_id, taken_at_ms, timezone_offset_ms, taken_at_translated_ms,
		hwid, app, title, site, created_at_ms)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if err := Execute(ctx, tx, insert,
		screenshot.ID, screenshot.WindowID, screenshot.EmployeeID, screenshot.OrganizationID,
		screenshot.TeamID, screenshot.ProjectID, screenshot.TaskID, screenshot.ShiftID,
		screenshot.TakenAt, screenshot.TimezoneOffset, screenshot.TakenAtTranslated,
		screenshot.HWID, screenshot.App, screenshot.Title, screenshot.Site,
		screenshot.CreatedAt); err != nil {
		tx.Rollback()
		return err
	}

	heartbeat := `
	UPDATE windows
	SET last_heartbeat_ms = ?, updated_at_ms = ?
	WHERE id = ? AND end_ms IS NULL`

	if err := ExecuteWithRowsAffected(ctx, tx, heartbeat, "window", screenshot.WindowID,
		heartbeatMillis, heartbeatMillis, screenshot.WindowID); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit screenshot transaction", err)
	}
	return nil
}

// CreateToken creates a bearer token row
func (r *SQLiteRepository) CreateToken(ctx context.Context, token *Token) error {
	query := `INSERT INTO tokens (token, kind, employee_id, organization_id) VALUES (?, ?, ?, ?)`
	return Execute(ctx, r.db, query, token.Token, token.Kind, token.EmployeeID, token.OrganizationID)
}

// GetToken retrieves a bearer token row
func (r *SQLiteRepository) GetToken(ctx context.Context, token string) (*Token, error) {
	query := `SELECT token, kind, employee_id, organization_id FROM tokens WHERE token = ?`
	return QuerySingle(ctx, r.db, query, ScanToken, "token", "bearer", token)
}
