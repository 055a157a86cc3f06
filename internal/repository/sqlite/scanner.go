package sqlite

import (
	"database/sql"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanWindow scans a single window from a database row
func ScanWindow(scanner Scanner) (*Window, error) {
	w := &Window{}
	var end, endTranslated, lastFlagged sql.NullInt64
	var missed string
	var processed int64

	err := scanner.Scan(
		&w.ID,
		&w.EmployeeID,
		&w.OrganizationID,
		&w.TeamID,
		&w.ProjectID,
		&w.TaskID,
		&w.ShiftID,
		&w.Start,
		&end,
		&w.TimezoneOffset,
		&w.StartTranslated,
		&endTranslated,
		&w.Type,
		&w.Note,
		&w.Domain,
		&w.Computer,
		&w.HWID,
		&w.OS,
		&w.OSVersion,
		&w.BillRate,
		&w.OvertimeBillRate,
		&w.PayRate,
		&w.OvertimePayRate,
		&w.LastHeartbeat,
		&lastFlagged,
		&missed,
		&w.NegativeTime,
		&w.DeletedScreenshots,
		&processed,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if end.Valid {
		w.End = &end.Int64
	}
	if endTranslated.Valid {
		w.EndTranslated = &endTranslated.Int64
	}
	if lastFlagged.Valid {
		w.LastFlagged = &lastFlagged.Int64
	}
	w.Processed = processed != 0

	w.MissedScreenshots, err = DecodeTimestamps(missed)
	if err != nil {
		return nil, err
	}

	return w, nil
}

// ScanWindows scans multiple windows from database rows
func ScanWindows(rows Rows) ([]*Window, error) {
	var windows []*Window
	for rows.Next() {
		w, err := ScanWindow(rows)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return windows, nil
}

// ScanEmployee scans a single employee from a database row. Assignments are
// loaded separately from the join tables.
func ScanEmployee(scanner Scanner) (*Employee, error) {
	e := &Employee{}
	var deactivated sql.NullInt64

	err := scanner.Scan(
		&e.ID,
		&e.OrganizationID,
		&e.TeamID,
		&e.Name,
		&e.Email,
		&deactivated,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if deactivated.Valid {
		e.DeactivatedAt = &deactivated.Int64
	}

	return e, nil
}

// ScanProject scans a single project from a database row
func ScanProject(scanner Scanner) (*Project, error) {
	p := &Project{}
	var billable, archived int64
	var billRate, overtimeBillRate, payRate, overtimePayRate sql.NullFloat64

	err := scanner.Scan(
		&p.ID,
		&p.OrganizationID,
		&p.Name,
		&billable,
		&archived,
		&billRate,
		&overtimeBillRate,
		&payRate,
		&overtimePayRate,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Billable = billable != 0
	p.Archived = archived != 0
	p.BillRate = nullableFloat(billRate)
	p.OvertimeBillRate = nullableFloat(overtimeBillRate)
	p.PayRate = nullableFloat(payRate)
	p.OvertimePayRate = nullableFloat(overtimePayRate)

	return p, nil
}

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*Task, error) {
	t := &Task{}
	var billRate, overtimeBillRate, payRate, overtimePayRate sql.NullFloat64

	err := scanner.Scan(
		&t.ID,
		&t.OrganizationID,
		&t.ProjectID,
		&t.Name,
		&t.Status,
		&billRate,
		&overtimeBillRate,
		&payRate,
		&overtimePayRate,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.BillRate = nullableFloat(billRate)
	t.OvertimeBillRate = nullableFloat(overtimeBillRate)
	t.PayRate = nullableFloat(payRate)
	t.OvertimePayRate = nullableFloat(overtimePayRate)

	return t, nil
}

// ScanToken scans a single token from a database row
func ScanToken(scanner Scanner) (*Token, error) {
	tok := &Token{}
	err := scanner.Scan(&tok.Token, &tok.Kind, &tok.EmployeeID, &tok.OrganizationID)
	if err != nil {
		return nil, err
	}
	return tok, nil
}

func nullableFloat(f sql.NullFloat64) *float64 {
	if f.Valid {
		return &f.Float64
	}
	return nil
}
