package domain

import (
	"worktrack/internal/repository/sqlite"
)

// WindowMapper handles conversion between domain and database Window models.
type WindowMapper struct{}

// ToDatabase converts a domain Window to a database Window.
func (m *WindowMapper) ToDatabase(w Window) sqlite.Window {
	return sqlite.Window{
		ID:                 w.ID,
		EmployeeID:         w.EmployeeID,
		OrganizationID:     w.OrganizationID,
		TeamID:             w.TeamID,
		ProjectID:          w.ProjectID,
		TaskID:             w.TaskID,
		ShiftID:            w.ShiftID,
		Start:              w.Start,
		End:                w.End,
		TimezoneOffset:     w.TimezoneOffset,
		StartTranslated:    w.StartTranslated,
		EndTranslated:      w.EndTranslated,
		Type:               w.Type,
		Note:               w.Note,
		Domain:             w.Domain,
		Computer:           w.Computer,
		HWID:               w.HWID,
		OS:                 w.OS,
		OSVersion:          w.OSVersion,
		BillRate:           w.BillRate,
		OvertimeBillRate:   w.OvertimeBillRate,
		PayRate:            w.PayRate,
		OvertimePayRate:    w.OvertimePayRate,
		LastHeartbeat:      w.LastHeartbeat,
		LastFlagged:        w.LastFlagged,
		MissedScreenshots:  w.MissedScreenshots,
		NegativeTime:       w.NegativeTime,
		DeletedScreenshots: w.DeletedScreenshots,
		Processed:          w.Processed,
		CreatedAt:          w.CreatedAt,
		UpdatedAt:          w.UpdatedAt,
	}
}

// FromDatabase converts a database Window to a domain Window.
func (m *WindowMapper) FromDatabase(w sqlite.Window) Window {
	return Window{
		ID:                 w.ID,
		EmployeeID:         w.EmployeeID,
		OrganizationID:     w.OrganizationID,
		TeamID:             w.TeamID,
		ProjectID:          w.ProjectID,
		TaskID:             w.TaskID,
		ShiftID:            w.ShiftID,
		Start:              w.Start,
		End:                w.End,
		TimezoneOffset:     w.TimezoneOffset,
		StartTranslated:    w.StartTranslated,
		EndTranslated:      w.EndTranslated,
		Type:               w.Type,
		Note:               w.Note,
		Domain:             w.Domain,
		Computer:           w.Computer,
		HWID:               w.HWID,
		OS:                 w.OS,
		OSVersion:          w.OSVersion,
		BillRate:           w.BillRate,
		OvertimeBillRate:   w.OvertimeBillRate,
		PayRate:            w.PayRate,
		OvertimePayRate:    w.OvertimePayRate,
		LastHeartbeat:      w.LastHeartbeat,
		LastFlagged:        w.LastFlagged,
		MissedScreenshots:  w.MissedScreenshots,
		NegativeTime:       w.NegativeTime,
		DeletedScreenshots: w.DeletedScreenshots,
		Processed:          w.Processed,
		CreatedAt:          w.CreatedAt,
		UpdatedAt:          w.UpdatedAt,
	}
}

// FromDatabaseSlice converts a slice of database Windows to domain Windows.
func (m *WindowMapper) FromDatabaseSlice(dbWindows []*sqlite.Window) []Window {
	windows := make([]Window, len(dbWindows))
	for i, w := range dbWindows {
		windows[i] = m.FromDatabase(*w)
	}
	return windows
}

// ScreenshotMapper handles conversion between domain and database Screenshot models.
type ScreenshotMapper struct{}

// ToDatabase converts a domain Screenshot to a database Screenshot.
func (m *ScreenshotMapper) ToDatabase(s Screenshot) sqlite.Screenshot {
	return sqlite.Screenshot{
		ID:                s.ID,
		WindowID:          s.WindowID,
		EmployeeID:        s.EmployeeID,
		OrganizationID:    s.OrganizationID,
		TeamID:            s.TeamID,
		ProjectID:         s.ProjectID,
		TaskID:            s.TaskID,
		ShiftID:           s.ShiftID,
		TakenAt:           s.TakenAt,
		TimezoneOffset:    s.TimezoneOffset,
		TakenAtTranslated: s.TakenAtTranslated,
		HWID:              s.HWID,
		App:               s.App,
		Title:             s.Title,
		Site:              s.Site,
		CreatedAt:         s.CreatedAt,
	}
}

// FromDatabase converts a database Screenshot to a domain Screenshot.
func (m *ScreenshotMapper) FromDatabase(s sqlite.Screenshot) Screenshot {
	return Screenshot{
		ID:                s.ID,
		WindowID:          s.WindowID,
		EmployeeID:        s.EmployeeID,
		OrganizationID:    s.OrganizationID,
		TeamID:            s.TeamID,
		ProjectID:         s.ProjectID,
		TaskID:            s.TaskID,
		ShiftID:           s.ShiftID,
		TakenAt:           s.TakenAt,
		TimezoneOffset:    s.TimezoneOffset,
		TakenAtTranslated: s.TakenAtTranslated,
		HWID:              s.HWID,
		App:               s.App,
		Title:             s.Title,
		Site:              s.Site,
		CreatedAt:         s.CreatedAt,
	}
}

// EmployeeMapper handles conversion between domain and database Employee models.
type EmployeeMapper struct{}

// FromDatabase converts a database Employee to a domain Employee.
func (m *EmployeeMapper) FromDatabase(e sqlite.Employee) Employee {
	return Employee{
		ID:             e.ID,
		OrganizationID: e.OrganizationID,
		TeamID:         e.TeamID,
		Name:           e.Name,
		Email:          e.Email,
		DeactivatedAt:  e.DeactivatedAt,
		Projects:       e.Projects,
		Tasks:          e.Tasks,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

// ProjectMapper handles conversion between domain and database Project models.
type ProjectMapper struct{}

// FromDatabase converts a database Project to a domain Project.
func (m *ProjectMapper) FromDatabase(p sqlite.Project) Project {
	return Project{
		ID:             p.ID,
		OrganizationID: p.OrganizationID,
		Name:           p.Name,
		Billable:       p.Billable,
		Archived:       p.Archived,
		Payroll: PayrollConfig{
			BillRate:         p.BillRate,
			OvertimeBillRate: p.OvertimeBillRate,
			PayRate:          p.PayRate,
			OvertimePayRate:  p.OvertimePayRate,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// FromDatabase converts a database Task to a domain Task.
func (m *TaskMapper) FromDatabase(t sqlite.Task) Task {
	return Task{
		ID:             t.ID,
		OrganizationID: t.OrganizationID,
		ProjectID:      t.ProjectID,
		Name:           t.Name,
		Status:         t.Status,
		Payroll: PayrollConfig{
			BillRate:         t.BillRate,
			OvertimeBillRate: t.OvertimeBillRate,
			PayRate:          t.PayRate,
			OvertimePayRate:  t.OvertimePayRate,
		},
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Window     *WindowMapper
	Screenshot *ScreenshotMapper
	Employee   *EmployeeMapper
	Project    *ProjectMapper
	Task       *TaskMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Window:     &WindowMapper{},
		Screenshot: &ScreenshotMapper{},
		Employee:   &EmployeeMapper{},
		Project:    &ProjectMapper{},
		Task:       &TaskMapper{},
	}
}
