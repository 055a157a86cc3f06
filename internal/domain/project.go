package domain

// Project represents a billable body of work in the domain model.
type Project struct {
	ID             string
	OrganizationID string
	Name           string
	Billable       bool
	Archived       bool
	Payroll        PayrollConfig

	CreatedAt int64
	UpdatedAt int64
}

// Task represents a unit of work under a project. Payroll overrides on the
// task take precedence over the parent project's configuration.
type Task struct {
	ID             string
	OrganizationID string
	ProjectID      string
	Name           string
	Status         string
	Payroll        PayrollConfig

	CreatedAt int64
	UpdatedAt int64
}

// BelongsToProject returns true if the task is a child of the given project.
func (t Task) BelongsToProject(projectID string) bool {
	return t.ProjectID == projectID
}
