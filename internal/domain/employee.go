package domain

// Employee represents a tracked worker in the domain model. Project and
// task assignments are relational rows in the store, surfaced here as ID
// slices.
type Employee struct {
	ID             string
	OrganizationID string
	TeamID         string
	Name           string
	Email          string

	// DeactivatedAt is the millisecond Unix time the employee was
	// deactivated, nil while active.
	DeactivatedAt *int64

	Projects []string
	Tasks    []string

	CreatedAt int64
	UpdatedAt int64
}

// IsDeactivated returns true if the employee has been deactivated.
func (e Employee) IsDeactivated() bool {
	return e.DeactivatedAt != nil
}

// IsAssignedToProject returns true if the employee is assigned to the
// given project.
func (e Employee) IsAssignedToProject(projectID string) bool {
	for _, id := range e.Projects {
		if id == projectID {
			return true
		}
	}
	return false
}

// IsAssignedToTask returns true if the employee is assigned to the given
// task.
func (e Employee) IsAssignedToTask(taskID string) bool {
	for _, id := range e.Tasks {
		if id == taskID {
			return true
		}
	}
	return false
}
