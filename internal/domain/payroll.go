package domain

// PayrollConfig holds the optional payroll overrides attached to a project
// or a task. A nil field means the level does not override that rate and
// resolution falls through to the next level.
type PayrollConfig struct {
	BillRate         *float64
	OvertimeBillRate *float64
	PayRate          *float64
	OvertimePayRate  *float64
}

// IsEmpty returns true when no rate is configured at this level.
func (p PayrollConfig) IsEmpty() bool {
	return p.BillRate == nil && p.OvertimeBillRate == nil && p.PayRate == nil && p.OvertimePayRate == nil
}

// RateSnapshot is the fully resolved set of rates recorded on a window at
// session start. Unlike PayrollConfig every field is concrete; unresolved
// rates default to 0.
type RateSnapshot struct {
	BillRate         float64
	OvertimeBillRate float64
	PayRate          float64
	OvertimePayRate  float64
}
