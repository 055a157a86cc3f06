package services

import (
	"worktrack/internal/domain"
)

// RateResolver computes the effective bill/pay/overtime rates for a new
// window from the task/project payroll hierarchy. Resolution happens once
// per session start; the returned snapshot is recorded on the window and
// never re-evaluated.
type RateResolver struct{}

// NewRateResolver creates a new RateResolver instance
func NewRateResolver() *RateResolver {
	return &RateResolver{}
}

// Resolve returns the rate snapshot for the given task and its parent
// project. Task-level overrides win; absent fields fall back to the project
// configuration; fields absent on both default to 0.
func (r *RateResolver) Resolve(task *domain.Task, project *domain.Project) domain.RateSnapshot {
	return domain.RateSnapshot{
		BillRate:         resolveRate(task.Payroll.BillRate, project.Payroll.BillRate),
		OvertimeBillRate: resolveRate(task.Payroll.OvertimeBillRate, project.Payroll.OvertimeBillRate),
		PayRate:          resolveRate(task.Payroll.PayRate, project.Payroll.PayRate),
		OvertimePayRate:  resolveRate(task.Payroll.OvertimePayRate, project.Payroll.OvertimePayRate),
	}
}

func resolveRate(taskRate, projectRate *float64) float64 {
	if taskRate != nil {
		return *taskRate
	}
	if projectRate != nil {
		return *projectRate
	}
	return 0
}
