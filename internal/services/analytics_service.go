package services

import (
	"context"
	"sort"
	"time"

	"worktrack/internal/domain"
	"worktrack/internal/repository/sqlite"
)

// analyticsServiceImpl implements the AnalyticsService interface
type analyticsServiceImpl struct {
	repo   sqlite.Repository
	mapper *domain.Mapper
	now    func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService instance
func NewAnalyticsService(repo sqlite.Repository) AnalyticsService {
	return &analyticsServiceImpl{
		repo:   repo,
		mapper: domain.NewMapper(),
		now:    time.Now,
	}
}

// SearchWindows returns the organization's windows matching the filter,
// ordered by start time.
func (a *analyticsServiceImpl) SearchWindows(ctx context.Context, organizationID string, filter WindowFilter) ([]domain.Window, error) {
	dbWindows, err := a.repo.SearchWindows(ctx, toSearchOptions(organizationID, filter))
	if err != nil {
		return nil, err
	}
	return a.mapper.Window.FromDatabaseSlice(dbWindows), nil
}

// ProjectTime aggregates tracked duration and billable amount per project.
// Open windows contribute their live duration; billable amounts always use
// the rate snapshot stored on each window.
func (a *analyticsServiceImpl) ProjectTime(ctx context.Context, organizationID string, filter WindowFilter) ([]ProjectTime, error) {
	windows, err := a.SearchWindows(ctx, organizationID, filter)
	if err != nil {
		return nil, err
	}

	nowMillis := a.now().UnixMilli()
	byProject := make(map[string]*ProjectTime)
	for _, window := range windows {
		entry, ok := byProject[window.ProjectID]
		if !ok {
			entry = &ProjectTime{ProjectID: window.ProjectID}
			byProject[window.ProjectID] = entry
		}
		duration := window.Duration(nowMillis)
		entry.WindowCount++
		entry.TotalMillis += duration
		entry.BillableAmount += domain.Hours(duration) * window.BillRate
	}

	results := make([]ProjectTime, 0, len(byProject))
	for _, entry := range byProject {
		results = append(results, *entry)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].ProjectID < results[j].ProjectID
	})

	return results, nil
}

func toSearchOptions(organizationID string, filter WindowFilter) sqlite.SearchOptions {
	return sqlite.SearchOptions{
		OrganizationID: organizationID,
		EmployeeID:     filter.EmployeeID,
		ProjectID:      filter.ProjectID,
		TaskID:         filter.TaskID,
		ShiftID:        filter.ShiftID,
		StartTime:      filter.StartTime,
		EndTime:        filter.EndTime,
		OpenOnly:       filter.OpenOnly,
	}
}
