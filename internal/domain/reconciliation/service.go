package reconciliation

import (
	"context"
	"time"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/schedule"
)

// Service runs attendance reconciliation batches.
type Service interface {
	// Run reconciles punches against schedules for the requested employees
	// and date range, persists the resulting work entries and counter
	// increments, and returns the full report
	Run(ctx context.Context, req RunRequest) (RunReport, error)

	// ResolveSchedule exposes the schedule resolver for one employee/date
	ResolveSchedule(ctx context.Context, employeeID string, date time.Time) (schedule.DaySchedule, error)
}
