package timeoff

import (
	"context"
	"time"
)

// TimeOffRepository defines data access for holidays, leave/permit periods
// and lactation accommodations.
type TimeOffRepository interface {
	// ListHolidays retrieves holidays overlapping [from, to]
	ListHolidays(ctx context.Context, from, to time.Time) ([]Holiday, error)

	// ListApprovedPeriods retrieves approved leave and permit periods
	// overlapping [from, to] for the given employees
	ListApprovedPeriods(ctx context.Context, employeeIDs []string, from, to time.Time) ([]Period, error)

	// ListLactationPeriods retrieves lactation periods overlapping [from, to]
	// for the given employees
	ListLactationPeriods(ctx context.Context, employeeIDs []string, from, to time.Time) ([]LactationPeriod, error)
}
