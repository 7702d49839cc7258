package schedule

import (
	"context"
	"time"
)

// CalendarRepository defines data access for calendars and their ranges.
type CalendarRepository interface {
	// GetByID retrieves a calendar with its weekday ranges
	GetByID(ctx context.Context, id string) (Calendar, error)

	// ListByIDs retrieves the given calendars with ranges, skipping unknown ids
	ListByIDs(ctx context.Context, ids []string) ([]Calendar, error)

	// ListByDepartment retrieves the candidate calendars of a department.
	// Feeds the best-effort department fallback.
	ListByDepartment(ctx context.Context, department string) ([]Calendar, error)
}

// AssignmentRepository defines data access for historical calendar
// assignments.
type AssignmentRepository interface {
	// ListForEmployees retrieves assignments overlapping [from, to]
	ListForEmployees(ctx context.Context, employeeIDs []string, from, to time.Time) ([]CalendarAssignment, error)
}

// ExceptionRepository defines data access for shift exceptions.
type ExceptionRepository interface {
	// ListApprovedForEmployees retrieves approved exceptions overlapping
	// [from, to], with personalized hour ranges attached
	ListApprovedForEmployees(ctx context.Context, employeeIDs []string, from, to time.Time) ([]ShiftException, error)
}
