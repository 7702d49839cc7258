package punch

import (
	"context"
	"time"
)

// EventRepository defines data access for raw punch events.
type EventRepository interface {
	// CreateBatch stores events, silently skipping duplicates on
	// (employee_id, punched_at). Returns the number actually inserted.
	CreateBatch(ctx context.Context, events []Event) (int, error)

	// ListForEmployees retrieves events with punched_at inside [from, to)
	// ordered by employee and timestamp
	ListForEmployees(ctx context.Context, employeeIDs []string, from, to time.Time) ([]Event, error)
}
