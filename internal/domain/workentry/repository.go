package workentry

import (
	"context"
	"time"
)

// WorkEntryRepository defines data access for reconciled work entries and
// inconsistency counters.
type WorkEntryRepository interface {
	// UpsertEntries stores entries, updating end_at on conflict of the
	// (employee_id, start_at, category) natural key
	UpsertEntries(ctx context.Context, entries []WorkEntry) error

	// List retrieves entries with filters and pagination
	List(ctx context.Context, filter ListFilter) ([]WorkEntry, int64, error)

	// ListCounters retrieves inconsistency counters for employees whose
	// date falls in [from, to]
	ListCounters(ctx context.Context, employeeIDs []string, from, to time.Time) ([]Inconsistency, error)

	// AddCounters increments stored counters by the given amounts,
	// inserting rows that do not exist yet
	AddCounters(ctx context.Context, counters []Inconsistency) error

	// SaveRunResults upserts entries and adds counters atomically, so a
	// failed run never commits half a batch
	SaveRunResults(ctx context.Context, entries []WorkEntry, counters []Inconsistency) error

	// ListInconsistencies retrieves counters for reporting, most recent first
	ListInconsistencies(ctx context.Context, filter ListFilter) ([]Inconsistency, int64, error)
}
