package timeoff

import "time"

type HolidayScope string

const (
	ScopeNational HolidayScope = "national"
	ScopeLocal    HolidayScope = "local"
)

// Holiday is a national or city-scoped non-working period, date-granular
// and inclusive on both ends.
type Holiday struct {
	ID        string
	Scope     HolidayScope
	City      *string // required for local scope
	StartDate time.Time
	EndDate   time.Time
}

// Covers reports whether the holiday applies to the given date and city.
func (h Holiday) Covers(date time.Time, city string) bool {
	if h.Scope == ScopeLocal {
		if h.City == nil || *h.City != city {
			return false
		}
	}
	return !date.Before(h.StartDate) && !date.After(h.EndDate)
}

type TimeType string

const (
	TimeTypeLeave TimeType = "leave" // full absence, excludes the day from reconciliation
	TimeTypeOther TimeType = "other" // short permit, becomes synthetic punches
)

// Period is an approved absence or permit request.
type Period struct {
	ID         string
	EmployeeID string
	TimeType   TimeType
	StartAt    time.Time
	EndAt      time.Time
	Approved   bool
}

// LactationPeriod caps daily overtime at the reduced lactation limit while
// active.
type LactationPeriod struct {
	ID         string
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
}

// Contains reports whether the date falls inside the period, inclusive.
func (p LactationPeriod) Contains(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}
