package workentry

import "time"

// Category classifies a reconciled slice of worked time.
type Category string

const (
	CategoryAttendance    Category = "attendance"    // inside the scheduled ranges
	CategoryDelay         Category = "delay"         // range nominal start to the rounded clock-in
	CategorySupplementary Category = "supplementary" // overtime within the daily cap
	CategoryExtraordinary Category = "extraordinary" // overtime beyond the cap, no-schedule or holiday work
	CategoryNocturnal     Category = "nocturnal"     // attendance inside the 19:00-06:00 night window
)

var CategoryValues = []string{
	string(CategoryAttendance),
	string(CategoryDelay),
	string(CategorySupplementary),
	string(CategoryExtraordinary),
	string(CategoryNocturnal),
}

// Segment is an intermediate classified slice in local time. Internal-only
// flags are stripped at assembly.
type Segment struct {
	EmployeeID      string
	Start           time.Time
	End             time.Time
	Category        Category
	IsAutocompleted bool
	IsPermit        bool
	Seq             int
}

func (s Segment) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Overlaps reports whether two segments share any positive amount of time.
func (s Segment) Overlaps(other Segment) bool {
	return s.Start.Before(other.End) && other.Start.Before(s.End)
}

// WorkEntry is the final billable record, boundaries in UTC. Entries are
// upserted by (employee_id, start_at, category) so re-running a batch never
// duplicates them.
type WorkEntry struct {
	ID         string
	EmployeeID string
	StartAt    time.Time
	EndAt      time.Time
	Category   Category
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Inconsistency counts autocompleted punches for one employee on one date.
// The rolling sum over the grace window gates further autocompletion.
type Inconsistency struct {
	EmployeeID string
	Date       time.Time // local midnight
	Count      int
}
