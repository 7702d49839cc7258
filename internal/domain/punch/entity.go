package punch

import "time"

// Event is a single raw check-in/check-out timestamp from a time-clock
// source. Biometric events are persisted; permit events are synthesized at
// reconciliation time from approved short permits and never stored.
type Event struct {
	ID         string
	EmployeeID string
	PunchedAt  time.Time // UTC instant
	SourceFile string
	IsPermit   bool
	CreatedAt  time.Time
}

// Interval is a paired worked interval. Start < End always holds; an
// interval spans midnight only when derived from a special-shift schedule.
type Interval struct {
	EmployeeID      string
	Start           time.Time
	End             time.Time
	IsPermit        bool
	IsAutocompleted bool
	Seq             int // creation order, assembler tie-break
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Lone is an unpaired punch left over after pairing, candidate for the
// autocomplete path. Whether it was an entry or an exit stays undecided
// until the autocomplete snaps it to the nearest schedule boundary.
type Lone struct {
	EmployeeID string
	At         time.Time
	IsPermit   bool
}
