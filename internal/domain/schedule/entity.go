package schedule

import "time"

const MinutesPerDay = 24 * 60

// Calendar is a reusable weekly grid of working ranges.
type Calendar struct {
	ID         string
	Name       string
	Department string
	Ranges     []CalendarRange
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CalendarRange is one weekday slot, expressed in minutes from local
// midnight. EndMinutes == 1440 encodes a 24:00 end: the shift continues
// into the next calendar day.
type CalendarRange struct {
	ID           string
	CalendarID   string
	Weekday      time.Weekday
	StartMinutes int
	EndMinutes   int
}

func (r CalendarRange) IsSpecial() bool {
	return r.EndMinutes == MinutesPerDay
}

// CalendarAssignment binds an employee to a calendar for a date span.
// A nil EndDate means the assignment is still open.
type CalendarAssignment struct {
	ID         string
	EmployeeID string
	CalendarID string
	StartDate  time.Time
	EndDate    *time.Time
}

type ExceptionKind string

const (
	ExceptionResource     ExceptionKind = "resource"     // points at another calendar
	ExceptionPersonalized ExceptionKind = "personalized" // carries explicit hour ranges
)

var ExceptionKindValues = []string{
	string(ExceptionResource),
	string(ExceptionPersonalized),
}

// ShiftException temporarily overrides an employee's schedule between
// DateFrom and DateTo inclusive. Only approved exceptions apply.
type ShiftException struct {
	ID         string
	EmployeeID string
	Kind       ExceptionKind
	DateFrom   time.Time
	DateTo     time.Time
	CalendarID *string          // resource kind
	Ranges     []ExceptionRange // personalized kind, weekday-unconstrained
	Approved   bool
}

// ExceptionRange is an explicit hour range of a personalized exception.
type ExceptionRange struct {
	ID           string
	ExceptionID  string
	StartMinutes int
	EndMinutes   int
}

// Source tags where a resolved day schedule came from. Resolution picks
// exactly one source per employee/date.
type Source string

const (
	SourceException  Source = "exception"
	SourceHistory    Source = "history"
	SourceDefault    Source = "default"
	SourceDepartment Source = "department"
	SourceNone       Source = "none"
)

// ScheduleRange is a resolved range with absolute local timestamps.
// A special range ends at 00:00 of the following day.
type ScheduleRange struct {
	Start     time.Time
	End       time.Time
	IsSpecial bool
}

func (r ScheduleRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// DaySchedule is the resolved, ordered set of ranges for one employee on
// one calendar date.
type DaySchedule struct {
	EmployeeID string
	Date       time.Time // local midnight
	Source     Source
	Ranges     []ScheduleRange
}

func (d DaySchedule) IsEmpty() bool {
	return len(d.Ranges) == 0
}

// HasSpecial reports whether the day's last range crosses midnight, which
// requires the following day's schedule when classifying intervals.
func (d DaySchedule) HasSpecial() bool {
	return len(d.Ranges) > 0 && d.Ranges[len(d.Ranges)-1].IsSpecial
}
