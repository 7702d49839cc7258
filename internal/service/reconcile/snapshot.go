package reconcile

import (
	"time"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/employee"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/punch"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/schedule"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/timeoff"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/workentry"
)

// Snapshot is the read-only view of master data for one batch, bulk
// prefetched before the per-employee loop so the core stays synchronous
// and side-effect free. Workers share it without locking.
type Snapshot struct {
	Loc     *time.Location
	Options Options
	From    time.Time // local midnight, inclusive
	To      time.Time // local midnight, inclusive

	Employees     map[string]employee.Employee
	Calendars     map[string]schedule.Calendar
	DeptCalendars map[string][]schedule.Calendar
	Assignments   map[string][]schedule.CalendarAssignment
	Exceptions    map[string][]schedule.ShiftException
	Holidays      []timeoff.Holiday
	Periods       map[string][]timeoff.Period
	Lactations    map[string][]timeoff.LactationPeriod
	Counters      map[string]map[string]int // employee id -> date key -> count
	Punches       map[string][]punch.Event  // sorted by punched_at, UTC instants
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// localDate rebases a date-granular value onto the batch zone. DATE
// columns scan as UTC midnight, which is the previous local evening.
func localDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// CountersFor converts the prefetched counter rows of one employee back
// into domain values for the grace state.
func (s *Snapshot) CountersFor(employeeID string) []workentry.Inconsistency {
	byDate := s.Counters[employeeID]
	out := make([]workentry.Inconsistency, 0, len(byDate))
	for key, count := range byDate {
		date, err := time.ParseInLocation("2006-01-02", key, s.Loc)
		if err != nil {
			continue
		}
		out = append(out, workentry.Inconsistency{EmployeeID: employeeID, Date: date, Count: count})
	}
	return out
}

// HolidayCovers reports whether a national or matching local holiday
// covers the date.
func (s *Snapshot) HolidayCovers(date time.Time, city string) bool {
	for _, h := range s.Holidays {
		if h.Covers(date, city) {
			return true
		}
	}
	return false
}

// LeaveCoversDay reports whether an approved leave period covers the whole
// local day.
func (s *Snapshot) LeaveCoversDay(employeeID string, date time.Time) bool {
	dayEnd := date.AddDate(0, 0, 1)
	for _, p := range s.Periods[employeeID] {
		if p.TimeType != timeoff.TimeTypeLeave {
			continue
		}
		if !p.StartAt.After(date) && !p.EndAt.Before(dayEnd) {
			return true
		}
	}
	return false
}

// PermitsOn returns the approved short permits overlapping the local day.
func (s *Snapshot) PermitsOn(employeeID string, date time.Time) []timeoff.Period {
	dayEnd := date.AddDate(0, 0, 1)
	var out []timeoff.Period
	for _, p := range s.Periods[employeeID] {
		if p.TimeType != timeoff.TimeTypeOther {
			continue
		}
		if p.StartAt.Before(dayEnd) && p.EndAt.After(date) {
			out = append(out, p)
		}
	}
	return out
}

// InLactation reports whether the date falls inside any lactation period
// of the employee.
func (s *Snapshot) InLactation(employeeID string, date time.Time) bool {
	for _, p := range s.Lactations[employeeID] {
		if p.Contains(date) {
			return true
		}
	}
	return false
}
