package reconcile

import (
	"time"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/workentry"
)

// DayOff reports whether the date is fully covered by a holiday in the
// employee's city or by an approved leave period.
func DayOff(snap *Snapshot, employeeID string, date time.Time) bool {
	city := ""
	if emp, ok := snap.Employees[employeeID]; ok {
		city = emp.City
	}
	return snap.HolidayCovers(date, city) || snap.LeaveCoversDay(employeeID, date)
}

// FilterDay applies holiday/leave policy to one day's segments. On a
// covered day, delay segments drop outright (no late-arrival penalty on a
// day not supposed to be worked) and every other worked segment becomes
// extraordinary, reflecting compensable holiday work.
func FilterDay(segs []workentry.Segment, snap *Snapshot, employeeID string, date time.Time) []workentry.Segment {
	if !DayOff(snap, employeeID, date) {
		return segs
	}

	out := make([]workentry.Segment, 0, len(segs))
	for _, s := range segs {
		if s.Category == workentry.CategoryDelay {
			continue
		}
		s.Category = workentry.CategoryExtraordinary
		out = append(out, s)
	}
	return out
}
