package reconcile

import (
	"sort"
	"time"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/schedule"
)

// Resolve returns the applicable day schedule for an employee on a local
// date. Precedence: approved exception, historical calendar assignment,
// the employee's default calendar, then the department fallback. hint,
// when non-zero, is a punch instant consulted only by the fallback
// heuristic.
func Resolve(snap *Snapshot, employeeID string, date time.Time, hint time.Time) schedule.DaySchedule {
	day := schedule.DaySchedule{EmployeeID: employeeID, Date: date, Source: schedule.SourceNone}

	if ranges, ok := resolveException(snap, employeeID, date); ok {
		day.Source = schedule.SourceException
		day.Ranges = ranges
		return day
	}

	if ranges, ok := resolveHistory(snap, employeeID, date); ok {
		day.Source = schedule.SourceHistory
		day.Ranges = ranges
		return day
	}

	emp, ok := snap.Employees[employeeID]
	if ok && emp.CalendarID != nil {
		if cal, ok := snap.Calendars[*emp.CalendarID]; ok {
			day.Source = schedule.SourceDefault
			day.Ranges = expandCalendar(cal, date)
			return day
		}
	}

	if snap.Options.FallbackMode == "department" && !hint.IsZero() {
		if ranges, ok := resolveDepartment(snap, emp.Department, date, hint); ok {
			day.Source = schedule.SourceDepartment
			day.Ranges = ranges
			return day
		}
	}

	return day
}

func resolveException(snap *Snapshot, employeeID string, date time.Time) ([]schedule.ScheduleRange, bool) {
	for _, ex := range snap.Exceptions[employeeID] {
		if !ex.Approved || date.Before(ex.DateFrom) || date.After(ex.DateTo) {
			continue
		}
		switch ex.Kind {
		case schedule.ExceptionResource:
			if ex.CalendarID == nil {
				continue
			}
			cal, ok := snap.Calendars[*ex.CalendarID]
			if !ok {
				continue
			}
			return expandCalendar(cal, date), true
		case schedule.ExceptionPersonalized:
			// explicit hour list, unconstrained by weekday
			ranges := make([]schedule.ScheduleRange, 0, len(ex.Ranges))
			for _, r := range ex.Ranges {
				ranges = append(ranges, materializeRange(date, r.StartMinutes, r.EndMinutes))
			}
			sortRanges(ranges)
			return ranges, true
		}
	}
	return nil, false
}

func resolveHistory(snap *Snapshot, employeeID string, date time.Time) ([]schedule.ScheduleRange, bool) {
	for _, a := range snap.Assignments[employeeID] {
		if date.Before(a.StartDate) {
			continue
		}
		if a.EndDate != nil && date.After(*a.EndDate) {
			continue
		}
		cal, ok := snap.Calendars[a.CalendarID]
		if !ok {
			continue
		}
		return expandCalendar(cal, date), true
	}
	return nil, false
}

// resolveDepartment is a best-effort nearest-neighbor heuristic: among the
// department's calendars it picks the one whose weekday ranges are closest
// in time-of-day to the hint punch. Only used when no authoritative source
// exists.
func resolveDepartment(snap *Snapshot, department string, date time.Time, hint time.Time) ([]schedule.ScheduleRange, bool) {
	candidates := snap.DeptCalendars[department]
	if len(candidates) == 0 {
		return nil, false
	}

	hintMinutes := hint.In(snap.Loc).Hour()*60 + hint.In(snap.Loc).Minute()
	best := -1
	bestDistance := 0
	for i, cal := range candidates {
		distance, ok := calendarDistance(cal, date.Weekday(), hintMinutes)
		if !ok {
			continue
		}
		if best < 0 || distance < bestDistance {
			best = i
			bestDistance = distance
		}
	}
	if best < 0 {
		return nil, false
	}
	return expandCalendar(candidates[best], date), true
}

// calendarDistance is the minutes-of-day distance from t to the nearest
// of the calendar's ranges for the weekday (zero when t falls inside one).
func calendarDistance(cal schedule.Calendar, weekday time.Weekday, t int) (int, bool) {
	best := 0
	found := false
	for _, r := range cal.Ranges {
		if r.Weekday != weekday {
			continue
		}
		d := 0
		switch {
		case t < r.StartMinutes:
			d = r.StartMinutes - t
		case t > r.EndMinutes:
			d = t - r.EndMinutes
		}
		if !found || d < best {
			best = d
		}
		found = true
	}
	return best, found
}

func expandCalendar(cal schedule.Calendar, date time.Time) []schedule.ScheduleRange {
	var ranges []schedule.ScheduleRange
	for _, r := range cal.Ranges {
		if r.Weekday != date.Weekday() {
			continue
		}
		ranges = append(ranges, materializeRange(date, r.StartMinutes, r.EndMinutes))
	}
	sortRanges(ranges)
	return ranges
}

// materializeRange turns minutes-of-day into absolute local timestamps.
// An end of 24:00 wraps to midnight of the next day and marks the range
// special.
func materializeRange(date time.Time, startMinutes, endMinutes int) schedule.ScheduleRange {
	return schedule.ScheduleRange{
		Start:     date.Add(time.Duration(startMinutes) * time.Minute),
		End:       date.Add(time.Duration(endMinutes) * time.Minute),
		IsSpecial: endMinutes == schedule.MinutesPerDay,
	}
}

func sortRanges(ranges []schedule.ScheduleRange) {
	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].Start.Before(ranges[j].Start)
	})
}
