package reconcile

import (
	"time"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/employee"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/punch"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/schedule"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/timeoff"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/workentry"
)

var testLoc = time.FixedZone("UTC-05:00", -5*3600)

// lt builds a local timestamp in the test zone.
func lt(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, testLoc)
}

func testOptions() Options {
	return Options{
		ShiftCap:        8 * time.Hour,
		LactationCap:    6 * time.Hour,
		Tolerance:       2 * time.Hour,
		GraceWindowDays: 30,
		GraceLimit:      3,
		FallbackMode:    "employee",
		Workers:         2,
	}
}

func emptySnapshot(from, to time.Time) *Snapshot {
	return &Snapshot{
		Loc:           testLoc,
		Options:       testOptions(),
		From:          from,
		To:            to,
		Employees:     map[string]employee.Employee{},
		Calendars:     map[string]schedule.Calendar{},
		DeptCalendars: map[string][]schedule.Calendar{},
		Assignments:   map[string][]schedule.CalendarAssignment{},
		Exceptions:    map[string][]schedule.ShiftException{},
		Periods:       map[string][]timeoff.Period{},
		Lactations:    map[string][]timeoff.LactationPeriod{},
		Counters:      map[string]map[string]int{},
		Punches:       map[string][]punch.Event{},
	}
}

// officeCalendar is a Monday-Friday 08:00-12:00 / 13:00-17:00 grid.
func officeCalendar(id string) schedule.Calendar {
	cal := schedule.Calendar{ID: id, Name: "office", Department: "operations"}
	for wd := time.Monday; wd <= time.Friday; wd++ {
		cal.Ranges = append(cal.Ranges,
			schedule.CalendarRange{CalendarID: id, Weekday: wd, StartMinutes: 8 * 60, EndMinutes: 12 * 60},
			schedule.CalendarRange{CalendarID: id, Weekday: wd, StartMinutes: 13 * 60, EndMinutes: 17 * 60},
		)
	}
	return cal
}

// nightCalendar works 22:00-24:00 plus 00:00-06:00 every weekday, the
// split encoding of a 22:00-06:00 overnight shift.
func nightCalendar(id string) schedule.Calendar {
	cal := schedule.Calendar{ID: id, Name: "night", Department: "operations"}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		cal.Ranges = append(cal.Ranges,
			schedule.CalendarRange{CalendarID: id, Weekday: wd, StartMinutes: 0, EndMinutes: 6 * 60},
			schedule.CalendarRange{CalendarID: id, Weekday: wd, StartMinutes: 22 * 60, EndMinutes: 24 * 60},
		)
	}
	return cal
}

// morningCalendar works 08:00-12:00 only, Monday through Friday.
func morningCalendar(id string) schedule.Calendar {
	cal := schedule.Calendar{ID: id, Name: "morning", Department: "operations"}
	for wd := time.Monday; wd <= time.Friday; wd++ {
		cal.Ranges = append(cal.Ranges, schedule.CalendarRange{
			CalendarID: id, Weekday: wd, StartMinutes: 8 * 60, EndMinutes: 12 * 60,
		})
	}
	return cal
}

func calendarID(id string) *string {
	return &id
}

func bioEvent(employeeID string, at time.Time) punch.Event {
	return punch.Event{EmployeeID: employeeID, PunchedAt: at.UTC()}
}

func dayRanges(start1, end1, start2, end2 time.Time) []schedule.ScheduleRange {
	return []schedule.ScheduleRange{
		{Start: start1, End: end1},
		{Start: start2, End: end2},
	}
}

func seg(employeeID string, start, end time.Time, cat workentry.Category) workentry.Segment {
	return workentry.Segment{EmployeeID: employeeID, Start: start, End: end, Category: cat}
}
