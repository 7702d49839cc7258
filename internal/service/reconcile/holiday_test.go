package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/employee"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/timeoff"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/workentry"
)

func TestDayOffNationalHoliday(t *testing.T) {
	snap := emptySnapshot(monday, monday)
	snap.Employees["e1"] = employee.Employee{ID: "e1", City: "quito"}
	snap.Holidays = []timeoff.Holiday{
		{Scope: timeoff.ScopeNational, StartDate: monday, EndDate: monday},
	}

	assert.True(t, DayOff(snap, "e1", monday))
	assert.False(t, DayOff(snap, "e1", monday.AddDate(0, 0, 1)))
}

func TestDayOffLocalHolidayMatchesCity(t *testing.T) {
	city := "cuenca"
	snap := emptySnapshot(monday, monday)
	snap.Employees["e1"] = employee.Employee{ID: "e1", City: "cuenca"}
	snap.Employees["e2"] = employee.Employee{ID: "e2", City: "quito"}
	snap.Holidays = []timeoff.Holiday{
		{Scope: timeoff.ScopeLocal, City: &city, StartDate: monday, EndDate: monday},
	}

	assert.True(t, DayOff(snap, "e1", monday))
	assert.False(t, DayOff(snap, "e2", monday))
}

func TestDayOffFullDayLeave(t *testing.T) {
	snap := emptySnapshot(monday, monday)
	snap.Employees["e1"] = employee.Employee{ID: "e1"}
	snap.Periods["e1"] = []timeoff.Period{
		{
			EmployeeID: "e1",
			TimeType:   timeoff.TimeTypeLeave,
			StartAt:    monday.AddDate(0, 0, -2),
			EndAt:      monday.AddDate(0, 0, 3),
			Approved:   true,
		},
	}

	assert.True(t, DayOff(snap, "e1", monday))
}

func TestDayOffPartialLeaveDoesNotCover(t *testing.T) {
	snap := emptySnapshot(monday, monday)
	snap.Employees["e1"] = employee.Employee{ID: "e1"}
	snap.Periods["e1"] = []timeoff.Period{
		{
			EmployeeID: "e1",
			TimeType:   timeoff.TimeTypeLeave,
			StartAt:    lt(2026, time.March, 2, 10, 0),
			EndAt:      lt(2026, time.March, 2, 15, 0),
			Approved:   true,
		},
	}

	assert.False(t, DayOff(snap, "e1", monday))
}

func TestFilterDayReclassifiesHolidayWork(t *testing.T) {
	snap := emptySnapshot(monday, monday)
	snap.Employees["e1"] = employee.Employee{ID: "e1"}
	snap.Holidays = []timeoff.Holiday{
		{Scope: timeoff.ScopeNational, StartDate: monday, EndDate: monday},
	}

	segs := []workentry.Segment{
		seg("e1", lt(2026, time.March, 2, 8, 0), lt(2026, time.March, 2, 9, 0), workentry.CategoryDelay),
		seg("e1", lt(2026, time.March, 2, 9, 0), lt(2026, time.March, 2, 12, 0), workentry.CategoryAttendance),
		seg("e1", lt(2026, time.March, 2, 12, 0), lt(2026, time.March, 2, 13, 0), workentry.CategorySupplementary),
	}

	out := FilterDay(segs, snap, "e1", monday)

	require.Len(t, out, 2)
	assert.Equal(t, workentry.CategoryExtraordinary, out[0].Category)
	assert.Equal(t, workentry.CategoryExtraordinary, out[1].Category)
}

func TestFilterDayRegularDayPassesThrough(t *testing.T) {
	snap := emptySnapshot(monday, monday)
	snap.Employees["e1"] = employee.Employee{ID: "e1"}

	segs := []workentry.Segment{
		seg("e1", lt(2026, time.March, 2, 8, 0), lt(2026, time.March, 2, 9, 0), workentry.CategoryDelay),
	}

	out := FilterDay(segs, snap, "e1", monday)

	require.Len(t, out, 1)
	assert.Equal(t, workentry.CategoryDelay, out[0].Category)
}
