package reconcile

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/employee"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/punch"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/timeoff"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/workentry"
)

func officeSnapshot(from, to time.Time) *Snapshot {
	snap := emptySnapshot(from, to)
	snap.Calendars["cal-office"] = officeCalendar("cal-office")
	snap.Employees["e1"] = employee.Employee{ID: "e1", CalendarID: calendarID("cal-office")}
	return snap
}

func TestReconcileEmployeeRegularDay(t *testing.T) {
	snap := officeSnapshot(monday, monday)
	snap.Punches["e1"] = []punch.Event{
		bioEvent("e1", lt(2026, time.March, 2, 8, 0)),
		bioEvent("e1", lt(2026, time.March, 2, 12, 0)),
		bioEvent("e1", lt(2026, time.March, 2, 13, 0)),
		bioEvent("e1", lt(2026, time.March, 2, 17, 0)),
	}

	res := reconcileEmployee(snap, snap.Employees["e1"])

	require.Len(t, res.entries, 2)
	assert.Equal(t, workentry.CategoryAttendance, res.entries[0].Category)
	assert.Equal(t, workentry.CategoryAttendance, res.entries[1].Category)
	assert.Empty(t, res.added)
	assert.Empty(t, res.dropped)
	assert.Empty(t, res.absences)
}

func TestReconcileEmployeeLateArrival(t *testing.T) {
	snap := officeSnapshot(monday, monday)
	snap.Punches["e1"] = []punch.Event{
		bioEvent("e1", lt(2026, time.March, 2, 8, 23)),
		bioEvent("e1", lt(2026, time.March, 2, 17, 0)),
	}

	res := reconcileEmployee(snap, snap.Employees["e1"])

	require.Len(t, res.entries, 4)

	assert.Equal(t, workentry.CategoryDelay, res.entries[0].Category)
	assert.Equal(t, lt(2026, time.March, 2, 8, 0).UTC(), res.entries[0].StartAt)
	assert.Equal(t, lt(2026, time.March, 2, 9, 0).UTC(), res.entries[0].EndAt)

	assert.Equal(t, workentry.CategoryAttendance, res.entries[1].Category)
	assert.Equal(t, lt(2026, time.March, 2, 9, 0).UTC(), res.entries[1].StartAt)

	// worked lunch stays within the daily cap
	assert.Equal(t, workentry.CategorySupplementary, res.entries[2].Category)
	assert.Equal(t, lt(2026, time.March, 2, 12, 0).UTC(), res.entries[2].StartAt)

	assert.Equal(t, workentry.CategoryAttendance, res.entries[3].Category)
	assert.Equal(t, lt(2026, time.March, 2, 17, 0).UTC(), res.entries[3].EndAt)
}

func TestReconcileEmployeeMidDayBreakAddsNoDelay(t *testing.T) {
	snap := officeSnapshot(monday, monday)
	// two worked intervals inside the 08:00-12:00 range; the second starts
	// late into the range but the first already covered its start
	snap.Punches["e1"] = []punch.Event{
		bioEvent("e1", lt(2026, time.March, 2, 8, 0)),
		bioEvent("e1", lt(2026, time.March, 2, 10, 0)),
		bioEvent("e1", lt(2026, time.March, 2, 11, 0)),
		bioEvent("e1", lt(2026, time.March, 2, 12, 0)),
	}

	res := reconcileEmployee(snap, snap.Employees["e1"])

	require.Len(t, res.entries, 2)
	for _, e := range res.entries {
		assert.Equal(t, workentry.CategoryAttendance, e.Category)
	}
	assert.Equal(t, lt(2026, time.March, 2, 8, 0).UTC(), res.entries[0].StartAt)
	assert.Equal(t, lt(2026, time.March, 2, 10, 0).UTC(), res.entries[0].EndAt)
	assert.Equal(t, lt(2026, time.March, 2, 11, 0).UTC(), res.entries[1].StartAt)
	assert.Equal(t, lt(2026, time.March, 2, 12, 0).UTC(), res.entries[1].EndAt)
}

func TestReconcileEmployeeLonePunchAutocompletes(t *testing.T) {
	snap := officeSnapshot(monday, monday)
	snap.Punches["e1"] = []punch.Event{
		bioEvent("e1", lt(2026, time.March, 2, 16, 55)),
	}

	res := reconcileEmployee(snap, snap.Employees["e1"])

	require.Len(t, res.entries, 1)
	assert.Equal(t, workentry.CategoryAttendance, res.entries[0].Category)
	assert.Equal(t, lt(2026, time.March, 2, 13, 0).UTC(), res.entries[0].StartAt)
	assert.Equal(t, lt(2026, time.March, 2, 16, 0).UTC(), res.entries[0].EndAt)

	require.Len(t, res.added, 1)
	assert.Equal(t, 1, res.added[0].Count)
	assert.Empty(t, res.dropped)
}

func TestReconcileEmployeeGraceExhaustedDropsLone(t *testing.T) {
	snap := officeSnapshot(monday, monday)
	snap.Counters["e1"] = map[string]int{
		dateKey(monday.AddDate(0, 0, -3)): 3,
	}
	snap.Punches["e1"] = []punch.Event{
		bioEvent("e1", lt(2026, time.March, 2, 16, 55)),
	}

	res := reconcileEmployee(snap, snap.Employees["e1"])

	assert.Empty(t, res.entries)
	assert.Empty(t, res.added)
	require.Len(t, res.dropped, 1)
	assert.Equal(t, 1, res.dropped[0].Count)
}

func TestReconcileEmployeeOvernightShiftStitches(t *testing.T) {
	snap := emptySnapshot(monday, monday)
	snap.Calendars["cal-night"] = nightCalendar("cal-night")
	snap.Employees["e1"] = employee.Employee{ID: "e1", CalendarID: calendarID("cal-night")}
	snap.Punches["e1"] = []punch.Event{
		bioEvent("e1", lt(2026, time.March, 2, 21, 50)),
		bioEvent("e1", lt(2026, time.March, 3, 5, 50)),
	}

	res := reconcileEmployee(snap, snap.Employees["e1"])

	// 21:50-05:50 rounds to 22:00-05:00 and is night work end to end
	require.Len(t, res.entries, 2)
	assert.Equal(t, workentry.CategoryNocturnal, res.entries[0].Category)
	assert.Equal(t, lt(2026, time.March, 2, 22, 0).UTC(), res.entries[0].StartAt)
	assert.Equal(t, lt(2026, time.March, 3, 0, 0).UTC(), res.entries[0].EndAt)
	assert.Equal(t, workentry.CategoryNocturnal, res.entries[1].Category)
	assert.Equal(t, lt(2026, time.March, 3, 0, 0).UTC(), res.entries[1].StartAt)
	assert.Equal(t, lt(2026, time.March, 3, 5, 0).UTC(), res.entries[1].EndAt)

	// the exit punch closed the shift, nothing was autocompleted
	assert.Empty(t, res.added)
	assert.Empty(t, res.dropped)
}

func TestReconcileEmployeeOvernightMissingExitAutocompletes(t *testing.T) {
	snap := emptySnapshot(monday, monday)
	snap.Calendars["cal-night"] = nightCalendar("cal-night")
	snap.Employees["e1"] = employee.Employee{ID: "e1", CalendarID: calendarID("cal-night")}
	snap.Punches["e1"] = []punch.Event{
		bioEvent("e1", lt(2026, time.March, 2, 21, 50)),
	}

	res := reconcileEmployee(snap, snap.Employees["e1"])

	assert.NotEmpty(t, res.entries)
	require.Len(t, res.added, 1)
}

func TestReconcileEmployeeOvernightCarrySkipsPermitPunches(t *testing.T) {
	tuesday := monday.AddDate(0, 0, 1)
	snap := emptySnapshot(monday, tuesday)
	snap.Calendars["cal-night"] = nightCalendar("cal-night")
	snap.Employees["e1"] = employee.Employee{ID: "e1", CalendarID: calendarID("cal-night")}
	snap.Periods["e1"] = []timeoff.Period{
		{
			EmployeeID: "e1",
			TimeType:   timeoff.TimeTypeOther,
			StartAt:    lt(2026, time.March, 3, 2, 0),
			EndAt:      lt(2026, time.March, 3, 3, 0),
			Approved:   true,
		},
	}
	snap.Punches["e1"] = []punch.Event{
		bioEvent("e1", lt(2026, time.March, 2, 21, 50)),
		bioEvent("e1", lt(2026, time.March, 3, 5, 50)),
	}

	res := reconcileEmployee(snap, snap.Employees["e1"])

	// the biometric exit closes the shift; the permit pair stays intact
	require.Len(t, res.entries, 3)
	assert.Equal(t, lt(2026, time.March, 2, 22, 0).UTC(), res.entries[0].StartAt)
	assert.Equal(t, lt(2026, time.March, 3, 0, 0).UTC(), res.entries[0].EndAt)
	assert.Equal(t, lt(2026, time.March, 3, 0, 0).UTC(), res.entries[1].StartAt)
	assert.Equal(t, lt(2026, time.March, 3, 5, 0).UTC(), res.entries[1].EndAt)
	assert.Equal(t, lt(2026, time.March, 3, 2, 0).UTC(), res.entries[2].StartAt)
	assert.Equal(t, lt(2026, time.March, 3, 3, 0).UTC(), res.entries[2].EndAt)

	assert.Empty(t, res.added)
	assert.Empty(t, res.dropped)
}

func TestReconcileEmployeeHolidayWorkIsExtraordinary(t *testing.T) {
	snap := officeSnapshot(monday, monday)
	snap.Holidays = []timeoff.Holiday{
		{Scope: timeoff.ScopeNational, StartDate: monday, EndDate: monday},
	}
	snap.Punches["e1"] = []punch.Event{
		bioEvent("e1", lt(2026, time.March, 2, 9, 0)),
		bioEvent("e1", lt(2026, time.March, 2, 13, 0)),
	}

	res := reconcileEmployee(snap, snap.Employees["e1"])

	require.Len(t, res.entries, 2)
	for _, e := range res.entries {
		assert.Equal(t, workentry.CategoryExtraordinary, e.Category)
	}
	// no late penalty on a day not supposed to be worked
	for _, e := range res.entries {
		assert.NotEqual(t, workentry.CategoryDelay, e.Category)
	}
}

func TestReconcileEmployeeAbsenceDetection(t *testing.T) {
	snap := officeSnapshot(monday, monday)

	res := reconcileEmployee(snap, snap.Employees["e1"])

	assert.Empty(t, res.entries)
	require.Len(t, res.absences, 1)
	assert.Equal(t, monday, res.absences[0].Date)
}

func TestReconcileEmployeeLeaveDayIsNotAbsence(t *testing.T) {
	snap := officeSnapshot(monday, monday)
	snap.Periods["e1"] = []timeoff.Period{
		{
			EmployeeID: "e1",
			TimeType:   timeoff.TimeTypeLeave,
			StartAt:    monday.AddDate(0, 0, -1),
			EndAt:      monday.AddDate(0, 0, 2),
			Approved:   true,
		},
	}

	res := reconcileEmployee(snap, snap.Employees["e1"])

	assert.Empty(t, res.absences)
	assert.Empty(t, res.entries)
}

func TestReconcileEmployeePermitBecomesSyntheticPair(t *testing.T) {
	snap := officeSnapshot(monday, monday)
	snap.Periods["e1"] = []timeoff.Period{
		{
			EmployeeID: "e1",
			TimeType:   timeoff.TimeTypeOther,
			StartAt:    lt(2026, time.March, 2, 10, 0),
			EndAt:      lt(2026, time.March, 2, 11, 0),
			Approved:   true,
		},
	}
	snap.Punches["e1"] = []punch.Event{
		bioEvent("e1", lt(2026, time.March, 2, 8, 0)),
		bioEvent("e1", lt(2026, time.March, 2, 10, 0)),
		bioEvent("e1", lt(2026, time.March, 2, 11, 0)),
		bioEvent("e1", lt(2026, time.March, 2, 12, 0)),
	}

	res := reconcileEmployee(snap, snap.Employees["e1"])

	// permit hour covered without autocompletion or rounding
	require.Len(t, res.entries, 3)
	assert.Equal(t, lt(2026, time.March, 2, 10, 0).UTC(), res.entries[1].StartAt)
	assert.Equal(t, lt(2026, time.March, 2, 11, 0).UTC(), res.entries[1].EndAt)
	assert.Empty(t, res.added)
}

func TestReconcileEmployeeLactationCapSplitsOvertime(t *testing.T) {
	snap := officeSnapshot(monday, monday)
	snap.Lactations["e1"] = []timeoff.LactationPeriod{
		{EmployeeID: "e1", StartDate: monday.AddDate(0, 0, -10), EndDate: monday.AddDate(0, 0, 10)},
	}
	// 08:00-12:00 inside, 12:00-16:00 outside the morning-only exception
	snap.Punches["e1"] = []punch.Event{
		bioEvent("e1", lt(2026, time.March, 2, 8, 0)),
		bioEvent("e1", lt(2026, time.March, 2, 12, 0)),
		bioEvent("e1", lt(2026, time.March, 2, 12, 0)),
		bioEvent("e1", lt(2026, time.March, 2, 16, 0)),
	}
	snap.Calendars["cal-morning"] = morningCalendar("cal-morning")
	emp := snap.Employees["e1"]
	emp.CalendarID = calendarID("cal-morning")
	snap.Employees["e1"] = emp

	res := reconcileEmployee(snap, snap.Employees["e1"])

	// 4h worked inside leaves 2h of the 6h lactation cap for overtime
	byCat := map[workentry.Category]time.Duration{}
	for _, e := range res.entries {
		byCat[e.Category] += e.EndAt.Sub(e.StartAt)
	}
	assert.Equal(t, 4*time.Hour, byCat[workentry.CategoryAttendance])
	assert.Equal(t, 2*time.Hour, byCat[workentry.CategorySupplementary])
	assert.Equal(t, 2*time.Hour, byCat[workentry.CategoryExtraordinary])
}

func TestFanOutProcessesAllEmployees(t *testing.T) {
	snap := officeSnapshot(monday, monday)
	snap.Employees["e2"] = employee.Employee{ID: "e2", CalendarID: calendarID("cal-office")}
	snap.Employees["e3"] = employee.Employee{ID: "e3", CalendarID: calendarID("cal-office")}

	svc := &ReconcileServiceImpl{
		opts:   testOptions(),
		loc:    testLoc,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	employees := []employee.Employee{
		snap.Employees["e1"], snap.Employees["e2"], snap.Employees["e3"],
	}
	results := svc.fanOut(employees, snap)

	assert.Len(t, results, 3)
}
