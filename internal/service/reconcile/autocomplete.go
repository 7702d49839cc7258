package reconcile

import (
	"time"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/punch"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/schedule"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/workentry"
)

// noScheduleFallback is the synthesized interval length when a lone punch
// has no schedule to snap to.
const noScheduleFallback = 8 * time.Hour

// GraceState tracks one employee's rolling autocomplete budget across a
// run. Prior counts come from storage; increments stay in memory until the
// run commits them.
type GraceState struct {
	windowDays int
	limit      int
	counts     map[string]int
	added      map[string]int
}

func NewGraceState(windowDays, limit int, prior []workentry.Inconsistency) *GraceState {
	g := &GraceState{
		windowDays: windowDays,
		limit:      limit,
		counts:     make(map[string]int, len(prior)),
		added:      make(map[string]int),
	}
	for _, c := range prior {
		g.counts[dateKey(c.Date)] += c.Count
	}
	return g
}

// RollingCount sums autocompletions over the trailing window ending on
// onDate, inclusive.
func (g *GraceState) RollingCount(onDate time.Time) int {
	total := 0
	for i := 0; i < g.windowDays; i++ {
		total += g.counts[dateKey(onDate.AddDate(0, 0, -i))]
	}
	return total
}

func (g *GraceState) Exhausted(onDate time.Time) bool {
	return g.RollingCount(onDate) >= g.limit
}

func (g *GraceState) Increment(onDate time.Time) {
	key := dateKey(onDate)
	g.counts[key]++
	g.added[key]++
}

// Added returns the increments made during this run, for persistence.
func (g *GraceState) Added(employeeID string, loc *time.Location) []workentry.Inconsistency {
	out := make([]workentry.Inconsistency, 0, len(g.added))
	for key, count := range g.added {
		date, err := time.ParseInLocation("2006-01-02", key, loc)
		if err != nil {
			continue
		}
		out = append(out, workentry.Inconsistency{EmployeeID: employeeID, Date: date, Count: count})
	}
	return out
}

// ResolveLone infers the missing side of a lone punch from the resolved
// schedule, within the grace budget. The punch snaps to the numerically
// closest range boundary: closer to a start means it was an entry and the
// exit synthesizes at that range's end, and vice versa. Returns false when
// the budget is exhausted and the punch must be dropped.
func ResolveLone(lone punch.Lone, day schedule.DaySchedule, grace *GraceState, opts Options, seq *int) (punch.Interval, bool) {
	if grace.Exhausted(day.Date) {
		return punch.Interval{}, false
	}

	if day.IsEmpty() {
		// no schedule for the date: fixed-length interval anchored at the punch
		grace.Increment(day.Date)
		*seq++
		return punch.Interval{
			EmployeeID:      lone.EmployeeID,
			Start:           lone.At,
			End:             lone.At.Add(noScheduleFallback),
			IsPermit:        lone.IsPermit,
			IsAutocompleted: true,
			Seq:             *seq,
		}, true
	}

	r, asEntry := closestBoundary(lone.At, day.Ranges, opts.Tolerance)

	var start, end time.Time
	if asEntry {
		start, end = lone.At, r.End
	} else {
		start, end = r.Start, lone.At
	}
	if !end.After(start) {
		// snapping produced an empty interval, flip to the other side
		if asEntry {
			start, end = r.Start, lone.At
		} else {
			start, end = lone.At, r.End
		}
	}
	if !end.After(start) {
		return punch.Interval{}, false
	}

	grace.Increment(day.Date)
	*seq++
	return punch.Interval{
		EmployeeID:      lone.EmployeeID,
		Start:           start,
		End:             end,
		IsPermit:        lone.IsPermit,
		IsAutocompleted: true,
		Seq:             *seq,
	}, true
}

// closestBoundary picks the range whose boundary is nearest to t,
// preferring boundaries inside the tolerance window when any exist.
// The boolean is true when the nearest boundary is a range start (the
// punch reads as an entry).
func closestBoundary(t time.Time, ranges []schedule.ScheduleRange, tolerance time.Duration) (schedule.ScheduleRange, bool) {
	best := ranges[0]
	bestAsEntry := true
	bestDistance := time.Duration(-1)
	withinTolerance := false

	consider := func(r schedule.ScheduleRange, boundary time.Time, asEntry bool) {
		d := absDuration(t.Sub(boundary))
		inside := tolerance > 0 && d <= tolerance
		if withinTolerance && !inside {
			return
		}
		if (inside && !withinTolerance) || bestDistance < 0 || d < bestDistance {
			best, bestAsEntry, bestDistance = r, asEntry, d
			withinTolerance = withinTolerance || inside
		}
	}

	for _, r := range ranges {
		consider(r, r.Start, true)
		consider(r, r.End, false)
	}
	return best, bestAsEntry
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
