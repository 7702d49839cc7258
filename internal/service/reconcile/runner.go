package reconcile

import (
	"sort"
	"time"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/employee"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/punch"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/reconciliation"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/schedule"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/workentry"
)

// dayWork accumulates one local day's classified segments before the
// finishing passes run. A day with an overnight shift stays open until
// the next day decides how the trailing lone punch closes.
type dayWork struct {
	date    time.Time
	day     schedule.DaySchedule
	ranges  []schedule.ScheduleRange
	inside  []workentry.Segment
	delay   []workentry.Segment
	outside []workentry.Segment
}

func (d *dayWork) add(parts ClassifiedParts) {
	// delay belongs to the day's first interval into a range; a later
	// interval re-entering covered time is a break, not a late arrival
	for _, s := range parts.Delay {
		if !d.covered(s) {
			d.delay = append(d.delay, s)
		}
	}
	d.inside = append(d.inside, parts.Inside...)
	d.outside = append(d.outside, parts.Outside...)
}

func (d *dayWork) covered(s workentry.Segment) bool {
	for _, e := range d.delay {
		if s.Start.Before(e.End) && e.Start.Before(s.End) {
			return true
		}
	}
	for _, e := range d.inside {
		if s.Start.Before(e.End) && e.Start.Before(s.End) {
			return true
		}
	}
	return false
}

func (d *dayWork) insideDuration() time.Duration {
	var total time.Duration
	for _, s := range d.inside {
		total += s.Duration()
	}
	return total
}

// reconcileEmployee runs the full day-by-day pipeline for one employee.
// Days are processed chronologically so the grace window and overnight
// carry both see consistent history.
func reconcileEmployee(snap *Snapshot, emp employee.Employee) employeeResult {
	var res employeeResult
	var segs []workentry.Segment
	var open *dayWork    // previous day held open by an overnight shift
	var carry *punch.Lone // its unclosed trailing punch

	grace := NewGraceState(snap.Options.GraceWindowDays, snap.Options.GraceLimit, snap.CountersFor(emp.ID))
	seq := 0
	dropped := map[string]int{}

	byDay := groupEventsByDay(snap, emp.ID)

	finalize := func(d *dayWork) {
		supplementary, extraordinary := SplitByCap(
			d.outside,
			d.insideDuration(),
			EffectiveCap(snap, emp.ID, d.date),
			!d.day.IsEmpty(),
		)

		var all []workentry.Segment
		for _, s := range d.inside {
			all = append(all, PartitionNocturnal(s)...)
		}
		all = append(all, d.delay...)
		all = append(all, supplementary...)
		all = append(all, extraordinary...)
		segs = append(segs, FilterDay(all, snap, emp.ID, d.date)...)
	}

	closeCarry := func(next []punch.Event) []punch.Event {
		stitchEnd := open.ranges[len(open.ranges)-1].End
		// only a biometric punch may close a biometric shift; permit
		// events stay in the stream and pair among themselves
		closeIdx := -1
		for i, ev := range next {
			if !ev.IsPermit {
				closeIdx = i
				break
			}
		}
		if closeIdx >= 0 && next[closeIdx].PunchedAt.After(carry.At) && next[closeIdx].PunchedAt.Before(stitchEnd) {
			seq++
			open.add(Classify(punch.Interval{
				EmployeeID: emp.ID,
				Start:      carry.At,
				End:        next[closeIdx].PunchedAt,
				Seq:        seq,
			}, open.ranges))
			next = append(next[:closeIdx:closeIdx], next[closeIdx+1:]...)
		} else if iv, ok := ResolveLone(*carry, open.day, grace, snap.Options, &seq); ok {
			open.add(Classify(iv, open.ranges))
		} else {
			dropped[dateKey(open.date)]++
		}
		finalize(open)
		open, carry = nil, nil
		return next
	}

	for date := snap.From; !date.After(snap.To); date = date.AddDate(0, 0, 1) {
		events := byDay[dateKey(date)]
		events = append(events, permitEvents(snap, emp.ID, date)...)
		sortEvents(events)

		stitchedToday := false
		if carry != nil {
			before := len(events)
			events = closeCarry(events)
			stitchedToday = len(events) < before
		}

		hint := time.Time{}
		if len(events) > 0 {
			hint = events[0].PunchedAt
		}
		day := Resolve(snap, emp.ID, date, hint)

		ranges := day.Ranges
		if day.HasSpecial() {
			// a special range runs to next midnight; stitch the next day's
			// first range on so the overnight interval classifies as one shift
			next := Resolve(snap, emp.ID, date.AddDate(0, 0, 1), hint)
			if !next.IsEmpty() {
				ranges = append(append([]schedule.ScheduleRange{}, ranges...), next.Ranges[0])
			}
		}

		cur := &dayWork{date: date, day: day, ranges: ranges}

		if len(events) == 0 {
			if !stitchedToday && !day.IsEmpty() && !DayOff(snap, emp.ID, date) {
				res.absences = append(res.absences, reconciliation.AbsenceDay{EmployeeID: emp.ID, Date: date})
			}
			continue
		}

		intervals, lones := Pair(events, &seq)

		// an unclosed punch near or after a special range's start likely
		// belongs to an overnight shift still in progress; hold it for the
		// next day instead of autocompleting now
		if day.HasSpecial() && len(lones) > 0 {
			last := lones[len(lones)-1]
			holdFrom := day.Ranges[len(day.Ranges)-1].Start.Add(-snap.Options.Tolerance)
			if !last.IsPermit && !last.At.Before(holdFrom) {
				carry = &last
				lones = lones[:len(lones)-1]
			}
		}

		for _, l := range lones {
			if iv, ok := ResolveLone(l, day, grace, snap.Options, &seq); ok {
				intervals = append(intervals, iv)
			} else {
				dropped[dateKey(date)]++
			}
		}

		// chronological order, so the first interval into a range decides
		// whether the range start was covered or arrived at late
		sort.SliceStable(intervals, func(i, j int) bool {
			return intervals[i].Start.Before(intervals[j].Start)
		})
		for _, iv := range intervals {
			cur.add(Classify(iv, ranges))
		}

		if carry != nil {
			open = cur
		} else {
			finalize(cur)
		}
	}

	if carry != nil {
		// run boundary: the look-ahead day's punches may still close the shift
		next := byDay[dateKey(snap.To.AddDate(0, 0, 1))]
		sortEvents(next)
		closeCarry(next)
	}

	res.entries = Assemble(segs)
	res.added = grace.Added(emp.ID, snap.Loc)
	sort.SliceStable(res.added, func(i, j int) bool {
		return res.added[i].Date.Before(res.added[j].Date)
	})
	for key, count := range dropped {
		date, err := time.ParseInLocation("2006-01-02", key, snap.Loc)
		if err != nil {
			continue
		}
		res.dropped = append(res.dropped, workentry.Inconsistency{EmployeeID: emp.ID, Date: date, Count: count})
	}
	sort.SliceStable(res.dropped, func(i, j int) bool {
		return res.dropped[i].Date.Before(res.dropped[j].Date)
	})
	return res
}

// groupEventsByDay converts the employee's stored UTC punches to the batch
// zone and buckets them by local calendar day.
func groupEventsByDay(snap *Snapshot, employeeID string) map[string][]punch.Event {
	byDay := map[string][]punch.Event{}
	for _, ev := range snap.Punches[employeeID] {
		ev.PunchedAt = ev.PunchedAt.In(snap.Loc)
		byDay[dateKey(ev.PunchedAt)] = append(byDay[dateKey(ev.PunchedAt)], ev)
	}
	return byDay
}

// permitEvents synthesizes an entry/exit pair for each approved permit
// overlapping the day, clamped to the day's bounds. Permit punches carry
// IsPermit so pairing and rounding treat them separately.
func permitEvents(snap *Snapshot, employeeID string, date time.Time) []punch.Event {
	dayEnd := date.AddDate(0, 0, 1)
	var out []punch.Event
	for _, p := range snap.PermitsOn(employeeID, date) {
		start := maxTime(p.StartAt.In(snap.Loc), date)
		end := minTime(p.EndAt.In(snap.Loc), dayEnd)
		if !end.After(start) {
			continue
		}
		out = append(out,
			punch.Event{EmployeeID: employeeID, PunchedAt: start, IsPermit: true},
			punch.Event{EmployeeID: employeeID, PunchedAt: end, IsPermit: true},
		)
	}
	return out
}

func sortEvents(events []punch.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].PunchedAt.Before(events[j].PunchedAt)
	})
}
