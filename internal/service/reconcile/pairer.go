package reconcile

import (
	"sort"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/punch"
)

// Pair turns one employee's events for a local day into worked intervals
// and leftover lone punches. Events alternate role by position: the first
// event of a run opens an interval, the next closes it. Permit punches
// pair only against each other, so a permit exit can never close a
// biometric entry.
func Pair(events []punch.Event, seq *int) ([]punch.Interval, []punch.Lone) {
	sorted := make([]punch.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PunchedAt.Before(sorted[j].PunchedAt)
	})

	var biometric, permits []punch.Event
	for _, ev := range sorted {
		if ev.IsPermit {
			permits = append(permits, ev)
		} else {
			biometric = append(biometric, ev)
		}
	}

	intervals, lones := pairRun(biometric, seq)
	permitIntervals, permitLones := pairRun(permits, seq)
	intervals = append(intervals, permitIntervals...)
	lones = append(lones, permitLones...)

	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})
	sort.SliceStable(lones, func(i, j int) bool {
		return lones[i].At.Before(lones[j].At)
	})
	return intervals, lones
}

func pairRun(events []punch.Event, seq *int) ([]punch.Interval, []punch.Lone) {
	var intervals []punch.Interval
	var lones []punch.Lone

	i := 0
	for i+1 < len(events) {
		in, out := events[i], events[i+1]
		if !out.PunchedAt.After(in.PunchedAt) {
			// pairing defect: requeue both for the autocomplete path
			lones = append(lones, loneOf(in), loneOf(out))
			i += 2
			continue
		}
		*seq++
		intervals = append(intervals, punch.Interval{
			EmployeeID: in.EmployeeID,
			Start:      in.PunchedAt,
			End:        out.PunchedAt,
			IsPermit:   in.IsPermit,
			Seq:        *seq,
		})
		i += 2
	}
	if i < len(events) {
		lones = append(lones, loneOf(events[i]))
	}
	return intervals, lones
}

func loneOf(ev punch.Event) punch.Lone {
	return punch.Lone{
		EmployeeID: ev.EmployeeID,
		At:         ev.PunchedAt,
		IsPermit:   ev.IsPermit,
	}
}
