package reconcile

import (
	"sort"
	"time"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/workentry"
)

// EffectiveCap returns the daily overtime cap for the employee: the
// lactation cap while the date falls inside an active lactation period,
// the standard shift cap otherwise.
func EffectiveCap(snap *Snapshot, employeeID string, date time.Time) time.Duration {
	if snap.InLactation(employeeID, date) {
		return snap.Options.LactationCap
	}
	return snap.Options.ShiftCap
}

// SplitByCap accumulates out-of-schedule segments chronologically against
// the remaining daily budget: cap minus in-schedule hours already worked.
// The within-budget portion is supplementary, the remainder extraordinary.
// A day with no resolvable schedule is entirely extraordinary.
func SplitByCap(outside []workentry.Segment, insideWorked time.Duration, cap time.Duration, hasSchedule bool) (supplementary, extraordinary []workentry.Segment) {
	sorted := make([]workentry.Segment, len(outside))
	copy(sorted, outside)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	if !hasSchedule {
		for _, s := range sorted {
			s.Category = workentry.CategoryExtraordinary
			extraordinary = append(extraordinary, s)
		}
		return supplementary, extraordinary
	}

	budget := cap - insideWorked
	if budget < 0 {
		budget = 0
	}

	for _, s := range sorted {
		d := s.Duration()
		switch {
		case budget <= 0:
			s.Category = workentry.CategoryExtraordinary
			extraordinary = append(extraordinary, s)
		case d <= budget:
			s.Category = workentry.CategorySupplementary
			supplementary = append(supplementary, s)
			budget -= d
		default:
			cut := s.Start.Add(budget)
			within := s
			within.End = cut
			within.Category = workentry.CategorySupplementary
			supplementary = append(supplementary, within)

			beyond := s
			beyond.Start = cut
			beyond.Category = workentry.CategoryExtraordinary
			extraordinary = append(extraordinary, beyond)
			budget = 0
		}
	}
	return supplementary, extraordinary
}
