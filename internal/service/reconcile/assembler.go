package reconcile

import (
	"sort"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/workentry"
)

// Assemble performs final overlap resolution, strips internal flags and
// converts segment boundaries back to UTC. An autocompleted segment that
// overlaps any other segment of the same employee loses; among equally
// valid overlaps the earliest-created segment survives. Output order is
// stable by (employee_id, start).
func Assemble(segs []workentry.Segment) []workentry.WorkEntry {
	ordered := make([]workentry.Segment, len(segs))
	copy(ordered, segs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Seq < ordered[j].Seq
	})

	var kept []workentry.Segment
	for _, s := range ordered {
		conflict := -1
		for i, k := range kept {
			if k.EmployeeID == s.EmployeeID && k.Overlaps(s) {
				conflict = i
				break
			}
		}
		if conflict < 0 {
			kept = append(kept, s)
			continue
		}
		if s.IsAutocompleted {
			// the manually-confirmed (or earlier) side wins
			continue
		}
		if kept[conflict].IsAutocompleted {
			kept[conflict] = s
			continue
		}
		kept = append(kept, s)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].EmployeeID != kept[j].EmployeeID {
			return kept[i].EmployeeID < kept[j].EmployeeID
		}
		return kept[i].Start.Before(kept[j].Start)
	})

	entries := make([]workentry.WorkEntry, 0, len(kept))
	for _, s := range kept {
		entries = append(entries, workentry.WorkEntry{
			EmployeeID: s.EmployeeID,
			StartAt:    s.Start.UTC(),
			EndAt:      s.End.UTC(),
			Category:   s.Category,
		})
	}
	return entries
}
