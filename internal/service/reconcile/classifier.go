package reconcile

import (
	"time"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/punch"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/schedule"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/workentry"
)

// ClassifiedParts partitions one rounded worked interval against the day
// schedule. Inside, Delay and Outside together cover the rounded interval
// with no gaps or overlaps; Delay additionally extends before the rounded
// entry down to the range's nominal start.
type ClassifiedParts struct {
	Inside  []workentry.Segment
	Delay   []workentry.Segment
	Outside []workentry.Segment // category assigned later by the cap splitter
}

// InsideDuration sums worked in-schedule time, consumed by the cap
// splitter's budget.
func (p ClassifiedParts) InsideDuration() time.Duration {
	var total time.Duration
	for _, s := range p.Inside {
		total += s.Duration()
	}
	return total
}

// Classify walks the schedule ranges in start order and slices the worked
// interval into inside, delay and outside portions. When the worker
// clocked in late into an already-open range, the time from the range's
// nominal start to the rounded clock-in becomes delay rather than a
// missing-attendance gap.
func Classify(iv punch.Interval, ranges []schedule.ScheduleRange) ClassifiedParts {
	var parts ClassifiedParts

	effStart := RoundEntry(iv.Start, iv.IsPermit)
	effEnd := RoundExit(iv.End, iv.IsPermit)
	if !effEnd.After(effStart) {
		// rounding collapsed the interval entirely
		return parts
	}

	seg := func(start, end time.Time, cat workentry.Category) workentry.Segment {
		return workentry.Segment{
			EmployeeID:      iv.EmployeeID,
			Start:           start,
			End:             end,
			Category:        cat,
			IsAutocompleted: iv.IsAutocompleted,
			IsPermit:        iv.IsPermit,
			Seq:             iv.Seq,
		}
	}

	cursor := effStart
	for _, r := range ranges {
		if !r.End.After(cursor) {
			continue
		}
		if !r.Start.Before(effEnd) {
			break
		}

		if cursor.Before(r.Start) {
			out := minTime(r.Start, effEnd)
			parts.Outside = append(parts.Outside, seg(cursor, out, ""))
			cursor = out
			if !cursor.Before(effEnd) {
				break
			}
		}

		// cursor now sits inside [r.Start, r.End); permits excuse lateness
		if !iv.IsPermit && cursor.Equal(effStart) && effStart.After(r.Start) {
			parts.Delay = append(parts.Delay, seg(r.Start, effStart, workentry.CategoryDelay))
		}

		in := minTime(r.End, effEnd)
		if in.After(cursor) {
			parts.Inside = append(parts.Inside, seg(cursor, in, workentry.CategoryAttendance))
			cursor = in
		}
		if !cursor.Before(effEnd) {
			break
		}
	}

	if cursor.Before(effEnd) {
		parts.Outside = append(parts.Outside, seg(cursor, effEnd, ""))
	}
	return parts
}

// RoundEntry rounds a clock-in up to the next full hour when it carries
// minutes. Permit-derived punches are never rounded.
func RoundEntry(t time.Time, isPermit bool) time.Time {
	if isPermit {
		return t
	}
	truncated := t.Truncate(time.Hour)
	if truncated.Equal(t) {
		return t
	}
	return truncated.Add(time.Hour)
}

// RoundExit rounds a clock-out down to the full hour. Permit-derived
// punches are never rounded.
func RoundExit(t time.Time, isPermit bool) time.Time {
	if isPermit {
		return t
	}
	return t.Truncate(time.Hour)
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
