package reconcile

import (
	"time"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/workentry"
)

const (
	nightStartHour = 19
	nightEndHour   = 6
	minNocturnal   = time.Hour
)

// PartitionNocturnal splits an attendance segment against the fixed
// nocturnal window, 19:00 of day D through 06:00 of day D+1. Both the
// window ending on the segment's own day and the one starting on it are
// checked so segments spanning midnight partition correctly. Night
// portions shorter than an hour stay attendance.
func PartitionNocturnal(seg workentry.Segment) []workentry.Segment {
	day := time.Date(seg.Start.Year(), seg.Start.Month(), seg.Start.Day(), 0, 0, 0, 0, seg.Start.Location())

	windows := [][2]time.Time{
		{day.AddDate(0, 0, -1).Add(nightStartHour * time.Hour), day.Add(nightEndHour * time.Hour)},
		{day.Add(nightStartHour * time.Hour), day.AddDate(0, 0, 1).Add(nightEndHour * time.Hour)},
	}

	var nights [][2]time.Time
	for _, w := range windows {
		start := maxTime(seg.Start, w[0])
		end := minTime(seg.End, w[1])
		if end.Sub(start) >= minNocturnal {
			nights = append(nights, [2]time.Time{start, end})
		}
	}
	if len(nights) == 0 {
		return []workentry.Segment{seg}
	}

	sub := func(start, end time.Time, cat workentry.Category) workentry.Segment {
		out := seg
		out.Start = start
		out.End = end
		out.Category = cat
		return out
	}

	var result []workentry.Segment
	cursor := seg.Start
	for _, n := range nights {
		if n[0].After(cursor) {
			result = append(result, sub(cursor, n[0], workentry.CategoryAttendance))
		}
		result = append(result, sub(n[0], n[1], workentry.CategoryNocturnal))
		cursor = n[1]
	}
	if cursor.Before(seg.End) {
		result = append(result, sub(cursor, seg.End, workentry.CategoryAttendance))
	}
	return result
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
