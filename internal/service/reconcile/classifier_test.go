package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/punch"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/schedule"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/workentry"
)

func TestRoundEntry(t *testing.T) {
	assert.Equal(t, lt(2026, time.March, 2, 9, 0), RoundEntry(lt(2026, time.March, 2, 8, 23), false))
	assert.Equal(t, lt(2026, time.March, 2, 8, 0), RoundEntry(lt(2026, time.March, 2, 8, 0), false))
	assert.Equal(t, lt(2026, time.March, 2, 8, 23), RoundEntry(lt(2026, time.March, 2, 8, 23), true))
}

func TestRoundExit(t *testing.T) {
	assert.Equal(t, lt(2026, time.March, 2, 16, 0), RoundExit(lt(2026, time.March, 2, 16, 55), false))
	assert.Equal(t, lt(2026, time.March, 2, 17, 0), RoundExit(lt(2026, time.March, 2, 17, 0), false))
	assert.Equal(t, lt(2026, time.March, 2, 16, 55), RoundExit(lt(2026, time.March, 2, 16, 55), true))
}

func TestClassifyLateArrivalProducesDelay(t *testing.T) {
	ranges := dayRanges(
		lt(2026, time.March, 2, 8, 0), lt(2026, time.March, 2, 12, 0),
		lt(2026, time.March, 2, 13, 0), lt(2026, time.March, 2, 17, 0),
	)
	iv := punch.Interval{
		EmployeeID: "e1",
		Start:      lt(2026, time.March, 2, 8, 23),
		End:        lt(2026, time.March, 2, 17, 0),
		Seq:        1,
	}

	parts := Classify(iv, ranges)

	require.Len(t, parts.Delay, 1)
	assert.Equal(t, lt(2026, time.March, 2, 8, 0), parts.Delay[0].Start)
	assert.Equal(t, lt(2026, time.March, 2, 9, 0), parts.Delay[0].End)
	assert.Equal(t, workentry.CategoryDelay, parts.Delay[0].Category)

	require.Len(t, parts.Inside, 2)
	assert.Equal(t, lt(2026, time.March, 2, 9, 0), parts.Inside[0].Start)
	assert.Equal(t, lt(2026, time.March, 2, 12, 0), parts.Inside[0].End)
	assert.Equal(t, lt(2026, time.March, 2, 13, 0), parts.Inside[1].Start)
	assert.Equal(t, lt(2026, time.March, 2, 17, 0), parts.Inside[1].End)

	// worked through lunch
	require.Len(t, parts.Outside, 1)
	assert.Equal(t, lt(2026, time.March, 2, 12, 0), parts.Outside[0].Start)
	assert.Equal(t, lt(2026, time.March, 2, 13, 0), parts.Outside[0].End)

	assert.Equal(t, 7*time.Hour, parts.InsideDuration())
}

func TestClassifyCoversRoundedIntervalWithoutGaps(t *testing.T) {
	ranges := dayRanges(
		lt(2026, time.March, 2, 8, 0), lt(2026, time.March, 2, 12, 0),
		lt(2026, time.March, 2, 13, 0), lt(2026, time.March, 2, 17, 0),
	)
	iv := punch.Interval{
		EmployeeID: "e1",
		Start:      lt(2026, time.March, 2, 6, 40),
		End:        lt(2026, time.March, 2, 19, 15),
		Seq:        1,
	}

	parts := Classify(iv, ranges)

	var all []workentry.Segment
	all = append(all, parts.Inside...)
	all = append(all, parts.Outside...)
	// delay extends before the rounded entry and is excluded from coverage

	var total time.Duration
	for _, s := range all {
		total += s.Duration()
	}
	effStart := RoundEntry(iv.Start, false)
	effEnd := RoundExit(iv.End, false)
	assert.Equal(t, effEnd.Sub(effStart), total)
}

func TestClassifyOnTimeHasNoDelay(t *testing.T) {
	ranges := []schedule.ScheduleRange{
		{Start: lt(2026, time.March, 2, 8, 0), End: lt(2026, time.March, 2, 12, 0)},
	}
	iv := punch.Interval{
		EmployeeID: "e1",
		Start:      lt(2026, time.March, 2, 8, 0),
		End:        lt(2026, time.March, 2, 12, 0),
		Seq:        1,
	}

	parts := Classify(iv, ranges)

	assert.Empty(t, parts.Delay)
	assert.Empty(t, parts.Outside)
	require.Len(t, parts.Inside, 1)
	assert.Equal(t, 4*time.Hour, parts.InsideDuration())
}

func TestClassifyNoScheduleIsAllOutside(t *testing.T) {
	iv := punch.Interval{
		EmployeeID: "e1",
		Start:      lt(2026, time.March, 2, 9, 0),
		End:        lt(2026, time.March, 2, 13, 0),
		Seq:        1,
	}

	parts := Classify(iv, nil)

	assert.Empty(t, parts.Inside)
	assert.Empty(t, parts.Delay)
	require.Len(t, parts.Outside, 1)
	assert.Equal(t, 4*time.Hour, parts.Outside[0].Duration())
}

func TestClassifyRoundingCanCollapseInterval(t *testing.T) {
	iv := punch.Interval{
		EmployeeID: "e1",
		Start:      lt(2026, time.March, 2, 9, 10),
		End:        lt(2026, time.March, 2, 9, 50),
		Seq:        1,
	}

	parts := Classify(iv, nil)

	assert.Empty(t, parts.Inside)
	assert.Empty(t, parts.Delay)
	assert.Empty(t, parts.Outside)
}

func TestClassifyPermitIntervalIsNotRounded(t *testing.T) {
	ranges := []schedule.ScheduleRange{
		{Start: lt(2026, time.March, 2, 8, 0), End: lt(2026, time.March, 2, 12, 0)},
	}
	iv := punch.Interval{
		EmployeeID: "e1",
		Start:      lt(2026, time.March, 2, 9, 10),
		End:        lt(2026, time.March, 2, 10, 40),
		IsPermit:   true,
		Seq:        1,
	}

	parts := Classify(iv, ranges)

	assert.Empty(t, parts.Delay)
	require.Len(t, parts.Inside, 1)
	assert.Equal(t, lt(2026, time.March, 2, 9, 10), parts.Inside[0].Start)
	assert.Equal(t, lt(2026, time.March, 2, 10, 40), parts.Inside[0].End)
	assert.True(t, parts.Inside[0].IsPermit)
}
