package planning

import (
	"time"

	"github.com/pkg/errors"
)

type DayRemovalKind int

const (
	// RemovalDelete drops the task entirely, the removed day was its only one.
	RemovalDelete DayRemovalKind = iota
	// RemovalShrink moves one of the task's bounds off the removed day.
	RemovalShrink
	// RemovalSplit cuts a middle day out, leaving two disjoint ranges.
	RemovalSplit
)

// DayRemoval is the computed reshaping of a task after one covered day is
// removed. For RemovalSplit, [Start, End) is the head kept on the original
// row and [TailStart, TailEnd) the new row to create.
type DayRemoval struct {
	Kind      DayRemovalKind
	Start     time.Time
	End       time.Time
	TailStart time.Time
	TailEnd   time.Time
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func atClockOf(day, ref time.Time) time.Time {
	y, m, d := day.Date()
	h, min, sec := ref.Clock()
	return time.Date(y, m, d, h, min, sec, 0, day.Location())
}

// RemoveDay computes the coverage of [start, end) after day is cut out.
// Shifted bounds keep the clock times of the original bounds, so a task
// running 07:30-16:30 stays aligned to its segment. day must fall within
// the task's covered days.
func RemoveDay(start, end, day time.Time) (DayRemoval, error) {
	if !start.Before(end) {
		return DayRemoval{}, errors.Errorf("invalid task range: start %s not before end %s", start, end)
	}
	firstDay := sameDay(start, day)
	lastDay := sameDay(end, day)
	switch {
	case firstDay && lastDay:
		return DayRemoval{Kind: RemovalDelete}, nil
	case firstDay:
		return DayRemoval{
			Kind:  RemovalShrink,
			Start: atClockOf(day.AddDate(0, 0, 1), start),
			End:   end,
		}, nil
	case lastDay:
		return DayRemoval{
			Kind:  RemovalShrink,
			Start: start,
			End:   atClockOf(day.AddDate(0, 0, -1), end),
		}, nil
	}
	// middle day: midnight of day must lie strictly inside the range
	if !day.After(start) || !day.Before(end) {
		return DayRemoval{}, errors.Errorf("day %s not covered by task", day.Format(refDateLayout))
	}
	return DayRemoval{
		Kind:      RemovalSplit,
		Start:     start,
		End:       atClockOf(day.AddDate(0, 0, -1), end),
		TailStart: atClockOf(day.AddDate(0, 0, 1), start),
		TailEnd:   end,
	}, nil
}
