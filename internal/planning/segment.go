package planning

import "time"

// Segment is the sub-day business-hour window a task occupies on a given
// calendar day. It is derived on every evaluation, never persisted.
type Segment string

const (
	SegmentFull Segment = "FULL"
	SegmentAM   Segment = "AM"
	SegmentPM   Segment = "PM"
	SegmentNone Segment = "NONE"
)

// Fixed business hours, minutes from midnight local time.
const (
	morningStartMin   = 7*60 + 30
	morningEndMin     = 12 * 60
	afternoonStartMin = 13 * 60
	afternoonEndMin   = 16*60 + 30
)

func (s Segment) Valid() bool {
	switch s {
	case SegmentFull, SegmentAM, SegmentPM:
		return true
	}
	return false
}

func dayAt(day time.Time, minutes int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, day.Location())
}

// MorningWindow returns the 07:30-12:00 window on day.
func MorningWindow(day time.Time) (time.Time, time.Time) {
	return dayAt(day, morningStartMin), dayAt(day, morningEndMin)
}

// AfternoonWindow returns the 13:00-16:30 window on day.
func AfternoonWindow(day time.Time) (time.Time, time.Time) {
	return dayAt(day, afternoonStartMin), dayAt(day, afternoonEndMin)
}

func overlaps(start, end, winStart, winEnd time.Time) bool {
	return start.Before(winEnd) && end.After(winStart)
}

// SegmentOf classifies the interval [start, end) against day's business-hour
// windows: FULL when both windows are touched (a 07:30-16:30 span counts,
// lunch gap included), AM or PM when only one is, NONE when neither.
func SegmentOf(start, end, day time.Time) Segment {
	amStart, amEnd := MorningWindow(day)
	pmStart, pmEnd := AfternoonWindow(day)
	am := overlaps(start, end, amStart, amEnd)
	pm := overlaps(start, end, pmStart, pmEnd)
	switch {
	case am && pm:
		return SegmentFull
	case am:
		return SegmentAM
	case pm:
		return SegmentPM
	default:
		return SegmentNone
	}
}

// Window returns the concrete instants seg occupies on day. FULL spans
// 07:30-16:30. SegmentNone yields a zero window.
func Window(day time.Time, seg Segment) (time.Time, time.Time) {
	switch seg {
	case SegmentFull:
		return dayAt(day, morningStartMin), dayAt(day, afternoonEndMin)
	case SegmentAM:
		return MorningWindow(day)
	case SegmentPM:
		return AfternoonWindow(day)
	}
	return time.Time{}, time.Time{}
}
