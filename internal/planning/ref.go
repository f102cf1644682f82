package planning

import (
	"regexp"
	"time"
)

const refDateLayout = "2006-01-02"

var sliceRefPattern = regexp.MustCompile(`^(.+)-(\d{4}-\d{2}-\d{2})$`)

// TaskRef identifies either a whole stored task or one displayed day-slice of
// a multi-day task. The calendar grid shows each covered day of a task as a
// separate entity with a synthetic id "{taskID}-{YYYY-MM-DD}"; deleting such
// a slice shrinks the task's coverage instead of removing the row.
type TaskRef struct {
	TaskID string
	// Date is the YYYY-MM-DD of the slice; empty for whole-task refs.
	Date string
}

// ParseTaskRef splits a raw identifier into its task id and optional day
// slice. Only a trailing "-YYYY-MM-DD" that parses as a real date marks a
// slice, so task ids containing dashes round-trip intact.
func ParseTaskRef(raw string) TaskRef {
	m := sliceRefPattern.FindStringSubmatch(raw)
	if m == nil {
		return TaskRef{TaskID: raw}
	}
	if _, err := time.Parse(refDateLayout, m[2]); err != nil {
		return TaskRef{TaskID: raw}
	}
	return TaskRef{TaskID: m[1], Date: m[2]}
}

func (r TaskRef) IsSlice() bool {
	return r.Date != ""
}

// Day parses the slice date in loc at midnight.
func (r TaskRef) Day(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(refDateLayout, r.Date, loc)
}

// SyntheticID renders the ref back to its wire form.
func (r TaskRef) SyntheticID() string {
	if !r.IsSlice() {
		return r.TaskID
	}
	return r.TaskID + "-" + r.Date
}
