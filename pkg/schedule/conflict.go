package schedule

import (
	"time"

	"slotta/pkg/model"
)

// HasConflict reports whether the window [start, end), padded outward by
// bufferMinutes on both sides, overlaps any busy interval. It also returns
// the intervals that matched.
//
// Overlap uses half-open semantics: two intervals overlap iff
// aStart < bEnd && aEnd > bStart, so windows sharing only a boundary instant
// do not conflict.
//
// All-day busy intervals are excluded from conflict testing. Known
// limitation, pinned by tests; see TestHasConflictIgnoresAllDay.
func HasConflict(start, end time.Time, bufferMinutes int, busy []model.BusyInterval) (bool, []model.BusyInterval) {
	buf := time.Duration(bufferMinutes) * time.Minute
	padStart := start.Add(-buf)
	padEnd := end.Add(buf)

	var matched []model.BusyInterval
	for _, b := range busy {
		if b.AllDay {
			continue
		}
		if padStart.Before(b.End) && padEnd.After(b.Start) {
			matched = append(matched, b)
		}
	}
	return len(matched) > 0, matched
}
