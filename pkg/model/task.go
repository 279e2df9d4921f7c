package model

import (
	"fmt"
	"strings"
	"time"
)

// CustomTime accepts the timestamp formats task sources actually emit:
// Taskwarrior compact UTC (20060102T150405Z), RFC 3339, and bare dates.
type CustomTime struct {
	time.Time
}

const compactTimeLayout = "20060102T150405Z"

var timeLayouts = []string{compactTimeLayout, time.RFC3339, "2006-01-02"}

// UnmarshalJSON implements the json.Unmarshaler interface for CustomTime.
func (ct *CustomTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" || s == "0" {
		ct.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			ct.Time = t
			return nil
		}
	}
	return fmt.Errorf("failed to parse time string %q", s)
}

// MarshalJSON implements the json.Marshaler interface for CustomTime.
func (ct CustomTime) MarshalJSON() ([]byte, error) {
	if ct.Time.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + ct.Time.UTC().Format(compactTimeLayout) + `"`), nil
}

// Task is the immutable input to one scheduling computation. It is owned by
// the external task store; the core never mutates it.
type Task struct {
	ID              string
	Name            string
	DurationMinutes int
	Priority        Priority
	Focus           FocusCategory
	Domain          Domain
	PreferredParts  []DayPart
	Due             time.Time // calendar date; time-of-day ignored
	BufferBefore    int       // minutes
	BufferAfter     int       // minutes
	Flexible        bool
	Created         time.Time // zero if unknown
	Modified        time.Time // zero if unknown
}

// Duration returns the task's requested duration.
func (t Task) Duration() time.Duration {
	return time.Duration(t.DurationMinutes) * time.Minute
}

// PrefersPart reports whether the task lists the given day part.
func (t Task) PrefersPart(p DayPart) bool {
	for _, dp := range t.PreferredParts {
		if dp == p {
			return true
		}
	}
	return false
}

// BusyInterval is one calendar commitment, fetched fresh per request and
// treated as read-only point-in-time truth.
type BusyInterval struct {
	Start   time.Time
	End     time.Time
	AllDay  bool
	Summary string
}

// CandidateSlot is a proposed scheduling window. Transient: it lives only for
// the duration of one scheduling computation.
type CandidateSlot struct {
	Start    time.Time
	End      time.Time
	Duration time.Duration
	Quality  QualityTier
	Conflict bool
}

// Outcome is the structured result of one scheduling computation.
type Outcome struct {
	Success      bool
	Status       Status
	Start        time.Time // zero unless scheduled
	End          time.Time
	Message      string
	Alternatives []CandidateSlot // at most 3, only when no slot was confidently chosen
}

// ScheduleUpdate is the typed record applied to the external task store after
// a scheduling computation. The mapping to the store's native representation
// is isolated inside the store implementation.
type ScheduleUpdate struct {
	Start       time.Time
	End         time.Time
	StatusLabel string
	Message     string
}
