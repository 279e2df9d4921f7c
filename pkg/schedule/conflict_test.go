package schedule

import (
	"testing"
	"time"

	"slotta/pkg/model"
)

func ts(h, m int) time.Time {
	return time.Date(2025, 8, 18, h, m, 0, 0, time.UTC)
}

func TestHasConflictOverlap(t *testing.T) {
	t.Parallel()
	busy := []model.BusyInterval{{Start: ts(10, 0), End: ts(11, 0)}}

	tests := []struct {
		name   string
		start  time.Time
		end    time.Time
		buffer int
		want   bool
	}{
		{name: "full overlap", start: ts(10, 0), end: ts(11, 0), want: true},
		{name: "partial overlap front", start: ts(9, 30), end: ts(10, 30), want: true},
		{name: "partial overlap back", start: ts(10, 30), end: ts(11, 30), want: true},
		{name: "contained", start: ts(10, 15), end: ts(10, 45), want: true},
		{name: "disjoint before", start: ts(8, 0), end: ts(9, 0), want: false},
		{name: "disjoint after", start: ts(12, 0), end: ts(13, 0), want: false},
		{name: "touching end boundary", start: ts(9, 0), end: ts(10, 0), want: false},
		{name: "touching start boundary", start: ts(11, 0), end: ts(12, 0), want: false},
		{name: "buffer reaches into busy", start: ts(11, 0), end: ts(12, 0), buffer: 5, want: true},
		{name: "buffer still clear", start: ts(11, 30), end: ts(12, 0), buffer: 5, want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, _ := HasConflict(tt.start, tt.end, tt.buffer, busy)
			if got != tt.want {
				t.Errorf("HasConflict(%v, %v, %d) = %v, want %v", tt.start, tt.end, tt.buffer, got, tt.want)
			}
		})
	}
}

func TestHasConflictReturnsMatches(t *testing.T) {
	t.Parallel()
	busy := []model.BusyInterval{
		{Start: ts(9, 0), End: ts(10, 0), Summary: "standup"},
		{Start: ts(9, 30), End: ts(10, 30), Summary: "1:1"},
		{Start: ts(14, 0), End: ts(15, 0), Summary: "review"},
	}

	conflict, matched := HasConflict(ts(9, 45), ts(10, 15), 0, busy)
	if !conflict {
		t.Fatal("expected conflict")
	}
	if len(matched) != 2 {
		t.Fatalf("expected 2 matched intervals, got %d", len(matched))
	}
	if matched[0].Summary != "standup" || matched[1].Summary != "1:1" {
		t.Errorf("unexpected matched intervals: %v", matched)
	}
}

// All-day busy intervals are excluded from conflict testing. Documented
// limitation carried over from the original behavior, not a bug.
func TestHasConflictIgnoresAllDay(t *testing.T) {
	t.Parallel()
	day := time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC)
	busy := []model.BusyInterval{{Start: day, End: day.AddDate(0, 0, 1), AllDay: true}}

	conflict, matched := HasConflict(ts(10, 0), ts(11, 0), 5, busy)
	if conflict {
		t.Error("all-day interval should not conflict")
	}
	if matched != nil {
		t.Errorf("expected no matches, got %v", matched)
	}
}

func TestHasConflictNoBusy(t *testing.T) {
	t.Parallel()
	conflict, _ := HasConflict(ts(10, 0), ts(11, 0), 5, nil)
	if conflict {
		t.Error("empty busy list should never conflict")
	}
}
