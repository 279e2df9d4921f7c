package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"slotta/pkg/model"
)

func TestHistoryAppendAndRecent(t *testing.T) {
	t.Parallel()
	log, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer log.Close()

	ctx := context.Background()
	start := time.Date(2025, 8, 18, 9, 0, 0, 0, time.UTC)

	entries := []Entry{
		{RequestID: "req-1", TaskID: "task-1", Status: model.StatusScheduled, Start: start, End: start.Add(2 * time.Hour), Message: "Scheduled", TookMS: 12},
		{RequestID: "req-2", TaskID: "task-2", Status: model.StatusNoSlots, Message: "no available slots", TookMS: 8},
	}
	for _, e := range entries {
		if err := log.Append(ctx, e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := log.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	// Newest first.
	if got[0].RequestID != "req-2" || got[1].RequestID != "req-1" {
		t.Errorf("unexpected order: %s, %s", got[0].RequestID, got[1].RequestID)
	}
	if got[0].Status != model.StatusNoSlots {
		t.Errorf("status = %v, want no_slots", got[0].Status)
	}
	if !got[1].Start.Equal(start) {
		t.Errorf("start = %v, want %v", got[1].Start, start)
	}
	if !got[0].Start.IsZero() {
		t.Errorf("no_slots entry should carry no window, got start %v", got[0].Start)
	}
}

func TestHistoryNilLogDisabled(t *testing.T) {
	t.Parallel()
	var log *Log
	if err := log.Append(context.Background(), Entry{TaskID: "x"}); err != ErrDisabled {
		t.Errorf("Append on nil log = %v, want ErrDisabled", err)
	}
	if _, err := log.Recent(context.Background(), 5); err != ErrDisabled {
		t.Errorf("Recent on nil log = %v, want ErrDisabled", err)
	}
}
