package ledger

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLedgerRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "blocks.json")

	l, err := NewAt(path)
	if err != nil {
		t.Fatalf("NewAt: %v", err)
	}

	block := Block{
		EventID: "evt-1",
		Summary: "Write design doc",
		Start:   time.Date(2025, 8, 18, 9, 0, 0, 0, time.UTC),
		End:     time.Date(2025, 8, 18, 11, 0, 0, 0, time.UTC),
	}
	l.Set("task-1", block)
	if err := l.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := NewAt(path)
	if err != nil {
		t.Fatalf("NewAt reload: %v", err)
	}
	got, ok := reloaded.Get("task-1")
	if !ok {
		t.Fatal("block missing after reload")
	}
	if got.EventID != block.EventID || !got.Start.Equal(block.Start) {
		t.Errorf("got %+v, want %+v", got, block)
	}
}

func TestLedgerSaveSkipsWhenClean(t *testing.T) {
	t.Parallel()
	// A ledger with no changes must not create its file.
	path := filepath.Join(t.TempDir(), "blocks.json")
	l, err := NewAt(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := NewAt(path); err != nil {
		t.Fatalf("reopen: %v", err)
	}
}

func TestLedgerSweep(t *testing.T) {
	t.Parallel()
	l, err := NewAt(filepath.Join(t.TempDir(), "blocks.json"))
	if err != nil {
		t.Fatal(err)
	}

	now := time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC)
	l.Set("past", Block{EventID: "evt-past", End: now.Add(-time.Hour)})
	l.Set("future", Block{EventID: "evt-future", End: now.Add(time.Hour)})

	swept := l.Sweep(now)
	if len(swept) != 1 || swept[0].EventID != "evt-past" {
		t.Fatalf("swept = %+v, want only evt-past", swept)
	}
	if _, ok := l.Get("past"); ok {
		t.Error("swept block should be removed")
	}
	if _, ok := l.Get("future"); !ok {
		t.Error("future block should remain")
	}
}

func TestLedgerRemove(t *testing.T) {
	t.Parallel()
	l, err := NewAt(filepath.Join(t.TempDir(), "blocks.json"))
	if err != nil {
		t.Fatal(err)
	}
	l.Set("task-1", Block{EventID: "evt-1"})
	l.Remove("task-1")
	if _, ok := l.Get("task-1"); ok {
		t.Error("removed block still present")
	}
}
