package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSlots indicates the search completed without a usable candidate.
	ErrNoSlots = errors.New("no available slots found")
	// ErrTooSoon indicates a slot was found but starts inside the minimum
	// lead window. Distinct from ErrNoSlots: a found-then-rejected slot is an
	// error state, not an absence of slots.
	ErrTooSoon = errors.New("selected slot starts too soon")
)

// ValidationError describes a malformed task payload. Surfaced before any
// search stage runs; no side effects are attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid task: %s %s", e.Field, e.Reason)
}
