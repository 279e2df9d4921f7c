// Package taskstore applies scheduling outcomes to the external task store.
// The mapping from the typed ScheduleUpdate record to the store's native
// representation lives entirely here; the core never sees it.
package taskstore

import (
	"context"

	"slotta/pkg/model"
)

// Store is the external task store the scheduler writes results into.
type Store interface {
	// ApplyScheduleUpdate records the chosen window on the task. A failure
	// here is an upstream error, distinct from a scheduling failure.
	ApplyScheduleUpdate(ctx context.Context, taskID string, update model.ScheduleUpdate) error
}
