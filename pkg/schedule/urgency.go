package schedule

import (
	"time"

	"slotta/pkg/model"
)

// priorityFactor scales the raw priority weight (High=3, Medium=2, Low=1)
// into the urgency sum; priority alone contributes up to 0.9.
const priorityFactor = 0.3

// Urgency blends due-date proximity and priority into a single score in
// [0, 1]. Monotonic non-decreasing as the due date approaches, for a fixed
// priority.
func Urgency(task model.Task, now time.Time) float64 {
	u := float64(task.Priority.Weight())*priorityFactor + timeUrgency(daysUntilDue(task.Due, now))
	if u > 1.0 {
		return 1.0
	}
	return u
}

// daysUntilDue counts whole calendar days from now's date to the due date.
// The due date's year/month/day are taken verbatim (it is a calendar date,
// not an instant). Overdue dates go negative; a zero due date reports as
// far-future.
func daysUntilDue(due, now time.Time) int {
	if due.IsZero() {
		return int(^uint(0) >> 1)
	}
	today := midnight(now)
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, now.Location())
	return int(dueDay.Sub(today).Hours() / 24)
}

func timeUrgency(days int) float64 {
	switch {
	case days <= 0:
		return 1.0
	case days <= 1:
		return 0.8
	case days <= 3:
		return 0.6
	case days <= 7:
		return 0.4
	default:
		return 0.0
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
