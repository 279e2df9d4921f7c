package schedule

import (
	"time"

	"slotta/pkg/config"
	"slotta/pkg/model"
)

// freshnessWindow is how recently a task must have been created or edited to
// earn a quality boost.
const freshnessWindow = time.Hour

// ScoreSlot assigns the quality tier for a candidate slot against a task and
// its focus profile. Deterministic: depends only on the arguments and now.
func ScoreSlot(slot model.CandidateSlot, task model.Task, profile config.FocusProfile, now time.Time) model.QualityTier {
	tier := baselineTier(slot.Start.Hour(), profile.PreferredHours)

	// Long deep-work blocks are worth protecting even at off hours.
	if task.Focus == model.FocusDeepWork && slot.Duration >= 2*time.Hour {
		tier = tier.Raise()
	}

	// High-priority tasks never sit at the bottom tier.
	if task.Priority == model.PriorityHigh && tier == model.TierPoor {
		tier = model.TierAcceptable
	}

	// Freshly created tasks get one tier of benefit; the creation boost
	// applies before the edit boost and neither stacks past excellent.
	if within(task.Created, now, freshnessWindow) && tier >= model.TierAcceptable {
		tier = tier.Raise()
	}
	if within(task.Modified, now, freshnessWindow) && tier == model.TierAcceptable {
		tier = model.TierGood
	}

	return tier
}

// baselineTier rates the slot hour purely by distance from the profile's
// preferred hours: exact match excellent, adjacent good, nearby acceptable,
// 4+ hours away poor.
func baselineTier(hour int, preferred []int) model.QualityTier {
	if len(preferred) == 0 {
		return model.TierAcceptable
	}
	best := 24
	for _, ph := range preferred {
		d := hour - ph
		if d < 0 {
			d = -d
		}
		if d < best {
			best = d
		}
	}
	switch {
	case best == 0:
		return model.TierExcellent
	case best == 1:
		return model.TierGood
	case best <= 3:
		return model.TierAcceptable
	default:
		return model.TierPoor
	}
}

func within(t, now time.Time, d time.Duration) bool {
	if t.IsZero() {
		return false
	}
	age := now.Sub(t)
	return age >= 0 && age <= d
}
