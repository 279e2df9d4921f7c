package schedule

import (
	"fmt"
	"sort"
	"time"

	"slotta/pkg/config"
	"slotta/pkg/model"
)

// urgentThreshold is the urgency above which selection prefers the earliest
// strong slot over the globally best one.
const urgentThreshold = 0.8

// maxAlternatives caps how many runner-up slots an unsuccessful outcome carries.
const maxAlternatives = 3

// Scheduler runs the slot search for one task at a time. It holds only
// immutable configuration, so a single instance is safe for concurrent
// requests; all intermediate state is local to one Schedule call.
type Scheduler struct {
	cfg *config.Config
	loc *time.Location
}

func NewScheduler(cfg *config.Config) *Scheduler {
	return &Scheduler{cfg: cfg, loc: cfg.Location()}
}

// Horizon returns the busy-interval fetch range for a computation starting at now.
func (s *Scheduler) Horizon(now time.Time) (time.Time, time.Time) {
	start := midnight(now.In(s.loc))
	return start, start.AddDate(0, 0, s.cfg.Scheduling.LookaheadDays)
}

// Schedule runs the full computation for one task: validate, generate
// candidates across the lookahead horizon, filter, score, select, and apply
// the lead-time floor. Busy intervals are the caller's point-in-time calendar
// truth. The result is always a structured outcome, never a panic or a bare
// error.
func (s *Scheduler) Schedule(task model.Task, busy []model.BusyInterval, now time.Time) model.Outcome {
	// VALIDATING
	if err := validate(task); err != nil {
		return errorOutcome(err.Error())
	}

	profile := s.cfg.ProfileFor(task.Focus)
	duration := task.Duration()
	if min := time.Duration(profile.MinDuration) * time.Minute; duration < min {
		duration = min
	}

	// FILTERING on duration bounds can be decided before generating: every
	// candidate shares the effective duration.
	if duration > time.Duration(profile.MaxDuration)*time.Minute {
		return model.Outcome{
			Status: model.StatusNoSlots,
			Message: fmt.Sprintf("duration %d min exceeds the %s maximum of %d min",
				task.DurationMinutes, task.Focus, profile.MaxDuration),
		}
	}

	// GENERATING
	hours := effectivePreferredHours(task, profile)
	start, _ := s.Horizon(now)
	var candidates []model.CandidateSlot
	for i := 0; i < s.cfg.Scheduling.LookaheadDays; i++ {
		day := start.AddDate(0, 0, i)
		candidates = append(candidates, s.GenerateDaySlots(day, duration, hours, busy, now)...)
	}

	// FILTERING by preferred hours. High-priority tasks bypass the hour
	// filter entirely, as do tasks marked flexible.
	if task.Priority != model.PriorityHigh && !task.Flexible {
		candidates = filterByHour(candidates, profile.PreferredHours)
	}

	if len(candidates) == 0 {
		return model.Outcome{
			Status:  model.StatusNoSlots,
			Message: fmt.Sprintf("no available slots in the next %d days", s.cfg.Scheduling.LookaheadDays),
		}
	}

	// SCORING
	for i := range candidates {
		candidates[i].Quality = ScoreSlot(candidates[i], task, profile, now)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Quality != candidates[j].Quality {
			return candidates[i].Quality > candidates[j].Quality
		}
		return candidates[i].Start.Before(candidates[j].Start)
	})

	// SELECTING
	chosen := selectSlot(candidates, Urgency(task, now))

	// A found slot inside the lead window is an error, not an absence of slots.
	if chosen.Start.Before(now.Add(time.Duration(s.cfg.Scheduling.MinLeadMinutes) * time.Minute)) {
		out := errorOutcome(fmt.Sprintf("%v: %s is under %d minutes away",
			ErrTooSoon, s.FormatWindow(chosen.Start, chosen.End), s.cfg.Scheduling.MinLeadMinutes))
		out.Alternatives = alternatives(candidates, chosen)
		return out
	}

	return model.Outcome{
		Success: true,
		Status:  model.StatusScheduled,
		Start:   chosen.Start,
		End:     chosen.End,
		Message: fmt.Sprintf("Scheduled for %s", s.FormatWindow(chosen.Start, chosen.End)),
	}
}

func validate(task model.Task) error {
	switch {
	case task.ID == "":
		return &ValidationError{Field: "task_id", Reason: "is required"}
	case task.DurationMinutes <= 0:
		return &ValidationError{Field: "duration", Reason: "must be positive"}
	case task.Priority < model.PriorityLow || task.Priority > model.PriorityHigh:
		return &ValidationError{Field: "priority", Reason: "is not a known value"}
	case task.Focus < model.FocusDeepWork || task.Focus > model.FocusCreative:
		return &ValidationError{Field: "focus_category", Reason: "is not a known value"}
	case len(task.PreferredParts) == 0:
		return &ValidationError{Field: "preferred_times", Reason: "must not be empty"}
	}
	return nil
}

// effectivePreferredHours narrows the profile's preferred hours to the task's
// preferred day parts. An empty intersection falls back to the profile hours
// so a mismatched task still gets the category's defaults.
func effectivePreferredHours(task model.Task, profile config.FocusProfile) []int {
	var hours []int
	for _, h := range profile.PreferredHours {
		for _, part := range task.PreferredParts {
			if first, last := part.Hours(); h >= first && h <= last {
				hours = append(hours, h)
				break
			}
		}
	}
	if len(hours) == 0 {
		return profile.PreferredHours
	}
	return hours
}

func filterByHour(slots []model.CandidateSlot, preferred []int) []model.CandidateSlot {
	kept := slots[:0]
	for _, slot := range slots {
		for _, ph := range preferred {
			if slot.Start.Hour() == ph {
				kept = append(kept, slot)
				break
			}
		}
	}
	return kept
}

// selectSlot applies the urgency-dependent policy to the scored, sorted
// candidates. Urgent tasks take the earliest strong slot; everything else
// takes the global best (already first after sorting by tier then start).
func selectSlot(sorted []model.CandidateSlot, urgency float64) model.CandidateSlot {
	if urgency > urgentThreshold {
		var strong []model.CandidateSlot
		for _, c := range sorted {
			if c.Quality >= model.TierGood {
				strong = append(strong, c)
			}
		}
		if len(strong) == 0 {
			strong = sorted
		}
		earliest := strong[0]
		for _, c := range strong[1:] {
			if c.Start.Before(earliest.Start) {
				earliest = c
			}
		}
		return earliest
	}
	return sorted[0]
}

func alternatives(sorted []model.CandidateSlot, chosen model.CandidateSlot) []model.CandidateSlot {
	var alts []model.CandidateSlot
	for _, c := range sorted {
		if c.Start.Equal(chosen.Start) {
			continue
		}
		alts = append(alts, c)
		if len(alts) == maxAlternatives {
			break
		}
	}
	return alts
}

func errorOutcome(msg string) model.Outcome {
	return model.Outcome{Status: model.StatusError, Message: msg}
}
