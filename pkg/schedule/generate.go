package schedule

import (
	"time"

	"slotta/pkg/model"
)

// GenerateDaySlots produces every non-conflicting window of the given
// duration on one calendar day, walking the working window in fixed steps.
// The returned sequence is ordered by start time; empty is a valid result.
//
// Days strictly in the past yield nothing. On the current day the effective
// start is pushed forward to now plus the same-day lead so a task is never
// scheduled imminently without warning.
func (s *Scheduler) GenerateDaySlots(day time.Time, duration time.Duration, preferredHours []int, busy []model.BusyInterval, now time.Time) []model.CandidateSlot {
	day = midnight(day.In(s.loc))
	today := midnight(now.In(s.loc))
	if day.Before(today) {
		return nil
	}

	workStart := day.Add(time.Duration(s.cfg.Scheduling.WorkStartHour) * time.Hour)
	workEnd := day.Add(time.Duration(s.cfg.Scheduling.WorkEndHour) * time.Hour)

	if day.Equal(today) {
		earliest := now.Add(time.Duration(s.cfg.Scheduling.SameDayLeadMinutes) * time.Minute)
		if earliest.After(workStart) {
			workStart = earliest
		}
	}

	step := time.Duration(s.cfg.Scheduling.StepMinutes) * time.Minute
	var slots []model.CandidateSlot
	for t := workStart; !t.Add(duration).After(workEnd); t = t.Add(step) {
		end := t.Add(duration)
		if conflict, _ := HasConflict(t, end, s.cfg.Scheduling.ConflictBufferMinutes, busy); conflict {
			continue
		}
		slots = append(slots, model.CandidateSlot{
			Start:    t,
			End:      end,
			Duration: duration,
			Quality:  initialQuality(t, duration, preferredHours),
		})
	}
	return slots
}

// initialQuality is the generator's hour-proximity heuristic: exact preferred
// hour excellent, within one hour good, otherwise acceptable. Long blocks
// (3h+) starting mid-afternoon or later lose a tier since they run against
// the end of the working day.
func initialQuality(start time.Time, duration time.Duration, preferredHours []int) model.QualityTier {
	hour := start.Hour()
	tier := model.TierAcceptable
	for _, ph := range preferredHours {
		d := hour - ph
		if d < 0 {
			d = -d
		}
		if d == 0 {
			tier = model.TierExcellent
			break
		}
		if d == 1 && tier < model.TierGood {
			tier = model.TierGood
		}
	}

	if duration >= 3*time.Hour && hour >= 14 {
		tier = tier.Lower()
	}
	return tier
}
