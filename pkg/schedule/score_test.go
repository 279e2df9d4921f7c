package schedule

import (
	"testing"
	"time"

	"slotta/pkg/config"
	"slotta/pkg/model"
)

func slotAt(hour int, duration time.Duration) model.CandidateSlot {
	start := time.Date(2025, 8, 19, hour, 0, 0, 0, time.UTC)
	return model.CandidateSlot{Start: start, End: start.Add(duration), Duration: duration}
}

func deepWorkProfile() config.FocusProfile {
	return config.Default().Profiles["deep_work"] // preferred hours 9, 10, 14, 15
}

func TestScoreSlotBaseline(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC)
	task := model.Task{Priority: model.PriorityMedium, Focus: model.FocusAdmin}
	profile := config.FocusProfile{PreferredHours: []int{9}, MinDuration: 15, MaxDuration: 90}

	tests := []struct {
		hour int
		want model.QualityTier
	}{
		{hour: 9, want: model.TierExcellent},
		{hour: 10, want: model.TierGood},
		{hour: 11, want: model.TierAcceptable},
		{hour: 12, want: model.TierAcceptable},
		{hour: 13, want: model.TierPoor},
		{hour: 16, want: model.TierPoor},
	}
	for _, tt := range tests {
		slot := slotAt(tt.hour, 30*time.Minute)
		if got := ScoreSlot(slot, task, profile, now); got != tt.want {
			t.Errorf("hour %d: ScoreSlot = %v, want %v", tt.hour, got, tt.want)
		}
	}
}

func TestScoreSlotDeepWorkLongBlockUpgrade(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC)
	task := model.Task{Priority: model.PriorityMedium, Focus: model.FocusDeepWork}
	profile := deepWorkProfile()

	// 11:00 is adjacent to 10 -> good; a 2-hour block raises it to excellent.
	long := slotAt(11, 2*time.Hour)
	if got := ScoreSlot(long, task, profile, now); got != model.TierExcellent {
		t.Errorf("long deep work block = %v, want excellent", got)
	}

	// Same hour, shorter block: no upgrade.
	short := slotAt(11, time.Hour)
	if got := ScoreSlot(short, task, profile, now); got != model.TierGood {
		t.Errorf("short deep work block = %v, want good", got)
	}

	// An exact-hour match cannot exceed excellent.
	capped := slotAt(9, 2*time.Hour)
	if got := ScoreSlot(capped, task, profile, now); got != model.TierExcellent {
		t.Errorf("capped deep work block = %v, want excellent", got)
	}
}

func TestScoreSlotHighPriorityNeverPoor(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC)
	profile := config.FocusProfile{PreferredHours: []int{9}, MinDuration: 15, MaxDuration: 90}

	for hour := 9; hour <= 16; hour++ {
		task := model.Task{Priority: model.PriorityHigh, Focus: model.FocusAdmin}
		got := ScoreSlot(slotAt(hour, 30*time.Minute), task, profile, now)
		if got == model.TierPoor {
			t.Errorf("hour %d: high-priority task scored poor", hour)
		}
	}
}

func TestScoreSlotFreshnessBoosts(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC)
	profile := config.FocusProfile{PreferredHours: []int{9}, MinDuration: 15, MaxDuration: 90}
	// Hour 11 scores acceptable at baseline.
	slot := slotAt(11, 30*time.Minute)

	base := model.Task{Priority: model.PriorityMedium, Focus: model.FocusAdmin}

	created := base
	created.Created = now.Add(-30 * time.Minute)
	if got := ScoreSlot(slot, created, profile, now); got != model.TierGood {
		t.Errorf("recently created: %v, want good", got)
	}

	edited := base
	edited.Modified = now.Add(-10 * time.Minute)
	if got := ScoreSlot(slot, edited, profile, now); got != model.TierGood {
		t.Errorf("recently edited: %v, want good", got)
	}

	// Creation boost applies first; the edit boost only lifts acceptable, so
	// the two do not stack to excellent here.
	both := base
	both.Created = now.Add(-30 * time.Minute)
	both.Modified = now.Add(-10 * time.Minute)
	if got := ScoreSlot(slot, both, profile, now); got != model.TierGood {
		t.Errorf("created+edited: %v, want good (boosts do not stack)", got)
	}

	// A good baseline with a recent creation reaches excellent.
	goodSlot := slotAt(10, 30*time.Minute)
	if got := ScoreSlot(goodSlot, created, profile, now); got != model.TierExcellent {
		t.Errorf("good baseline recently created: %v, want excellent", got)
	}

	stale := base
	stale.Created = now.Add(-2 * time.Hour)
	if got := ScoreSlot(slot, stale, profile, now); got != model.TierAcceptable {
		t.Errorf("stale task: %v, want acceptable", got)
	}
}
