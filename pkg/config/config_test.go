package config

import (
	"os"
	"path/filepath"
	"testing"

	"slotta/pkg/model"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	cfg := Default()

	s := cfg.Scheduling
	if s.WorkStartHour != 9 || s.WorkEndHour != 17 {
		t.Errorf("work hours = %d..%d, want 9..17", s.WorkStartHour, s.WorkEndHour)
	}
	if s.LookaheadDays != 14 {
		t.Errorf("lookahead = %d, want 14", s.LookaheadDays)
	}
	if s.StepMinutes != 30 || s.ConflictBufferMinutes != 5 {
		t.Errorf("step/buffer = %d/%d, want 30/5", s.StepMinutes, s.ConflictBufferMinutes)
	}
	if s.MinLeadMinutes != 30 || s.SameDayLeadMinutes != 60 {
		t.Errorf("lead minutes = %d/%d, want 30/60", s.MinLeadMinutes, s.SameDayLeadMinutes)
	}
	if err := cfg.validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
	if got := cfg.Profiles["admin"].MaxDuration; got != 90 {
		t.Errorf("admin max duration = %d, want 90", got)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Calendar != "Tasks" {
		t.Errorf("calendar = %q, want default Tasks", cfg.Calendar)
	}
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
calendar: Work
scheduling:
  work_start_hour: 8
  work_end_hour: 18
  timezone: UTC
  lookahead_days: 7
  step_minutes: 30
  conflict_buffer_minutes: 5
  min_lead_minutes: 30
  same_day_lead_minutes: 60
profiles:
  admin:
    preferred_hours: [8, 13]
    min_duration: 15
    max_duration: 60
    preferred_duration: 30
    buffer_minutes: 5
`
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Calendar != "Work" {
		t.Errorf("calendar = %q, want Work", cfg.Calendar)
	}
	if cfg.Scheduling.WorkStartHour != 8 || cfg.Scheduling.LookaheadDays != 7 {
		t.Errorf("scheduling not loaded from yaml: %+v", cfg.Scheduling)
	}
	if got := cfg.ProfileFor(model.FocusAdmin).MaxDuration; got != 60 {
		t.Errorf("admin max duration = %d, want 60 from file", got)
	}
	// Categories the file omits fall back to built-in profiles.
	if got := cfg.ProfileFor(model.FocusCalls).MaxDuration; got != 60 {
		t.Errorf("calls fallback max duration = %d, want 60", got)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"calender": "typo"}`), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		body string
	}{
		{name: "bad timezone", body: `{"scheduling": {"work_start_hour": 9, "work_end_hour": 17, "timezone": "Mars/Olympus", "lookahead_days": 14, "step_minutes": 30, "conflict_buffer_minutes": 5, "min_lead_minutes": 30, "same_day_lead_minutes": 60}}`},
		{name: "inverted work hours", body: `{"scheduling": {"work_start_hour": 17, "work_end_hour": 9, "timezone": "UTC", "lookahead_days": 14, "step_minutes": 30, "conflict_buffer_minutes": 5, "min_lead_minutes": 30, "same_day_lead_minutes": 60}}`},
		{name: "unknown profile key", body: `{"profiles": {"naps": {"preferred_hours": [13], "min_duration": 15, "max_duration": 30}}}`},
		{name: "bad sweep interval", body: `{"sweep_interval": "often"}`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			if err := os.WriteFile(path, []byte(tt.body), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
