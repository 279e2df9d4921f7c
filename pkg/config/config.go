package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"slotta/pkg/model"
)

const (
	xdgAppName = "slotta"
	configFile = "config.json"
)

// FocusProfile is the static per-category scheduling profile. All durations
// are minutes.
type FocusProfile struct {
	PreferredHours    []int `json:"preferred_hours"`
	MinDuration       int   `json:"min_duration"`
	MaxDuration       int   `json:"max_duration"`
	PreferredDuration int   `json:"preferred_duration"`
	BufferMinutes     int   `json:"buffer_minutes"`
}

// Scheduling holds the knobs the slot search consumes. Immutable after load;
// constructed once at process start and passed explicitly into the core.
type Scheduling struct {
	WorkStartHour         int    `json:"work_start_hour"`
	WorkEndHour           int    `json:"work_end_hour"`
	Timezone              string `json:"timezone"`
	LookaheadDays         int    `json:"lookahead_days"`
	StepMinutes           int    `json:"step_minutes"`
	ConflictBufferMinutes int    `json:"conflict_buffer_minutes"`
	MinLeadMinutes        int    `json:"min_lead_minutes"`
	SameDayLeadMinutes    int    `json:"same_day_lead_minutes"`
}

// History configures the scheduling-outcome log.
// Driver "sqlite" enables it; empty or "none" disables it.
type History struct {
	Driver string `json:"driver,omitempty"`
	Path   string `json:"path,omitempty"`
}

type Config struct {
	Calendar         string `json:"calendar"`
	Listen           string `json:"listen,omitempty"`
	LogLevel         string `json:"log_level,omitempty"`
	RatePerSec       int    `json:"rate_per_sec,omitempty"`
	CalendarBlocking bool   `json:"calendar_blocking,omitempty"`

	// SweepInterval is a Go duration string (e.g. "15m"). Zero disables the
	// overdue sweep.
	SweepInterval string `json:"sweep_interval,omitempty"`

	History    History                 `json:"history,omitempty"`
	Scheduling Scheduling              `json:"scheduling"`
	Profiles   map[string]FocusProfile `json:"profiles,omitempty"`
}

// Default returns the configuration used when no file exists. The focus
// profiles encode the category preferences the scorer and filter run on.
func Default() *Config {
	return &Config{
		Calendar:   "Tasks",
		Listen:     ":8432",
		LogLevel:   "info",
		RatePerSec: 5,
		Scheduling: Scheduling{
			WorkStartHour:         9,
			WorkEndHour:           17,
			Timezone:              "America/New_York",
			LookaheadDays:         14,
			StepMinutes:           30,
			ConflictBufferMinutes: 5,
			MinLeadMinutes:        30,
			SameDayLeadMinutes:    60,
		},
		Profiles: map[string]FocusProfile{
			"deep_work": {
				PreferredHours:    []int{9, 10, 14, 15},
				MinDuration:       60,
				MaxDuration:       240,
				PreferredDuration: 120,
				BufferMinutes:     15,
			},
			"admin": {
				PreferredHours:    []int{11, 13, 16},
				MinDuration:       15,
				MaxDuration:       90,
				PreferredDuration: 30,
				BufferMinutes:     5,
			},
			"calls": {
				PreferredHours:    []int{10, 11, 14, 15, 16},
				MinDuration:       15,
				MaxDuration:       60,
				PreferredDuration: 30,
				BufferMinutes:     10,
			},
			"creative": {
				PreferredHours:    []int{9, 10, 15, 16},
				MinDuration:       30,
				MaxDuration:       180,
				PreferredDuration: 90,
				BufferMinutes:     10,
			},
		},
	}
}

func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName, configFile), nil
}

// Load reads the config at path. An empty path uses the default location; a
// missing file yields Default(). Unknown fields are a hard error so typos in
// scheduling knobs never silently fall back to defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	jsonBytes, format, err := coerceToJSONBytes(path, data)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s config %s: %w", format, path, err)
	}

	cfg := Default()
	dec := json.NewDecoder(bytes.NewReader(jsonBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}

func (c *Config) validate() error {
	s := c.Scheduling
	if s.WorkStartHour < 0 || s.WorkEndHour > 24 || s.WorkStartHour >= s.WorkEndHour {
		return fmt.Errorf("work hours %d..%d out of order", s.WorkStartHour, s.WorkEndHour)
	}
	if s.LookaheadDays <= 0 {
		return fmt.Errorf("lookahead_days must be > 0")
	}
	if s.StepMinutes <= 0 {
		return fmt.Errorf("step_minutes must be > 0")
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", s.Timezone, err)
	}
	for name, p := range c.Profiles {
		if _, err := model.ParseFocusCategory(name); err != nil {
			return fmt.Errorf("profiles: %w", err)
		}
		if p.MinDuration <= 0 || p.MaxDuration < p.MinDuration {
			return fmt.Errorf("profile %s: duration bounds %d..%d out of order", name, p.MinDuration, p.MaxDuration)
		}
	}
	if c.SweepInterval != "" {
		if _, err := time.ParseDuration(c.SweepInterval); err != nil {
			return fmt.Errorf("sweep_interval: %w", err)
		}
	}
	return nil
}

// Location resolves the configured timezone. Validation at load time makes
// failure here a programming error.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Scheduling.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ProfileFor returns the profile for a focus category, falling back to the
// built-in default profile for the category if the config omits it.
func (c *Config) ProfileFor(cat model.FocusCategory) FocusProfile {
	key := profileKey(cat)
	if p, ok := c.Profiles[key]; ok {
		return p
	}
	return Default().Profiles[key]
}

func profileKey(cat model.FocusCategory) string {
	switch cat {
	case model.FocusDeepWork:
		return "deep_work"
	case model.FocusAdmin:
		return "admin"
	case model.FocusCalls:
		return "calls"
	case model.FocusCreative:
		return "creative"
	}
	return ""
}
