package model

import "fmt"

// Priority is a task's scheduling priority.
type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
)

// Weight returns the raw urgency multiplier for the priority (High=3, Medium=2, Low=1).
func (p Priority) Weight() int { return int(p) }

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	}
	return fmt.Sprintf("Priority(%d)", int(p))
}

// ParsePriority maps a wire value to a Priority. Unknown values are an error,
// never a silent fallthrough.
func ParsePriority(s string) (Priority, error) {
	switch s {
	case "High", "high", "H":
		return PriorityHigh, nil
	case "Medium", "medium", "M":
		return PriorityMedium, nil
	case "Low", "low", "L":
		return PriorityLow, nil
	}
	return 0, fmt.Errorf("unknown priority %q", s)
}

// FocusCategory classifies a task for scheduling preferences.
type FocusCategory int

const (
	FocusDeepWork FocusCategory = iota + 1
	FocusAdmin
	FocusCalls
	FocusCreative
)

func (c FocusCategory) String() string {
	switch c {
	case FocusDeepWork:
		return "Deep Work"
	case FocusAdmin:
		return "Admin"
	case FocusCalls:
		return "Calls"
	case FocusCreative:
		return "Creative"
	}
	return fmt.Sprintf("FocusCategory(%d)", int(c))
}

func ParseFocusCategory(s string) (FocusCategory, error) {
	switch s {
	case "Deep Work", "DeepWork", "deep_work", "deepwork":
		return FocusDeepWork, nil
	case "Admin", "admin":
		return FocusAdmin, nil
	case "Calls", "calls":
		return FocusCalls, nil
	case "Creative", "creative":
		return FocusCreative, nil
	}
	return 0, fmt.Errorf("unknown focus category %q", s)
}

// DayPart is a coarse part of the day a task prefers.
type DayPart int

const (
	Morning DayPart = iota + 1
	Afternoon
	Evening
)

// Hours returns the inclusive hour-of-day range covered by the day part.
func (d DayPart) Hours() (first, last int) {
	switch d {
	case Morning:
		return 5, 11
	case Afternoon:
		return 12, 16
	case Evening:
		return 17, 21
	}
	return 0, 23
}

func (d DayPart) String() string {
	switch d {
	case Morning:
		return "morning"
	case Afternoon:
		return "afternoon"
	case Evening:
		return "evening"
	}
	return fmt.Sprintf("DayPart(%d)", int(d))
}

func ParseDayPart(s string) (DayPart, error) {
	switch s {
	case "morning", "Morning":
		return Morning, nil
	case "afternoon", "Afternoon":
		return Afternoon, nil
	case "evening", "Evening":
		return Evening, nil
	}
	return 0, fmt.Errorf("unknown day part %q", s)
}

// Domain is an optional life-area tag on a task. It does not influence slot
// selection; it is carried through to the task store and calendar block.
type Domain int

const (
	DomainNone Domain = iota
	DomainWork
	DomainPersonal
	DomainSchool
)

func (d Domain) String() string {
	switch d {
	case DomainWork:
		return "Work"
	case DomainPersonal:
		return "Personal"
	case DomainSchool:
		return "School"
	}
	return ""
}

func ParseDomain(s string) (Domain, error) {
	switch s {
	case "":
		return DomainNone, nil
	case "Work", "work":
		return DomainWork, nil
	case "Personal", "personal":
		return DomainPersonal, nil
	case "School", "school":
		return DomainSchool, nil
	}
	return 0, fmt.Errorf("unknown domain %q", s)
}

// QualityTier rates how well a candidate slot fits a task. The ordering is a
// strict total order used directly for sorting: excellent > good > acceptable > poor.
type QualityTier int

const (
	TierPoor QualityTier = iota + 1
	TierAcceptable
	TierGood
	TierExcellent
)

// Raise returns the tier one step up, capped at excellent.
func (q QualityTier) Raise() QualityTier {
	if q >= TierExcellent {
		return TierExcellent
	}
	return q + 1
}

// Lower returns the tier one step down, floored at poor.
func (q QualityTier) Lower() QualityTier {
	if q <= TierPoor {
		return TierPoor
	}
	return q - 1
}

func (q QualityTier) String() string {
	switch q {
	case TierExcellent:
		return "excellent"
	case TierGood:
		return "good"
	case TierAcceptable:
		return "acceptable"
	case TierPoor:
		return "poor"
	}
	return fmt.Sprintf("QualityTier(%d)", int(q))
}

// Status is the terminal state of one scheduling computation.
type Status int

const (
	StatusScheduled Status = iota + 1
	StatusConflict
	StatusNoSlots
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusScheduled:
		return "scheduled"
	case StatusConflict:
		return "conflict"
	case StatusNoSlots:
		return "no_slots"
	case StatusError:
		return "error"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}
