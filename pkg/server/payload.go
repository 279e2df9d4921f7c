package server

import (
	"slotta/pkg/model"
	"slotta/pkg/schedule"
)

// taskPayload is the wire shape of a scheduling request. Enum fields arrive
// as strings and are rejected at parse time when unknown.
type taskPayload struct {
	TaskID         string            `json:"task_id"`
	Name           string            `json:"name"`
	Duration       int               `json:"duration"`
	Priority       string            `json:"priority"`
	FocusCategory  string            `json:"focus_category"`
	Domain         string            `json:"domain,omitempty"`
	PreferredTimes []string          `json:"preferred_times"`
	DueDate        *model.CustomTime `json:"due_date,omitempty"`
	BufferBefore   int               `json:"buffer_before,omitempty"`
	BufferAfter    int               `json:"buffer_after,omitempty"`
	Flexible       bool              `json:"flexible,omitempty"`
	Created        *model.CustomTime `json:"created,omitempty"`
	Modified       *model.CustomTime `json:"modified,omitempty"`
}

// toTask validates the payload's enum fields and builds the core task.
// Structural validation (missing id, non-positive duration) is left to the
// core's own validating stage.
func (p taskPayload) toTask() (model.Task, error) {
	task := model.Task{
		ID:              p.TaskID,
		Name:            p.Name,
		DurationMinutes: p.Duration,
		BufferBefore:    p.BufferBefore,
		BufferAfter:     p.BufferAfter,
		Flexible:        p.Flexible,
	}

	if p.Priority != "" {
		priority, err := model.ParsePriority(p.Priority)
		if err != nil {
			return model.Task{}, &schedule.ValidationError{Field: "priority", Reason: err.Error()}
		}
		task.Priority = priority
	}
	if p.FocusCategory != "" {
		focus, err := model.ParseFocusCategory(p.FocusCategory)
		if err != nil {
			return model.Task{}, &schedule.ValidationError{Field: "focus_category", Reason: err.Error()}
		}
		task.Focus = focus
	}
	domain, err := model.ParseDomain(p.Domain)
	if err != nil {
		return model.Task{}, &schedule.ValidationError{Field: "domain", Reason: err.Error()}
	}
	task.Domain = domain

	for _, s := range p.PreferredTimes {
		part, err := model.ParseDayPart(s)
		if err != nil {
			return model.Task{}, &schedule.ValidationError{Field: "preferred_times", Reason: err.Error()}
		}
		task.PreferredParts = append(task.PreferredParts, part)
	}

	if p.DueDate != nil {
		task.Due = p.DueDate.Time
	}
	if p.Created != nil {
		task.Created = p.Created.Time
	}
	if p.Modified != nil {
		task.Modified = p.Modified.Time
	}
	return task, nil
}

// slotResponse is one window in a response body.
type slotResponse struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Quality string `json:"quality,omitempty"`
}

// scheduleResponse is the response body for a scheduling request.
type scheduleResponse struct {
	Success      bool           `json:"success"`
	Status       string         `json:"status"`
	Start        string         `json:"start,omitempty"`
	End          string         `json:"end,omitempty"`
	Message      string         `json:"message"`
	Alternatives []slotResponse `json:"alternatives,omitempty"`
}
