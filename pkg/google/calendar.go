package google

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"

	"slotta/pkg/model"
)

// taskIDProperty is the private extended property that ties a schedule block
// event back to its task.
const taskIDProperty = "slotta_task_id"

// CalendarClient is a Google Calendar API client scoped to one calendar.
type CalendarClient struct {
	srv        *calendar.Service
	calendarID string
}

// NewCalendarClient creates a client around an authenticated calendar service.
func NewCalendarClient(srv *calendar.Service, calendarID string) *CalendarClient {
	return &CalendarClient{srv: srv, calendarID: calendarID}
}

// ListBusyIntervals fetches every event overlapping [from, to) and maps it to
// a busy interval. All-day events carry only a date on the wire; they are
// returned flagged with their civil-date bounds.
func (c *CalendarClient) ListBusyIntervals(ctx context.Context, from, to time.Time) ([]model.BusyInterval, error) {
	events, err := c.srv.Events.List(c.calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve events from calendar: %w", err)
	}

	var busy []model.BusyInterval
	for _, ev := range events.Items {
		if ev.Start == nil || ev.End == nil {
			continue
		}
		interval, err := toBusyInterval(ev)
		if err != nil {
			return nil, err
		}
		busy = append(busy, interval)
	}
	return busy, nil
}

func toBusyInterval(ev *calendar.Event) (model.BusyInterval, error) {
	if ev.Start.Date != "" {
		start, err := time.Parse("2006-01-02", ev.Start.Date)
		if err != nil {
			return model.BusyInterval{}, fmt.Errorf("bad all-day start %q: %w", ev.Start.Date, err)
		}
		end, err := time.Parse("2006-01-02", ev.End.Date)
		if err != nil {
			return model.BusyInterval{}, fmt.Errorf("bad all-day end %q: %w", ev.End.Date, err)
		}
		return model.BusyInterval{Start: start, End: end, AllDay: true, Summary: ev.Summary}, nil
	}

	start, err := time.Parse(time.RFC3339, ev.Start.DateTime)
	if err != nil {
		return model.BusyInterval{}, fmt.Errorf("bad event start %q: %w", ev.Start.DateTime, err)
	}
	end, err := time.Parse(time.RFC3339, ev.End.DateTime)
	if err != nil {
		return model.BusyInterval{}, fmt.Errorf("bad event end %q: %w", ev.End.DateTime, err)
	}
	return model.BusyInterval{Start: start, End: end, Summary: ev.Summary}, nil
}

// SyncBlock creates or updates the schedule block event for a task, keyed by
// the task-ID extended property. Returns the event ID.
func (c *CalendarClient) SyncBlock(ctx context.Context, taskID, summary string, start, end time.Time) (string, error) {
	block := &calendar.Event{
		Summary: summary,
		Start:   &calendar.EventDateTime{DateTime: start.UTC().Format(time.RFC3339)},
		End:     &calendar.EventDateTime{DateTime: end.UTC().Format(time.RFC3339)},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{taskIDProperty: taskID},
		},
	}

	existing, err := c.GetEventByTaskID(ctx, taskID)
	if err != nil {
		return "", fmt.Errorf("error searching for block event: %w", err)
	}
	if existing != nil {
		updated, err := c.PatchEvent(ctx, existing.Id, block)
		if err != nil {
			return "", err
		}
		return updated.Id, nil
	}

	created, err := c.srv.Events.Insert(c.calendarID, block).Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return created.Id, nil
}

// PatchEvent performs a partial update on an event.
func (c *CalendarClient) PatchEvent(ctx context.Context, eventID string, patch *calendar.Event) (*calendar.Event, error) {
	return c.srv.Events.Patch(c.calendarID, eventID, patch).Context(ctx).Do()
}

// DeleteEvent deletes an event from the calendar.
func (c *CalendarClient) DeleteEvent(ctx context.Context, eventID string) error {
	return c.srv.Events.Delete(c.calendarID, eventID).Context(ctx).Do()
}

// GetEventByTaskID searches for the block event carrying the given task ID in
// its private extended properties.
func (c *CalendarClient) GetEventByTaskID(ctx context.Context, taskID string) (*calendar.Event, error) {
	events, err := c.srv.Events.List(c.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%s", taskIDProperty, taskID)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if len(events.Items) > 0 {
		return events.Items[0], nil
	}
	return nil, nil
}
