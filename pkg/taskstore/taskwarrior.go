package taskstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"time"

	"slotta/pkg/model"
)

const taskwarriorTimeLayout = "20060102T150405Z"

// Taskwarrior applies schedule updates by shelling out to the task binary.
type Taskwarrior struct{}

func NewTaskwarrior() *Taskwarrior {
	return &Taskwarrior{}
}

// twTask is the subset of the Taskwarrior export format the store reads back.
type twTask struct {
	UUID        string            `json:"uuid"`
	Description string            `json:"description"`
	Status      string            `json:"status"`
	Scheduled   *model.CustomTime `json:"scheduled,omitempty"`
	Due         *model.CustomTime `json:"due,omitempty"`
}

// ApplyScheduleUpdate writes the chosen window onto the task: scheduled gets
// the slot start, the status label lands in a tag, and the human-readable
// message becomes an annotation. The write is verified by reading the task
// back through export.
func (s *Taskwarrior) ApplyScheduleUpdate(ctx context.Context, taskID string, update model.ScheduleUpdate) error {
	args := []string{
		"rc.hooks=0", "rc.confirmation=off", taskID, "modify",
		"scheduled:" + update.Start.UTC().Format(taskwarriorTimeLayout),
	}
	if update.StatusLabel != "" {
		args = append(args, "+"+update.StatusLabel)
	}
	if err := s.run(ctx, args...); err != nil {
		return fmt.Errorf("failed to apply schedule update to task %s: %w", taskID, err)
	}

	if update.Message != "" {
		if err := s.run(ctx, "rc.hooks=0", "rc.confirmation=off", taskID, "annotate", update.Message); err != nil {
			return fmt.Errorf("failed to annotate task %s: %w", taskID, err)
		}
	}

	// Read-back: confirm the scheduled timestamp actually landed.
	tasks, err := s.export(ctx, taskID)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		return fmt.Errorf("task %s not found after update", taskID)
	}
	got := tasks[0]
	if got.Scheduled == nil || !got.Scheduled.Time.Equal(update.Start.UTC().Truncate(time.Second)) {
		return fmt.Errorf("task %s scheduled timestamp did not persist", taskID)
	}
	return nil
}

func (s *Taskwarrior) run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "task", args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("taskwarrior command failed: %w, output: %s", err, output)
	}
	return nil
}

func (s *Taskwarrior) export(ctx context.Context, filter ...string) ([]twTask, error) {
	args := append(filter, "export", "rc.hooks=0")
	cmd := exec.CommandContext(ctx, "task", args...)

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("taskwarrior export failed: exit code %d, stderr: %s",
				exitErr.ExitCode(), exitErr.Stderr)
		}
		return nil, fmt.Errorf("taskwarrior export failed: %w", err)
	}

	return parseExport(output)
}

// parseExport decodes task export output. Taskwarrior emits a JSON array, but
// hooks hand over bare concatenated objects, so both shapes are accepted.
func parseExport(data []byte) ([]twTask, error) {
	var tasks []twTask
	if err := json.Unmarshal(data, &tasks); err == nil {
		return tasks, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	for {
		var task twTask
		if err := decoder.Decode(&task); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to decode task json: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
