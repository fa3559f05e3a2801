// Package reminder implements the task-reminder pipeline: eligibility
// scanning, notification recording, and email dispatch.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/khsu/projectms/internal/model"
	"github.com/khsu/projectms/internal/notify"
	"github.com/khsu/projectms/internal/store"
)

// Outcome classifies the result of a single task's reminder attempt.
type Outcome string

const (
	// OutcomeSent: notification recorded and email transmitted.
	OutcomeSent Outcome = "sent"

	// OutcomeSkippedNoEmail: task has no assignee, or the assignee has
	// no email address. A benign no-op, not an error.
	OutcomeSkippedNoEmail Outcome = "skipped_no_email"

	// OutcomeSkippedDuplicate: a notification for this task already
	// exists today.
	OutcomeSkippedDuplicate Outcome = "skipped_duplicate"

	// OutcomeFailed: the notification write or the email send failed.
	OutcomeFailed Outcome = "failed"
)

// TaskResult is the per-task entry in a cycle's results.
type TaskResult struct {
	TaskID  string  `json:"task_id"`
	Title   string  `json:"title"`
	Outcome Outcome `json:"outcome"`
	Err     error   `json:"-"`
}

// CycleResult summarizes one scan-and-notify pass.
type CycleResult struct {
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Results    []TaskResult `json:"results"`
}

// Count returns the number of results with the given outcome.
func (c *CycleResult) Count(o Outcome) int {
	n := 0
	for _, r := range c.Results {
		if r.Outcome == o {
			n++
		}
	}
	return n
}

// Subject lines for the two reminder branches.
const (
	subjectDue     = "Due Reminder"
	subjectOverdue = "Overdue Reminder"
)

// Config controls engine behavior. Zero values get defaults applied
// by NewEngine.
type Config struct {
	// LookaheadDays is the eligibility window. Defaults to 3.
	LookaheadDays int

	// DedupePerDay suppresses repeat reminders for a task within the
	// same calendar day.
	DedupePerDay bool

	// Logger receives per-task failure logs. Defaults to slog.Default.
	Logger *slog.Logger

	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// Engine decides which tasks are due for a reminder, records the
// notification, and invokes the notifier.
type Engine struct {
	store    store.Store
	notifier notify.Notifier
	cfg      Config
}

// NewEngine creates a reminder engine over the given store and
// notifier.
func NewEngine(s store.Store, n notify.Notifier, cfg Config) *Engine {
	if cfg.LookaheadDays <= 0 {
		cfg.LookaheadDays = 3
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Engine{store: s, notifier: n, cfg: cfg}
}

// ScanAndNotify runs one reminder cycle: it queries all non-completed
// tasks due within the lookahead window (overdue included, no lower
// bound) and sends a reminder for each. Per-task failures are logged
// and recorded in the cycle result; they never abort the scan. The
// returned error is non-nil only when the eligibility query itself
// fails.
func (e *Engine) ScanAndNotify(ctx context.Context) (*CycleResult, error) {
	now := e.cfg.Now()
	cycle := &CycleResult{StartedAt: now}

	cutoff := now.AddDate(0, 0, e.cfg.LookaheadDays)
	tasks, err := e.store.GetTasksDueBefore(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("scanning eligible tasks: %w", err)
	}

	for _, task := range tasks {
		// Finish the task in flight, then honor cancellation.
		if err := ctx.Err(); err != nil {
			cycle.FinishedAt = e.cfg.Now()
			return cycle, nil
		}

		outcome, err := e.SendTaskReminder(ctx, task.ID)
		if errors.Is(err, store.ErrNotFound) {
			// Task deleted since the scan query; not a failure.
			continue
		}
		if err != nil {
			e.cfg.Logger.Error("task reminder failed",
				"task_id", task.ID, "title", task.Title, "error", err)
			outcome = OutcomeFailed
		}
		cycle.Results = append(cycle.Results, TaskResult{
			TaskID:  task.ID,
			Title:   task.Title,
			Outcome: outcome,
			Err:     err,
		})
	}

	cycle.FinishedAt = e.cfg.Now()
	return cycle, nil
}

// SendTaskReminder sends a reminder for a single task. The
// notification record is persisted before the email is sent; a send
// failure leaves the record in place. A task without an assignee or
// whose assignee has no email address is skipped silently.
//
// Returns store.ErrNotFound (wrapped) when the task does not exist.
func (e *Engine) SendTaskReminder(ctx context.Context, taskID string) (Outcome, error) {
	task, err := e.store.GetTaskByID(ctx, taskID)
	if err != nil {
		return OutcomeFailed, err
	}

	if task.AssignedTo == nil || task.AssignedTo.Email == nil || *task.AssignedTo.Email == "" {
		return OutcomeSkippedNoEmail, nil
	}

	now := e.cfg.Now()

	if e.cfg.DedupePerDay {
		dup, err := e.store.HasNotificationForTaskSince(ctx, task.ID, startOfDay(now))
		if err != nil {
			return OutcomeFailed, fmt.Errorf("checking reminder dedup for task %s: %w", task.ID, err)
		}
		if dup {
			return OutcomeSkippedDuplicate, nil
		}
	}

	days := daysUntilDue(task.DueDate, now)

	var message, subject string
	if days < 0 {
		message = fmt.Sprintf("Task «%s» is overdue by %d day(s)", task.Title, -days)
		subject = subjectOverdue
	} else {
		message = fmt.Sprintf("Task «%s» is due in %d day(s)", task.Title, days)
		subject = subjectDue
	}

	// Persist before sending: no email goes out without a durable
	// record, and a failed send does not roll the record back.
	_, err = e.store.CreateNotification(ctx, model.Notification{
		MemberID:  *task.AssignedToID,
		TaskID:    task.ID,
		Message:   message,
		Read:      false,
		CreatedAt: now,
	})
	if err != nil {
		return OutcomeFailed, fmt.Errorf("recording notification for task %s: %w", task.ID, err)
	}

	if err := e.notifier.Send(ctx, *task.AssignedTo.Email, subject, message); err != nil {
		return OutcomeFailed, fmt.Errorf("sending reminder for task %s: %w", task.ID, err)
	}

	return OutcomeSent, nil
}

// UpcomingTasks returns summaries of all non-completed tasks due
// within the lookahead window, overdue included. Pure read, no side
// effects.
func (e *Engine) UpcomingTasks(ctx context.Context) ([]model.TaskSummary, error) {
	cutoff := e.cfg.Now().AddDate(0, 0, e.cfg.LookaheadDays)
	summaries, err := e.store.GetTaskSummariesDueBefore(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("listing upcoming tasks: %w", err)
	}
	return summaries, nil
}

// daysUntilDue is the whole-day difference between the due date and
// now, computed on calendar dates: negative when overdue.
func daysUntilDue(due, now time.Time) int {
	d := startOfDay(due)
	n := startOfDay(now)
	return int(d.Sub(n).Hours() / 24)
}

// startOfDay truncates a time to midnight UTC of its calendar date.
func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
