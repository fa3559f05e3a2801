package model

import (
	"fmt"
	"strings"
	"time"
)

// TaskStatus is the closed set of task lifecycle states.
type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "not_started"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskPriority is the closed set of task priorities.
type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityLow    TaskPriority = "low"
)

// ParseTaskStatus normalizes a status string to its canonical form.
// Legacy spellings ("Not Started", "NotStarted", "in progress") are
// accepted here and nowhere else; the store only ever sees canonical
// values.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch normalizeEnum(s) {
	case "not_started", "notstarted":
		return TaskStatusNotStarted, nil
	case "in_progress", "inprogress":
		return TaskStatusInProgress, nil
	case "completed", "complete", "done":
		return TaskStatusCompleted, nil
	}
	return "", fmt.Errorf("invalid task status %q", s)
}

// ParseTaskPriority normalizes a priority string to its canonical form.
func ParseTaskPriority(s string) (TaskPriority, error) {
	switch normalizeEnum(s) {
	case "high":
		return TaskPriorityHigh, nil
	case "medium", "med":
		return TaskPriorityMedium, nil
	case "low":
		return TaskPriorityLow, nil
	}
	return "", fmt.Errorf("invalid task priority %q", s)
}

func normalizeEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// Task is a unit of work belonging to a project, optionally assigned
// to a team member.
type Task struct {
	// ID is the unique identifier for this task.
	ID string `json:"id" db:"id"`

	// ProjectID is the owning project. Deleting the project cascades
	// to its tasks.
	ProjectID string `json:"project_id" db:"project_id"`

	// Title is the human-readable summary of the task.
	Title string `json:"title" db:"title"`

	// Description is the full body text.
	Description string `json:"description" db:"description"`

	// Status is the canonical lifecycle state.
	Status TaskStatus `json:"status" db:"status"`

	// Priority is the canonical priority level.
	Priority TaskPriority `json:"priority" db:"priority"`

	// DueDate is when the task must be finished. Reminder eligibility
	// is computed from this at day granularity.
	DueDate time.Time `json:"due_date" db:"due_date"`

	// AssignedToID references the assigned team member, if any.
	AssignedToID *string `json:"assigned_to_id,omitempty" db:"assigned_to_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// AssignedTo is populated by queries that join with members.
	AssignedTo *TeamMember `json:"assigned_to,omitempty" db:"-"`
}

// TaskSummary is the lightweight projection returned by the
// upcoming-tasks query.
type TaskSummary struct {
	ID             string     `json:"id" db:"id"`
	Title          string     `json:"title" db:"title"`
	DueDate        time.Time  `json:"due_date" db:"due_date"`
	Status         TaskStatus `json:"status" db:"status"`
	AssignedToName string     `json:"assigned_to_name" db:"assigned_to_name"`
}
