package store

import (
	"context"
	"errors"
	"time"

	"github.com/khsu/projectms/internal/model"
)

// ErrNotFound is wrapped by store methods when the requested row does
// not exist, so callers can distinguish missing data from failures.
var ErrNotFound = errors.New("not found")

// TaskFilter controls filtering, sorting, and pagination for task
// queries.
type TaskFilter struct {
	ProjectID    *string
	Status       *model.TaskStatus
	Priority     *model.TaskPriority
	AssignedToID *string
	Query        *string // search title + description
	SortBy       string  // "due_date", "priority", "title", "status", "created_at", "updated_at"
	SortDesc     bool
	Limit        int
	Offset       int
}

// Store defines the persistence interface for projects, tasks, team
// members, project managers, notifications, and file attachments.
type Store interface {
	// === Projects ===

	CreateProject(ctx context.Context, project model.Project) (*model.Project, error)
	UpdateProject(ctx context.Context, project model.Project) error
	DeleteProject(ctx context.Context, id string) error
	GetProjectByID(ctx context.Context, id string) (*model.Project, error)
	GetProjects(ctx context.Context, page, pageSize int) ([]model.Project, error)
	CountProjects(ctx context.Context) (int, error)

	// === Tasks ===

	CreateTask(ctx context.Context, task model.Task) (*model.Task, error)
	UpdateTask(ctx context.Context, task model.Task) error
	DeleteTask(ctx context.Context, id string) error
	GetTaskByID(ctx context.Context, id string) (*model.Task, error)
	GetTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error)

	// GetTasksDueBefore returns all non-completed tasks with a due
	// date at or before cutoff, ordered by due date ascending. There
	// is no lower bound: arbitrarily overdue tasks qualify.
	GetTasksDueBefore(ctx context.Context, cutoff time.Time) ([]model.Task, error)

	// GetTaskSummariesDueBefore is the read-only projection of the
	// same window.
	GetTaskSummariesDueBefore(ctx context.Context, cutoff time.Time) ([]model.TaskSummary, error)

	// === Team members ===

	CreateMember(ctx context.Context, member model.TeamMember) (*model.TeamMember, error)
	UpdateMember(ctx context.Context, member model.TeamMember) error
	DeleteMember(ctx context.Context, id string) error
	GetMemberByID(ctx context.Context, id string) (*model.TeamMember, error)
	GetMembers(ctx context.Context, page, pageSize int) ([]model.TeamMember, error)

	// === Project managers ===

	CreateManager(ctx context.Context, manager model.ProjectManager) (*model.ProjectManager, error)
	UpdateManager(ctx context.Context, manager model.ProjectManager) error
	DeleteManager(ctx context.Context, id string) error
	GetManagerByID(ctx context.Context, id string) (*model.ProjectManager, error)
	GetManagers(ctx context.Context) ([]model.ProjectManager, error)

	// === Notifications ===

	CreateNotification(ctx context.Context, n model.Notification) (*model.Notification, error)
	GetNotificationsForMember(ctx context.Context, memberID string, unreadOnly bool) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error

	// HasNotificationForTaskSince reports whether a notification for
	// the task exists at or after the given time. The reminder engine
	// uses this with a start-of-day cutoff as its dedup guard.
	HasNotificationForTaskSince(ctx context.Context, taskID string, since time.Time) (bool, error)

	// PurgeNotificationsBefore deletes notifications created before
	// cutoff and returns the number of rows removed.
	PurgeNotificationsBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// === Files ===

	SaveFile(ctx context.Context, f model.File) (*model.File, error)
	GetFileByID(ctx context.Context, id string) (*model.File, error)
	GetFilesForTask(ctx context.Context, taskID string) ([]model.File, error)
	DeleteFile(ctx context.Context, id string) error
}
