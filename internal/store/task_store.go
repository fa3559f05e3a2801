package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/khsu/projectms/internal/model"
)

// CreateTask inserts a new task. Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateTask(
	ctx context.Context,
	task model.Task,
) (*model.Task, error) {
	if strings.TrimSpace(task.Title) == "" {
		return nil, fmt.Errorf("task title must not be empty")
	}
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.Status == "" {
		task.Status = model.TaskStatusNotStarted
	}
	if task.Priority == "" {
		task.Priority = model.TaskPriorityMedium
	}
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (
			id, project_id, title, description, status, priority,
			due_date, assigned_to_id, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.ProjectID, task.Title, task.Description,
		string(task.Status), string(task.Priority),
		task.DueDate.UTC(), task.AssignedToID,
		task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return &task, nil
}

// UpdateTask updates an existing task by ID.
func (s *SQLiteStore) UpdateTask(ctx context.Context, task model.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return fmt.Errorf("task title must not be empty")
	}
	task.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET
			title = ?, description = ?, status = ?, priority = ?,
			due_date = ?, assigned_to_id = ?, updated_at = ?
		WHERE id = ?`,
		task.Title, task.Description,
		string(task.Status), string(task.Priority),
		task.DueDate.UTC(), task.AssignedToID, task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task %s: %w", task.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task %s: %w", task.ID, ErrNotFound)
	}
	return nil
}

// DeleteTask removes a task by ID. Cascades to files and notifications.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetTaskByID retrieves a single task by ID with its assignee loaded.
func (s *SQLiteStore) GetTaskByID(
	ctx context.Context,
	id string,
) (*model.Task, error) {
	row := s.db.QueryRowxContext(ctx, "SELECT * FROM tasks WHERE id = ?", id)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting task %s: %w", id, err)
	}

	if task.AssignedToID != nil {
		member, err := s.GetMemberByID(ctx, *task.AssignedToID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("loading assignee for task %s: %w", id, err)
		}
		task.AssignedTo = member
	}

	return &task, nil
}

// GetTasks retrieves tasks matching the provided filter options.
func (s *SQLiteStore) GetTasks(
	ctx context.Context,
	filter TaskFilter,
) ([]model.Task, error) {
	var conditions []string
	var args []interface{}

	if filter.ProjectID != nil {
		conditions = append(conditions, "project_id = ?")
		args = append(args, *filter.ProjectID)
	}
	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, string(*filter.Status))
	}
	if filter.Priority != nil {
		conditions = append(conditions, "priority = ?")
		args = append(args, string(*filter.Priority))
	}
	if filter.AssignedToID != nil {
		conditions = append(conditions, "assigned_to_id = ?")
		args = append(args, *filter.AssignedToID)
	}
	if filter.Query != nil && *filter.Query != "" {
		conditions = append(conditions, "(title LIKE ? OR description LIKE ?)")
		q := "%" + *filter.Query + "%"
		args = append(args, q, q)
	}

	query := "SELECT * FROM tasks"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	// Determine sort column.
	sortBy := "due_date"
	if filter.SortBy != "" {
		allowedSorts := map[string]bool{
			"title":      true,
			"status":     true,
			"priority":   true,
			"due_date":   true,
			"created_at": true,
			"updated_at": true,
		}
		if allowedSorts[filter.SortBy] {
			sortBy = filter.SortBy
		}
	}

	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortBy, direction)

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// GetTasksDueBefore returns all non-completed tasks with a due date at
// or before cutoff, ordered by due date ascending. Overdue tasks of
// any age qualify.
func (s *SQLiteStore) GetTasksDueBefore(
	ctx context.Context,
	cutoff time.Time,
) ([]model.Task, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT * FROM tasks
		WHERE status != ? AND due_date <= ?
		ORDER BY due_date ASC`,
		string(model.TaskStatusCompleted), cutoff.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("querying due tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// GetTaskSummariesDueBefore returns the lightweight projection of the
// reminder window, with assignee names resolved.
func (s *SQLiteStore) GetTaskSummariesDueBefore(
	ctx context.Context,
	cutoff time.Time,
) ([]model.TaskSummary, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT t.id, t.title, t.due_date, t.status,
			COALESCE(m.name, '') AS assigned_to_name
		FROM tasks t
		LEFT JOIN team_members m ON m.id = t.assigned_to_id
		WHERE t.status != ? AND t.due_date <= ?
		ORDER BY t.due_date ASC`,
		string(model.TaskStatusCompleted), cutoff.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("querying task summaries: %w", err)
	}
	defer rows.Close()

	var summaries []model.TaskSummary
	for rows.Next() {
		var (
			sum    model.TaskSummary
			status string
		)
		err := rows.Scan(
			&sum.ID, &sum.Title, &sum.DueDate, &status, &sum.AssignedToName,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning task summary row: %w", err)
		}
		sum.Status = model.TaskStatus(status)
		summaries = append(summaries, sum)
	}

	return summaries, rows.Err()
}

// rowScanner is satisfied by both *sqlx.Row and *sqlx.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

var (
	_ rowScanner = (*sqlx.Row)(nil)
	_ rowScanner = (*sqlx.Rows)(nil)
)

// scanTask scans a task row in tasks-table column order.
func scanTask(row rowScanner) (model.Task, error) {
	var (
		task         model.Task
		status       string
		priority     string
		assignedToID *string
	)

	err := row.Scan(
		&task.ID, &task.ProjectID, &task.Title, &task.Description,
		&status, &priority, &task.DueDate, &assignedToID,
		&task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, err
		}
		return model.Task{}, fmt.Errorf("scanning task row: %w", err)
	}

	task.Status = model.TaskStatus(status)
	task.Priority = model.TaskPriority(priority)
	task.AssignedToID = assignedToID

	return task, nil
}
