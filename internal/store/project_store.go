package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khsu/projectms/internal/model"
)

// CreateProject inserts a new project. Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateProject(
	ctx context.Context,
	project model.Project,
) (*model.Project, error) {
	if strings.TrimSpace(project.Name) == "" {
		return nil, fmt.Errorf("project name must not be empty")
	}
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	if project.Status == "" {
		project.Status = model.ProjectStatusNotStarted
	}
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (
			id, name, description, status, start_date, end_date,
			owner_id, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		project.ID, project.Name, project.Description, string(project.Status),
		project.StartDate.UTC(), project.EndDate, project.OwnerID,
		project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	return &project, nil
}

// UpdateProject updates an existing project.
func (s *SQLiteStore) UpdateProject(
	ctx context.Context,
	project model.Project,
) error {
	if strings.TrimSpace(project.Name) == "" {
		return fmt.Errorf("project name must not be empty")
	}
	project.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE projects SET
			name = ?, description = ?, status = ?, start_date = ?,
			end_date = ?, owner_id = ?, updated_at = ?
		WHERE id = ?`,
		project.Name, project.Description, string(project.Status),
		project.StartDate.UTC(), project.EndDate, project.OwnerID,
		project.UpdatedAt, project.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project %s: %w", project.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("project %s: %w", project.ID, ErrNotFound)
	}
	return nil
}

// DeleteProject removes a project. Cascades to its tasks and, through
// them, to files and notifications.
func (s *SQLiteStore) DeleteProject(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetProjectByID retrieves a single project with its owner and tasks
// loaded. Task assignees are resolved as well so project detail views
// can show names.
func (s *SQLiteStore) GetProjectByID(
	ctx context.Context,
	id string,
) (*model.Project, error) {
	project, err := s.getProjectRow(ctx, id)
	if err != nil {
		return nil, err
	}

	if project.OwnerID != nil {
		owner, err := s.GetManagerByID(ctx, *project.OwnerID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("loading owner for project %s: %w", id, err)
		}
		project.Owner = owner
	}

	tasks, err := s.GetTasks(ctx, TaskFilter{ProjectID: &project.ID})
	if err != nil {
		return nil, fmt.Errorf("loading tasks for project %s: %w", id, err)
	}
	for i := range tasks {
		if tasks[i].AssignedToID == nil {
			continue
		}
		member, err := s.GetMemberByID(ctx, *tasks[i].AssignedToID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("loading assignee for task %s: %w", tasks[i].ID, err)
		}
		tasks[i].AssignedTo = member
	}
	project.Tasks = tasks

	return project, nil
}

// getProjectRow retrieves the bare project row.
func (s *SQLiteStore) getProjectRow(
	ctx context.Context,
	id string,
) (*model.Project, error) {
	var (
		project model.Project
		status  string
		endDate *time.Time
		ownerID *string
	)

	err := s.db.QueryRowxContext(ctx, "SELECT * FROM projects WHERE id = ?", id).Scan(
		&project.ID, &project.Name, &project.Description, &status,
		&project.StartDate, &endDate, &ownerID,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting project %s: %w", id, err)
	}

	project.Status = model.ProjectStatus(status)
	project.EndDate = endDate
	project.OwnerID = ownerID
	return &project, nil
}

// GetProjects retrieves a page of projects ordered by creation time.
func (s *SQLiteStore) GetProjects(
	ctx context.Context,
	page, pageSize int,
) ([]model.Project, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	rows, err := s.db.QueryxContext(ctx, `
		SELECT * FROM projects
		ORDER BY created_at ASC
		LIMIT ? OFFSET ?`,
		pageSize, (page-1)*pageSize,
	)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var (
			project model.Project
			status  string
			endDate *time.Time
			ownerID *string
		)
		err := rows.Scan(
			&project.ID, &project.Name, &project.Description, &status,
			&project.StartDate, &endDate, &ownerID,
			&project.CreatedAt, &project.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		project.Status = model.ProjectStatus(status)
		project.EndDate = endDate
		project.OwnerID = ownerID
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

// CountProjects returns the total number of projects.
func (s *SQLiteStore) CountProjects(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM projects"); err != nil {
		return 0, fmt.Errorf("counting projects: %w", err)
	}
	return count, nil
}
