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

// CreateMember inserts a new team member. Generates a UUID if ID is
// empty.
func (s *SQLiteStore) CreateMember(
	ctx context.Context,
	member model.TeamMember,
) (*model.TeamMember, error) {
	if strings.TrimSpace(member.Name) == "" {
		return nil, fmt.Errorf("member name must not be empty")
	}
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	member.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO team_members (id, name, position, email, phone, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		member.ID, member.Name, member.Position, member.Email,
		member.Phone, member.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating member: %w", err)
	}
	return &member, nil
}

// UpdateMember updates an existing team member by ID.
func (s *SQLiteStore) UpdateMember(
	ctx context.Context,
	member model.TeamMember,
) error {
	if strings.TrimSpace(member.Name) == "" {
		return fmt.Errorf("member name must not be empty")
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE team_members SET name = ?, position = ?, email = ?, phone = ?
		WHERE id = ?`,
		member.Name, member.Position, member.Email, member.Phone, member.ID,
	)
	if err != nil {
		return fmt.Errorf("updating member %s: %w", member.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("member %s: %w", member.ID, ErrNotFound)
	}
	return nil
}

// DeleteMember removes a team member. Assigned tasks keep existing but
// lose their assignee; the member's notifications are removed.
func (s *SQLiteStore) DeleteMember(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM team_members WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting member %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("member %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetMemberByID retrieves a single team member by ID.
func (s *SQLiteStore) GetMemberByID(
	ctx context.Context,
	id string,
) (*model.TeamMember, error) {
	var member model.TeamMember
	err := s.db.QueryRowxContext(ctx,
		"SELECT * FROM team_members WHERE id = ?", id,
	).Scan(
		&member.ID, &member.Name, &member.Position,
		&member.Email, &member.Phone, &member.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("member %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting member %s: %w", id, err)
	}
	return &member, nil
}

// GetMembers retrieves a page of team members ordered by creation time.
func (s *SQLiteStore) GetMembers(
	ctx context.Context,
	page, pageSize int,
) ([]model.TeamMember, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	rows, err := s.db.QueryxContext(ctx, `
		SELECT * FROM team_members
		ORDER BY created_at ASC
		LIMIT ? OFFSET ?`,
		pageSize, (page-1)*pageSize,
	)
	if err != nil {
		return nil, fmt.Errorf("querying members: %w", err)
	}
	defer rows.Close()

	var members []model.TeamMember
	for rows.Next() {
		var member model.TeamMember
		err := rows.Scan(
			&member.ID, &member.Name, &member.Position,
			&member.Email, &member.Phone, &member.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning member row: %w", err)
		}
		members = append(members, member)
	}

	return members, rows.Err()
}

// CreateManager inserts a new project manager. Generates a UUID if ID
// is empty.
func (s *SQLiteStore) CreateManager(
	ctx context.Context,
	manager model.ProjectManager,
) (*model.ProjectManager, error) {
	if strings.TrimSpace(manager.Name) == "" {
		return nil, fmt.Errorf("manager name must not be empty")
	}
	if manager.ID == "" {
		manager.ID = uuid.New().String()
	}
	manager.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO project_managers (id, name, email, phone, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		manager.ID, manager.Name, manager.Email, manager.Phone, manager.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating manager: %w", err)
	}
	return &manager, nil
}

// UpdateManager updates an existing project manager by ID.
func (s *SQLiteStore) UpdateManager(
	ctx context.Context,
	manager model.ProjectManager,
) error {
	if strings.TrimSpace(manager.Name) == "" {
		return fmt.Errorf("manager name must not be empty")
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE project_managers SET name = ?, email = ?, phone = ?
		WHERE id = ?`,
		manager.Name, manager.Email, manager.Phone, manager.ID,
	)
	if err != nil {
		return fmt.Errorf("updating manager %s: %w", manager.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("manager %s: %w", manager.ID, ErrNotFound)
	}
	return nil
}

// DeleteManager removes a project manager. Owned projects keep
// existing but lose their owner.
func (s *SQLiteStore) DeleteManager(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM project_managers WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting manager %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("manager %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetManagerByID retrieves a single project manager by ID.
func (s *SQLiteStore) GetManagerByID(
	ctx context.Context,
	id string,
) (*model.ProjectManager, error) {
	var manager model.ProjectManager
	err := s.db.QueryRowxContext(ctx,
		"SELECT * FROM project_managers WHERE id = ?", id,
	).Scan(
		&manager.ID, &manager.Name, &manager.Email,
		&manager.Phone, &manager.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("manager %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting manager %s: %w", id, err)
	}
	return &manager, nil
}

// GetManagers retrieves all project managers ordered by name.
func (s *SQLiteStore) GetManagers(
	ctx context.Context,
) ([]model.ProjectManager, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM project_managers ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("querying managers: %w", err)
	}
	defer rows.Close()

	var managers []model.ProjectManager
	for rows.Next() {
		var manager model.ProjectManager
		err := rows.Scan(
			&manager.ID, &manager.Name, &manager.Email,
			&manager.Phone, &manager.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning manager row: %w", err)
		}
		managers = append(managers, manager)
	}

	return managers, rows.Err()
}
