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

// SaveFile inserts a new file attachment. Generates a UUID if ID is
// empty; Size is derived from the content.
func (s *SQLiteStore) SaveFile(
	ctx context.Context,
	f model.File,
) (*model.File, error) {
	if strings.TrimSpace(f.Name) == "" {
		return nil, fmt.Errorf("file name must not be empty")
	}
	if len(f.Content) == 0 {
		return nil, fmt.Errorf("file content must not be empty")
	}
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	if f.ContentType == "" {
		f.ContentType = "application/octet-stream"
	}
	f.Size = int64(len(f.Content))
	f.UploadedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO files (
			id, task_id, name, content_type, size, content,
			uploaded_by_id, uploaded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.TaskID, f.Name, f.ContentType, f.Size, f.Content,
		f.UploadedByID, f.UploadedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("saving file: %w", err)
	}
	return &f, nil
}

// GetFileByID retrieves a single file with its content.
func (s *SQLiteStore) GetFileByID(
	ctx context.Context,
	id string,
) (*model.File, error) {
	var f model.File
	err := s.db.QueryRowxContext(ctx,
		"SELECT * FROM files WHERE id = ?", id,
	).Scan(
		&f.ID, &f.TaskID, &f.Name, &f.ContentType, &f.Size,
		&f.Content, &f.UploadedByID, &f.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("file %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting file %s: %w", id, err)
	}
	return &f, nil
}

// GetFilesForTask retrieves file metadata for a task, newest first.
// Content is not loaded; use GetFileByID to download.
func (s *SQLiteStore) GetFilesForTask(
	ctx context.Context,
	taskID string,
) ([]model.File, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, task_id, name, content_type, size, uploaded_by_id, uploaded_at
		FROM files
		WHERE task_id = ?
		ORDER BY uploaded_at DESC`,
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying files for task %s: %w", taskID, err)
	}
	defer rows.Close()

	var files []model.File
	for rows.Next() {
		var f model.File
		err := rows.Scan(
			&f.ID, &f.TaskID, &f.Name, &f.ContentType, &f.Size,
			&f.UploadedByID, &f.UploadedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning file row: %w", err)
		}
		files = append(files, f)
	}

	return files, rows.Err()
}

// DeleteFile removes a file attachment by ID.
func (s *SQLiteStore) DeleteFile(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM files WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting file %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("file %s: %w", id, ErrNotFound)
	}
	return nil
}
