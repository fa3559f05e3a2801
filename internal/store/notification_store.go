package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/khsu/projectms/internal/model"
)

// CreateNotification inserts a new notification record. Generates a
// UUID and creation timestamp if unset.
func (s *SQLiteStore) CreateNotification(
	ctx context.Context,
	n model.Notification,
) (*model.Notification, error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, member_id, task_id, message, read, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		n.ID, n.MemberID, n.TaskID, n.Message,
		boolToInt(n.Read), n.CreatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating notification: %w", err)
	}

	return &n, nil
}

// GetNotificationsForMember retrieves a member's notifications,
// newest first, optionally limited to unread ones.
func (s *SQLiteStore) GetNotificationsForMember(
	ctx context.Context,
	memberID string,
	unreadOnly bool,
) ([]model.Notification, error) {
	query := "SELECT * FROM notifications WHERE member_id = ?"
	if unreadOnly {
		query += " AND read = 0"
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryxContext(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("querying notifications for member %s: %w", memberID, err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var (
			n       model.Notification
			readInt int
		)
		err := rows.Scan(
			&n.ID, &n.MemberID, &n.TaskID, &n.Message,
			&readInt, &n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning notification row: %w", err)
		}
		n.Read = readInt != 0
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// MarkNotificationRead marks a single notification as read.
func (s *SQLiteStore) MarkNotificationRead(
	ctx context.Context,
	id string,
) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE notifications SET read = 1 WHERE id = ?", id,
	)
	if err != nil {
		return fmt.Errorf("marking notification %s as read: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("notification %s: %w", id, ErrNotFound)
	}
	return nil
}

// HasNotificationForTaskSince reports whether any notification for the
// task was created at or after the given time.
func (s *SQLiteStore) HasNotificationForTaskSince(
	ctx context.Context,
	taskID string,
	since time.Time,
) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM notifications
		WHERE task_id = ? AND created_at >= ?`,
		taskID, since.UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("checking notifications for task %s: %w", taskID, err)
	}
	return count > 0, nil
}

// PurgeNotificationsBefore deletes notifications created before cutoff
// and returns the number of rows removed.
func (s *SQLiteStore) PurgeNotificationsBefore(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM notifications WHERE created_at < ?", cutoff.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("purging notifications: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting purged notifications: %w", err)
	}
	return rows, nil
}
