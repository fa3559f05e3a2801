package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khsu/projectms/internal/model"
	"github.com/khsu/projectms/internal/store"
	"github.com/khsu/projectms/tests/testutil"
)

func seedNotification(
	t *testing.T,
	s *store.SQLiteStore,
	memberID, taskID, message string,
	createdAt time.Time,
) *model.Notification {
	t.Helper()
	n, err := s.CreateNotification(context.Background(), model.Notification{
		MemberID:  memberID,
		TaskID:    taskID,
		Message:   message,
		CreatedAt: createdAt,
	})
	require.NoError(t, err)
	return n
}

func TestNotificationsForMember(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	project := seedProject(t, s)
	member := seedMember(t, s, strPtr("ana@example.com"))
	task := seedTask(t, s, project.ID, model.TaskStatusInProgress,
		time.Now().UTC(), &member.ID)

	now := time.Now().UTC()
	older := seedNotification(t, s, member.ID, task.ID,
		"Task «x» is due in 2 day(s)", now.Add(-time.Hour))
	newer := seedNotification(t, s, member.ID, task.ID,
		"Task «x» is due in 1 day(s)", now)

	all, err := s.GetNotificationsForMember(ctx, member.ID, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)
	assert.Equal(t, older.ID, all[1].ID)

	require.NoError(t, s.MarkNotificationRead(ctx, newer.ID))

	unread, err := s.GetNotificationsForMember(ctx, member.ID, true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, older.ID, unread[0].ID)
}

func TestMarkNotificationReadNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	err := s.MarkNotificationRead(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestHasNotificationForTaskSince(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	project := seedProject(t, s)
	member := seedMember(t, s, strPtr("ana@example.com"))
	task := seedTask(t, s, project.ID, model.TaskStatusInProgress,
		time.Now().UTC(), &member.ID)

	now := time.Now().UTC()
	seedNotification(t, s, member.ID, task.ID, "reminder", now.Add(-30*time.Minute))

	has, err := s.HasNotificationForTaskSince(ctx, task.ID, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.True(t, has)

	has, err = s.HasNotificationForTaskSince(ctx, task.ID, now)
	require.NoError(t, err)
	assert.False(t, has)

	has, err = s.HasNotificationForTaskSince(ctx, "other-task", now.Add(-time.Hour))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestPurgeNotificationsBefore(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	project := seedProject(t, s)
	member := seedMember(t, s, strPtr("ana@example.com"))
	task := seedTask(t, s, project.ID, model.TaskStatusInProgress,
		time.Now().UTC(), &member.ID)

	now := time.Now().UTC()
	seedNotification(t, s, member.ID, task.ID, "old", now.AddDate(0, 0, -100))
	seedNotification(t, s, member.ID, task.ID, "older", now.AddDate(0, 0, -91))
	kept := seedNotification(t, s, member.ID, task.ID, "recent", now.AddDate(0, 0, -10))

	purged, err := s.PurgeNotificationsBefore(ctx, now.AddDate(0, 0, -90))
	require.NoError(t, err)
	assert.Equal(t, int64(2), purged)

	remaining, err := s.GetNotificationsForMember(ctx, member.ID, false)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)
}
