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

func seedProject(t *testing.T, s *store.SQLiteStore) *model.Project {
	t.Helper()
	project, err := s.CreateProject(context.Background(), model.Project{
		Name:      "Website Relaunch",
		Status:    model.ProjectStatusInProgress,
		StartDate: time.Now().UTC(),
	})
	require.NoError(t, err)
	return project
}

func seedMember(t *testing.T, s *store.SQLiteStore, email *string) *model.TeamMember {
	t.Helper()
	member, err := s.CreateMember(context.Background(), model.TeamMember{
		Name:     "Ana Lee",
		Position: "Developer",
		Email:    email,
	})
	require.NoError(t, err)
	return member
}

func seedTask(
	t *testing.T,
	s *store.SQLiteStore,
	projectID string,
	status model.TaskStatus,
	due time.Time,
	assignedTo *string,
) *model.Task {
	t.Helper()
	task, err := s.CreateTask(context.Background(), model.Task{
		ProjectID:    projectID,
		Title:        "task due " + due.Format(time.RFC3339),
		Status:       status,
		Priority:     model.TaskPriorityMedium,
		DueDate:      due,
		AssignedToID: assignedTo,
	})
	require.NoError(t, err)
	return task
}

func strPtr(s string) *string { return &s }

func TestCreateAndGetTask(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	project := seedProject(t, s)
	member := seedMember(t, s, strPtr("ana@example.com"))

	created, err := s.CreateTask(ctx, model.Task{
		ProjectID:    project.ID,
		Title:        "Draft landing page",
		Description:  "Hero section and pricing table",
		Status:       model.TaskStatusInProgress,
		Priority:     model.TaskPriorityHigh,
		DueDate:      time.Now().Add(48 * time.Hour),
		AssignedToID: &member.ID,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := s.GetTaskByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "Draft landing page", got.Title)
	assert.Equal(t, model.TaskStatusInProgress, got.Status)
	assert.Equal(t, model.TaskPriorityHigh, got.Priority)
	require.NotNil(t, got.AssignedTo)
	assert.Equal(t, "Ana Lee", got.AssignedTo.Name)
}

func TestGetTaskByIDNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.GetTaskByID(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetTasksDueBefore(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	project := seedProject(t, s)
	now := time.Now().UTC()

	overdue := seedTask(t, s, project.ID, model.TaskStatusNotStarted,
		now.AddDate(0, 0, -30), nil)
	dueSoon := seedTask(t, s, project.ID, model.TaskStatusInProgress,
		now.Add(48*time.Hour), nil)
	boundary := seedTask(t, s, project.ID, model.TaskStatusNotStarted,
		now.AddDate(0, 0, 3), nil)
	// Outside the window.
	seedTask(t, s, project.ID, model.TaskStatusNotStarted,
		now.AddDate(0, 0, 4), nil)
	// Completed tasks never qualify, even overdue ones.
	seedTask(t, s, project.ID, model.TaskStatusCompleted,
		now.AddDate(0, 0, -5), nil)

	tasks, err := s.GetTasksDueBefore(ctx, now.AddDate(0, 0, 3))
	require.NoError(t, err)

	require.Len(t, tasks, 3)
	// Ordered by due date ascending: most urgent first.
	assert.Equal(t, overdue.ID, tasks[0].ID)
	assert.Equal(t, dueSoon.ID, tasks[1].ID)
	assert.Equal(t, boundary.ID, tasks[2].ID)
}

func TestGetTaskSummariesDueBefore(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	project := seedProject(t, s)
	member := seedMember(t, s, strPtr("ana@example.com"))
	now := time.Now().UTC()

	seedTask(t, s, project.ID, model.TaskStatusInProgress, now, &member.ID)
	seedTask(t, s, project.ID, model.TaskStatusNotStarted, now.Add(24*time.Hour), nil)

	summaries, err := s.GetTaskSummariesDueBefore(ctx, now.AddDate(0, 0, 3))
	require.NoError(t, err)

	require.Len(t, summaries, 2)
	assert.Equal(t, "Ana Lee", summaries[0].AssignedToName)
	assert.Empty(t, summaries[1].AssignedToName)
}

func TestGetTasksFilter(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	project := seedProject(t, s)
	now := time.Now().UTC()

	seedTask(t, s, project.ID, model.TaskStatusCompleted, now, nil)
	open := seedTask(t, s, project.ID, model.TaskStatusNotStarted, now, nil)

	status := model.TaskStatusNotStarted
	tasks, err := s.GetTasks(ctx, store.TaskFilter{
		ProjectID: &project.ID,
		Status:    &status,
	})
	require.NoError(t, err)

	require.Len(t, tasks, 1)
	assert.Equal(t, open.ID, tasks[0].ID)
}

func TestDeleteTaskCascades(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	project := seedProject(t, s)
	member := seedMember(t, s, strPtr("ana@example.com"))
	task := seedTask(t, s, project.ID, model.TaskStatusInProgress,
		time.Now().UTC(), &member.ID)

	_, err := s.SaveFile(ctx, model.File{
		TaskID:  task.ID,
		Name:    "design.pdf",
		Content: []byte("pdf bytes"),
	})
	require.NoError(t, err)

	_, err = s.CreateNotification(ctx, model.Notification{
		MemberID: member.ID,
		TaskID:   task.ID,
		Message:  "Task «x» is due in 0 day(s)",
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteTask(ctx, task.ID))

	files, err := s.GetFilesForTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, files)

	notifications, err := s.GetNotificationsForMember(ctx, member.ID, false)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestUpdateTaskNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	err := s.UpdateTask(context.Background(), model.Task{
		ID:      "missing",
		Title:   "anything",
		DueDate: time.Now(),
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteMemberUnassignsTasks(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	project := seedProject(t, s)
	member := seedMember(t, s, strPtr("ana@example.com"))
	task := seedTask(t, s, project.ID, model.TaskStatusInProgress,
		time.Now().UTC(), &member.ID)

	require.NoError(t, s.DeleteMember(ctx, member.ID))

	got, err := s.GetTaskByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AssignedToID)
	assert.Nil(t, got.AssignedTo)
}
