package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khsu/projectms/internal/model"
	"github.com/khsu/projectms/internal/store"
	"github.com/khsu/projectms/tests/testutil"
)

func TestProjectCRUD(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	manager, err := s.CreateManager(ctx, model.ProjectManager{
		Name:  "Kim Park",
		Email: "kim@example.com",
	})
	require.NoError(t, err)

	created, err := s.CreateProject(ctx, model.Project{
		Name:        "CRM Migration",
		Description: "Move off the legacy system",
		Status:      model.ProjectStatusNotStarted,
		StartDate:   time.Now().UTC(),
		OwnerID:     &manager.ID,
	})
	require.NoError(t, err)

	created.Status = model.ProjectStatusInProgress
	require.NoError(t, s.UpdateProject(ctx, *created))

	got, err := s.GetProjectByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ProjectStatusInProgress, got.Status)
	require.NotNil(t, got.Owner)
	assert.Equal(t, "Kim Park", got.Owner.Name)

	require.NoError(t, s.DeleteProject(ctx, created.ID))
	_, err = s.GetProjectByID(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateProjectRequiresName(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.CreateProject(context.Background(), model.Project{
		Name:      "   ",
		StartDate: time.Now(),
	})
	assert.Error(t, err)
}

func TestGetProjectByIDLoadsTasks(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	project := seedProject(t, s)
	member := seedMember(t, s, strPtr("ana@example.com"))
	seedTask(t, s, project.ID, model.TaskStatusInProgress,
		time.Now().UTC(), &member.ID)

	got, err := s.GetProjectByID(ctx, project.ID)
	require.NoError(t, err)

	require.Len(t, got.Tasks, 1)
	require.NotNil(t, got.Tasks[0].AssignedTo)
	assert.Equal(t, "Ana Lee", got.Tasks[0].AssignedTo.Name)
}

func TestGetProjectsPagination(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.CreateProject(ctx, model.Project{
			Name:      fmt.Sprintf("Project %d", i),
			StartDate: time.Now().UTC(),
		})
		require.NoError(t, err)
	}

	page1, err := s.GetProjects(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page1, 2)

	page3, err := s.GetProjects(ctx, 3, 2)
	require.NoError(t, err)
	assert.Len(t, page3, 1)

	total, err := s.CountProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
}

func TestDeleteProjectCascadesToTasks(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	project := seedProject(t, s)
	task := seedTask(t, s, project.ID, model.TaskStatusInProgress,
		time.Now().UTC(), nil)

	require.NoError(t, s.DeleteProject(ctx, project.ID))

	_, err := s.GetTaskByID(ctx, task.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
