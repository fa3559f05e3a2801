package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khsu/projectms/internal/model"
)

func TestCreateProjectEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/projects", map[string]any{
		"name":        "CRM Migration",
		"description": "Move off the legacy system",
		"status":      "in_progress",
	})
	requireStatus(t, w, http.StatusCreated)

	var created model.Project
	decode(t, w, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "CRM Migration", created.Name)
	assert.Equal(t, model.ProjectStatusInProgress, created.Status)
}

func TestCreateProjectValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing name", map[string]any{"status": "in_progress"}},
		{"unknown status", map[string]any{"name": "X", "status": "paused"}},
		{"unknown owner", map[string]any{"name": "X", "owner_id": "missing"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/projects", tc.body)
			requireStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestGetProjectNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/projects/missing", nil)
	requireStatus(t, w, http.StatusNotFound)
}

func TestGetProjectWithTasks(t *testing.T) {
	env := newTestEnv(t)

	project := env.seedProject(t, model.ProjectStatusInProgress)
	member := env.seedMember(t, "ana@example.com")
	env.seedTask(t, project.ID, "Draft landing page",
		time.Now().Add(48*time.Hour), &member.ID)

	w := env.do(t, http.MethodGet, "/api/projects/"+project.ID, nil)
	requireStatus(t, w, http.StatusOK)

	var got model.Project
	decode(t, w, &got)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, "Draft landing page", got.Tasks[0].Title)
}

func TestListProjectsPagination(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 3; i++ {
		env.seedProject(t, model.ProjectStatusNotStarted)
	}

	w := env.do(t, http.MethodGet, "/api/projects?page=1&page_size=2", nil)
	requireStatus(t, w, http.StatusOK)

	var resp struct {
		Projects   []model.Project `json:"projects"`
		Page       int             `json:"page"`
		PageSize   int             `json:"page_size"`
		Total      int             `json:"total"`
		TotalPages int             `json:"total_pages"`
	}
	decode(t, w, &resp)

	assert.Len(t, resp.Projects, 2)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 2, resp.TotalPages)
}

func TestUpdateProjectEndpoint(t *testing.T) {
	env := newTestEnv(t)

	project := env.seedProject(t, model.ProjectStatusNotStarted)

	w := env.do(t, http.MethodPut, "/api/projects/"+project.ID, map[string]any{
		"name":   "Website Relaunch",
		"status": "completed",
	})
	requireStatus(t, w, http.StatusOK)

	var updated model.Project
	decode(t, w, &updated)
	assert.Equal(t, model.ProjectStatusCompleted, updated.Status)
}

func TestDeleteProjectEndpoint(t *testing.T) {
	env := newTestEnv(t)

	project := env.seedProject(t, model.ProjectStatusNotStarted)

	w := env.do(t, http.MethodDelete, "/api/projects/"+project.ID, nil)
	requireStatus(t, w, http.StatusOK)

	w = env.do(t, http.MethodGet, "/api/projects/"+project.ID, nil)
	requireStatus(t, w, http.StatusNotFound)
}
