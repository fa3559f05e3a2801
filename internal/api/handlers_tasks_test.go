package api_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khsu/projectms/internal/model"
)

func TestCreateTaskEndpoint(t *testing.T) {
	env := newTestEnv(t)

	project := env.seedProject(t, model.ProjectStatusInProgress)
	member := env.seedMember(t, "ana@example.com")

	w := env.do(t, http.MethodPost, "/api/projects/"+project.ID+"/tasks", map[string]any{
		"title":          "Draft landing page",
		"status":         "in_progress",
		"priority":       "high",
		"due_date":       time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"assigned_to_id": member.ID,
	})
	requireStatus(t, w, http.StatusCreated)

	var created model.Task
	decode(t, w, &created)
	assert.Equal(t, project.ID, created.ProjectID)
	assert.Equal(t, model.TaskPriorityHigh, created.Priority)
	require.NotNil(t, created.AssignedToID)
	assert.Equal(t, member.ID, *created.AssignedToID)
}

func TestCreateTaskValidation(t *testing.T) {
	env := newTestEnv(t)

	project := env.seedProject(t, model.ProjectStatusInProgress)
	due := time.Now().Add(48 * time.Hour).Format(time.RFC3339)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing title", map[string]any{"due_date": due}},
		{"title too long", map[string]any{
			"title":    strings.Repeat("x", 101),
			"due_date": due,
		}},
		{"missing due date", map[string]any{"title": "X"}},
		{"past due date", map[string]any{
			"title":    "X",
			"due_date": time.Now().AddDate(0, 0, -2).Format(time.RFC3339),
		}},
		{"unknown status", map[string]any{
			"title": "X", "due_date": due, "status": "blocked",
		}},
		{"unknown priority", map[string]any{
			"title": "X", "due_date": due, "priority": "urgent",
		}},
		{"unknown assignee", map[string]any{
			"title": "X", "due_date": due, "assigned_to_id": "missing",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/projects/"+project.ID+"/tasks", tc.body)
			requireStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestCreateTaskOnCompletedProject(t *testing.T) {
	env := newTestEnv(t)

	project := env.seedProject(t, model.ProjectStatusCompleted)

	w := env.do(t, http.MethodPost, "/api/projects/"+project.ID+"/tasks", map[string]any{
		"title":    "Too late",
		"due_date": time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	})
	requireStatus(t, w, http.StatusBadRequest)
}

func TestCreateTaskDuplicateTitle(t *testing.T) {
	env := newTestEnv(t)

	project := env.seedProject(t, model.ProjectStatusInProgress)
	env.seedTask(t, project.ID, "Draft landing page",
		time.Now().Add(48*time.Hour), nil)

	w := env.do(t, http.MethodPost, "/api/projects/"+project.ID+"/tasks", map[string]any{
		"title":    "Draft landing page",
		"due_date": time.Now().Add(72 * time.Hour).Format(time.RFC3339),
	})
	requireStatus(t, w, http.StatusBadRequest)
}

func TestUpdateTaskAllowsPastDueDate(t *testing.T) {
	env := newTestEnv(t)

	project := env.seedProject(t, model.ProjectStatusInProgress)
	task := env.seedTask(t, project.ID, "Slipping",
		time.Now().Add(48*time.Hour), nil)

	// Marking an old task completed keeps its original, now past, due
	// date. Updates must not reject it.
	w := env.do(t, http.MethodPut, "/api/tasks/"+task.ID, map[string]any{
		"title":    "Slipping",
		"status":   "completed",
		"due_date": time.Now().AddDate(0, 0, -3).Format(time.RFC3339),
	})
	requireStatus(t, w, http.StatusOK)

	var updated model.Task
	decode(t, w, &updated)
	assert.Equal(t, model.TaskStatusCompleted, updated.Status)
}

func TestGetTaskNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/tasks/missing", nil)
	requireStatus(t, w, http.StatusNotFound)
}

func TestDeleteTaskEndpoint(t *testing.T) {
	env := newTestEnv(t)

	project := env.seedProject(t, model.ProjectStatusInProgress)
	task := env.seedTask(t, project.ID, "Short lived",
		time.Now().Add(48*time.Hour), nil)

	w := env.do(t, http.MethodDelete, "/api/tasks/"+task.ID, nil)
	requireStatus(t, w, http.StatusOK)

	w = env.do(t, http.MethodGet, "/api/tasks/"+task.ID, nil)
	requireStatus(t, w, http.StatusNotFound)
}

func TestUpcomingTasksEndpoint(t *testing.T) {
	env := newTestEnv(t)

	project := env.seedProject(t, model.ProjectStatusInProgress)
	member := env.seedMember(t, "ana@example.com")
	env.seedTask(t, project.ID, "Soon", time.Now().Add(24*time.Hour), &member.ID)
	env.seedTask(t, project.ID, "Later", time.Now().AddDate(0, 0, 10), &member.ID)

	w := env.do(t, http.MethodGet, "/api/tasks/upcoming", nil)
	requireStatus(t, w, http.StatusOK)

	var resp struct {
		Tasks []model.TaskSummary `json:"tasks"`
	}
	decode(t, w, &resp)

	require.Len(t, resp.Tasks, 1)
	assert.Equal(t, "Soon", resp.Tasks[0].Title)
	assert.Equal(t, "Ana Lee", resp.Tasks[0].AssignedToName)
}
