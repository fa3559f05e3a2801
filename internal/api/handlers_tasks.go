package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khsu/projectms/internal/model"
)

const maxTaskTitleLen = 100

// taskRequest is the create/update payload for tasks.
type taskRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	Priority     string    `json:"priority"`
	DueDate      time.Time `json:"due_date"`
	AssignedToID *string   `json:"assigned_to_id"`
}

func (s *Server) handleCreateTask(c *gin.Context) {
	projectID := c.Param("id")

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	ctx := c.Request.Context()

	project, err := s.store.GetProjectByID(ctx, projectID)
	if err != nil {
		s.fail(c, err)
		return
	}
	if project.Status == model.ProjectStatusCompleted {
		badRequest(c, "completed projects cannot accept new tasks")
		return
	}

	task, ok := s.taskFromRequest(c, req, true)
	if !ok {
		return
	}
	task.ProjectID = projectID

	// Titles must be unique within a project.
	for _, existing := range project.Tasks {
		if existing.Title == task.Title {
			badRequest(c, "a task with this title already exists in the project")
			return
		}
	}

	created, err := s.store.CreateTask(ctx, *task)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleGetTask(c *gin.Context) {
	task, err := s.store.GetTaskByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	ctx := c.Request.Context()

	existing, err := s.store.GetTaskByID(ctx, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}

	// Edits may keep a due date that has since passed.
	task, ok := s.taskFromRequest(c, req, false)
	if !ok {
		return
	}
	task.ID = existing.ID
	task.ProjectID = existing.ProjectID

	if err := s.store.UpdateTask(ctx, *task); err != nil {
		s.fail(c, err)
		return
	}

	updated, err := s.store.GetTaskByID(ctx, task.ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.store.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}

func (s *Server) handleUpcomingTasks(c *gin.Context) {
	summaries, err := s.engine.UpcomingTasks(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	if summaries == nil {
		summaries = []model.TaskSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"tasks": summaries})
}

// taskFromRequest validates the payload. rejectPastDue enforces the
// creation rule that the due date may not be before today. Writes the
// error response itself and returns ok=false on rejection.
func (s *Server) taskFromRequest(
	c *gin.Context,
	req taskRequest,
	rejectPastDue bool,
) (*model.Task, bool) {
	if req.Title == "" {
		badRequest(c, "task title is required")
		return nil, false
	}
	if len(req.Title) > maxTaskTitleLen {
		badRequest(c, "task title must not exceed 100 characters")
		return nil, false
	}

	status := model.TaskStatusNotStarted
	if req.Status != "" {
		parsed, err := model.ParseTaskStatus(req.Status)
		if err != nil {
			badRequest(c, err.Error())
			return nil, false
		}
		status = parsed
	}

	priority := model.TaskPriorityMedium
	if req.Priority != "" {
		parsed, err := model.ParseTaskPriority(req.Priority)
		if err != nil {
			badRequest(c, err.Error())
			return nil, false
		}
		priority = parsed
	}

	if req.DueDate.IsZero() {
		badRequest(c, "task due date is required")
		return nil, false
	}
	if rejectPastDue {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		if req.DueDate.Before(today) {
			badRequest(c, "task due date must not be before today")
			return nil, false
		}
	}

	if req.AssignedToID != nil {
		if _, err := s.store.GetMemberByID(c.Request.Context(), *req.AssignedToID); err != nil {
			badRequest(c, "assigned team member does not exist")
			return nil, false
		}
	}

	return &model.Task{
		Title:        req.Title,
		Description:  req.Description,
		Status:       status,
		Priority:     priority,
		DueDate:      req.DueDate,
		AssignedToID: req.AssignedToID,
	}, true
}
