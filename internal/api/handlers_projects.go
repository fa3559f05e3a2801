package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khsu/projectms/internal/model"
)

// projectRequest is the create/update payload for projects.
type projectRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	OwnerID     *string    `json:"owner_id"`
}

func (s *Server) handleListProjects(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	ctx := c.Request.Context()

	total, err := s.store.CountProjects(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}

	projects, err := s.store.GetProjects(ctx, page, pageSize)
	if err != nil {
		s.fail(c, err)
		return
	}

	totalPages := (total + pageSize - 1) / pageSize

	c.JSON(http.StatusOK, gin.H{
		"projects":    projects,
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": totalPages,
	})
}

func (s *Server) handleCreateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	project, ok := s.projectFromRequest(c, req)
	if !ok {
		return
	}

	created, err := s.store.CreateProject(c.Request.Context(), *project)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleGetProject(c *gin.Context) {
	project, err := s.store.GetProjectByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (s *Server) handleUpdateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	project, ok := s.projectFromRequest(c, req)
	if !ok {
		return
	}
	project.ID = c.Param("id")

	if err := s.store.UpdateProject(c.Request.Context(), *project); err != nil {
		s.fail(c, err)
		return
	}

	updated, err := s.store.GetProjectByID(c.Request.Context(), project.ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteProject(c *gin.Context) {
	if err := s.store.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

// projectFromRequest validates the payload and resolves the owner.
// Writes the error response itself and returns ok=false on rejection.
func (s *Server) projectFromRequest(
	c *gin.Context,
	req projectRequest,
) (*model.Project, bool) {
	if req.Name == "" {
		badRequest(c, "project name is required")
		return nil, false
	}

	status := model.ProjectStatusNotStarted
	if req.Status != "" {
		parsed, err := model.ParseProjectStatus(req.Status)
		if err != nil {
			badRequest(c, err.Error())
			return nil, false
		}
		status = parsed
	}

	if req.OwnerID != nil {
		if _, err := s.store.GetManagerByID(c.Request.Context(), *req.OwnerID); err != nil {
			badRequest(c, "project owner does not exist")
			return nil, false
		}
	}

	startDate := req.StartDate
	if startDate.IsZero() {
		startDate = time.Now().UTC()
	}

	return &model.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      status,
		StartDate:   startDate,
		EndDate:     req.EndDate,
		OwnerID:     req.OwnerID,
	}, true
}
