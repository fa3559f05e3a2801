package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/khsu/projectms/internal/model"
)

// memberRequest is the create/update payload for team members.
type memberRequest struct {
	Name     string  `json:"name"`
	Position string  `json:"position"`
	Email    *string `json:"email"`
	Phone    string  `json:"phone"`
}

// managerRequest is the create/update payload for project managers.
type managerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (s *Server) handleListMembers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	members, err := s.store.GetMembers(c.Request.Context(), page, pageSize)
	if err != nil {
		s.fail(c, err)
		return
	}
	if members == nil {
		members = []model.TeamMember{}
	}
	c.JSON(http.StatusOK, gin.H{"members": members, "page": page, "page_size": pageSize})
}

func (s *Server) handleCreateMember(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" {
		badRequest(c, "member name is required")
		return
	}

	created, err := s.store.CreateMember(c.Request.Context(), model.TeamMember{
		Name:     req.Name,
		Position: req.Position,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleGetMember(c *gin.Context) {
	member, err := s.store.GetMemberByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (s *Server) handleUpdateMember(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" {
		badRequest(c, "member name is required")
		return
	}

	member := model.TeamMember{
		ID:       c.Param("id"),
		Name:     req.Name,
		Position: req.Position,
		Email:    req.Email,
		Phone:    req.Phone,
	}
	if err := s.store.UpdateMember(c.Request.Context(), member); err != nil {
		s.fail(c, err)
		return
	}

	updated, err := s.store.GetMemberByID(c.Request.Context(), member.ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteMember(c *gin.Context) {
	if err := s.store.DeleteMember(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "member deleted"})
}

func (s *Server) handleListManagers(c *gin.Context) {
	managers, err := s.store.GetManagers(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	if managers == nil {
		managers = []model.ProjectManager{}
	}
	c.JSON(http.StatusOK, gin.H{"managers": managers})
}

func (s *Server) handleCreateManager(c *gin.Context) {
	var req managerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" {
		badRequest(c, "manager name is required")
		return
	}

	created, err := s.store.CreateManager(c.Request.Context(), model.ProjectManager{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleGetManager(c *gin.Context) {
	manager, err := s.store.GetManagerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, manager)
}

func (s *Server) handleUpdateManager(c *gin.Context) {
	var req managerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" {
		badRequest(c, "manager name is required")
		return
	}

	manager := model.ProjectManager{
		ID:    c.Param("id"),
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
	if err := s.store.UpdateManager(c.Request.Context(), manager); err != nil {
		s.fail(c, err)
		return
	}

	updated, err := s.store.GetManagerByID(c.Request.Context(), manager.ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteManager(c *gin.Context) {
	if err := s.store.DeleteManager(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "manager deleted"})
}
