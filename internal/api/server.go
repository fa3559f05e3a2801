// Package api exposes the JSON API over the store and the reminder
// engine.
package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/khsu/projectms/internal/notify"
	"github.com/khsu/projectms/internal/reminder"
	"github.com/khsu/projectms/internal/store"
)

// Server is the JSON API server.
type Server struct {
	store    store.Store
	engine   *reminder.Engine
	notifier notify.Notifier
	logger   *slog.Logger
	router   *gin.Engine
}

// NewServer creates the API server and registers all routes.
func NewServer(
	s store.Store,
	engine *reminder.Engine,
	notifier notify.Notifier,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery())

	srv := &Server{
		store:    s,
		engine:   engine,
		notifier: notifier,
		logger:   logger,
		router:   router,
	}

	api := router.Group("/api")
	{
		api.GET("/projects", srv.handleListProjects)
		api.POST("/projects", srv.handleCreateProject)
		api.GET("/projects/:id", srv.handleGetProject)
		api.PUT("/projects/:id", srv.handleUpdateProject)
		api.DELETE("/projects/:id", srv.handleDeleteProject)
		api.POST("/projects/:id/tasks", srv.handleCreateTask)

		api.GET("/tasks/upcoming", srv.handleUpcomingTasks)
		api.GET("/tasks/:id", srv.handleGetTask)
		api.PUT("/tasks/:id", srv.handleUpdateTask)
		api.DELETE("/tasks/:id", srv.handleDeleteTask)
		api.POST("/tasks/:id/remind", srv.handleRemindTask)
		api.GET("/tasks/:id/files", srv.handleListTaskFiles)
		api.POST("/tasks/:id/files", srv.handleUploadFile)

		api.GET("/members", srv.handleListMembers)
		api.POST("/members", srv.handleCreateMember)
		api.GET("/members/:id", srv.handleGetMember)
		api.PUT("/members/:id", srv.handleUpdateMember)
		api.DELETE("/members/:id", srv.handleDeleteMember)
		api.GET("/members/:id/notifications", srv.handleMemberNotifications)

		api.GET("/managers", srv.handleListManagers)
		api.POST("/managers", srv.handleCreateManager)
		api.GET("/managers/:id", srv.handleGetManager)
		api.PUT("/managers/:id", srv.handleUpdateManager)
		api.DELETE("/managers/:id", srv.handleDeleteManager)

		api.POST("/notifications/:id/read", srv.handleMarkNotificationRead)

		api.POST("/reminders/check", srv.handleCheckReminders)
		api.POST("/reminders/test-email", srv.handleTestEmail)

		api.GET("/files/:id", srv.handleDownloadFile)
		api.DELETE("/files/:id", srv.handleDeleteFile)
	}

	return srv
}

// Router returns the underlying gin engine, for mounting into an
// http.Server.
func (s *Server) Router() *gin.Engine {
	return s.router
}
