package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khsu/projectms/internal/model"
	"github.com/khsu/projectms/internal/reminder"
)

// handleCheckReminders runs one reminder cycle on demand and returns
// its outcome counts.
func (s *Server) handleCheckReminders(c *gin.Context) {
	cycle, err := s.engine.ScanAndNotify(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":           "reminder check complete",
		"scanned":           len(cycle.Results),
		"sent":              cycle.Count(reminder.OutcomeSent),
		"skipped_no_email":  cycle.Count(reminder.OutcomeSkippedNoEmail),
		"skipped_duplicate": cycle.Count(reminder.OutcomeSkippedDuplicate),
		"failed":            cycle.Count(reminder.OutcomeFailed),
	})
}

// handleRemindTask triggers a reminder for a single task.
func (s *Server) handleRemindTask(c *gin.Context) {
	outcome, err := s.engine.SendTaskReminder(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "task reminder processed",
		"outcome": outcome,
	})
}

// testEmailRequest is the payload for the test-email endpoint.
type testEmailRequest struct {
	Email string `json:"email"`
}

// handleTestEmail sends a test message to confirm the SMTP
// configuration works.
func (s *Server) handleTestEmail(c *gin.Context) {
	var req testEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.Email == "" {
		badRequest(c, "email is required")
		return
	}

	err := s.notifier.Send(c.Request.Context(), req.Email,
		"Test Email",
		"This is a test email confirming the mail service is working.",
	)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "test email sent"})
}

// handleMemberNotifications lists a member's notifications, newest
// first. ?unread=true limits to unread ones.
func (s *Server) handleMemberNotifications(c *gin.Context) {
	memberID := c.Param("id")

	if _, err := s.store.GetMemberByID(c.Request.Context(), memberID); err != nil {
		s.fail(c, err)
		return
	}

	unreadOnly := c.Query("unread") == "true"
	notifications, err := s.store.GetNotificationsForMember(
		c.Request.Context(), memberID, unreadOnly,
	)
	if err != nil {
		s.fail(c, err)
		return
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// handleMarkNotificationRead toggles a notification's read flag on.
func (s *Server) handleMarkNotificationRead(c *gin.Context) {
	if err := s.store.MarkNotificationRead(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification marked read"})
}
