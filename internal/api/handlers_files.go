package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khsu/projectms/internal/model"
)

// maxUploadSize caps attachment uploads at 10MB.
const maxUploadSize = 10 << 20

// handleUploadFile attaches a multipart file to a task. An optional
// uploaded_by form field records the uploading member.
func (s *Server) handleUploadFile(c *gin.Context) {
	taskID := c.Param("id")

	ctx := c.Request.Context()
	if _, err := s.store.GetTaskByID(ctx, taskID); err != nil {
		s.fail(c, err)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file form field is required")
		return
	}
	if header.Size > maxUploadSize {
		badRequest(c, "file exceeds the 10MB upload limit")
		return
	}

	f, err := header.Open()
	if err != nil {
		s.fail(c, fmt.Errorf("opening upload: %w", err))
		return
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxUploadSize))
	if err != nil {
		s.fail(c, fmt.Errorf("reading upload: %w", err))
		return
	}

	var uploadedBy *string
	if v := c.PostForm("uploaded_by"); v != "" {
		if _, err := s.store.GetMemberByID(ctx, v); err != nil {
			badRequest(c, "uploading member does not exist")
			return
		}
		uploadedBy = &v
	}

	saved, err := s.store.SaveFile(ctx, model.File{
		TaskID:       taskID,
		Name:         header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Content:      content,
		UploadedByID: uploadedBy,
	})
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// handleListTaskFiles lists a task's attachments (metadata only).
func (s *Server) handleListTaskFiles(c *gin.Context) {
	taskID := c.Param("id")

	ctx := c.Request.Context()
	if _, err := s.store.GetTaskByID(ctx, taskID); err != nil {
		s.fail(c, err)
		return
	}

	files, err := s.store.GetFilesForTask(ctx, taskID)
	if err != nil {
		s.fail(c, err)
		return
	}
	if files == nil {
		files = []model.File{}
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

// handleDownloadFile streams an attachment back as a download.
func (s *Server) handleDownloadFile(c *gin.Context) {
	f, err := s.store.GetFileByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Name))
	c.Data(http.StatusOK, f.ContentType, f.Content)
}

// handleDeleteFile removes an attachment.
func (s *Server) handleDeleteFile(c *gin.Context) {
	if err := s.store.DeleteFile(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "file deleted"})
}
