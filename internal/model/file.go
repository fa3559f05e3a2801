package model

import "time"

// File is an attachment on a task. Content is stored alongside the
// metadata and omitted from JSON; list queries load metadata only.
type File struct {
	ID          string `json:"id" db:"id"`
	TaskID      string `json:"task_id" db:"task_id"`
	Name        string `json:"name" db:"name"`
	ContentType string `json:"content_type" db:"content_type"`
	Size        int64  `json:"size" db:"size"`
	Content     []byte `json:"-" db:"content"`

	// UploadedByID references the uploading member, if known.
	UploadedByID *string `json:"uploaded_by_id,omitempty" db:"uploaded_by_id"`

	UploadedAt time.Time `json:"uploaded_at" db:"uploaded_at"`
}
