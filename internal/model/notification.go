package model

import "time"

// Notification is a persisted record of a reminder decision, distinct
// from the outbound email itself. Created only by the reminder engine;
// immutable once written except for the read flag.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id" db:"id"`

	// MemberID is the team member the reminder was addressed to.
	MemberID string `json:"member_id" db:"member_id"`

	// TaskID links this notification to the originating task.
	TaskID string `json:"task_id" db:"task_id"`

	// Message is the human-readable reminder text, identical to the
	// email body.
	Message string `json:"message" db:"message"`

	// Read indicates whether the member has seen this notification.
	Read bool `json:"read" db:"read"`

	// CreatedAt is when this notification was generated.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
