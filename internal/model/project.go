package model

import (
	"fmt"
	"time"
)

// ProjectStatus is the closed set of project lifecycle states.
type ProjectStatus string

const (
	ProjectStatusNotStarted ProjectStatus = "not_started"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusTerminated ProjectStatus = "terminated"
	ProjectStatusCancelled  ProjectStatus = "cancelled"
)

// ParseProjectStatus normalizes a project status string.
func ParseProjectStatus(s string) (ProjectStatus, error) {
	switch normalizeEnum(s) {
	case "not_started", "notstarted":
		return ProjectStatusNotStarted, nil
	case "in_progress", "inprogress":
		return ProjectStatusInProgress, nil
	case "completed", "complete":
		return ProjectStatusCompleted, nil
	case "terminated":
		return ProjectStatusTerminated, nil
	case "cancelled", "canceled":
		return ProjectStatusCancelled, nil
	}
	return "", fmt.Errorf("invalid project status %q", s)
}

// Project groups tasks under a single owner (a project manager).
type Project struct {
	ID          string        `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	Description string        `json:"description" db:"description"`
	Status      ProjectStatus `json:"status" db:"status"`
	StartDate   time.Time     `json:"start_date" db:"start_date"`
	EndDate     *time.Time    `json:"end_date,omitempty" db:"end_date"`

	// OwnerID references the managing project manager, if any.
	OwnerID *string `json:"owner_id,omitempty" db:"owner_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Owner and Tasks are populated by detail queries.
	Owner *ProjectManager `json:"owner,omitempty" db:"-"`
	Tasks []Task          `json:"tasks,omitempty" db:"-"`
}
