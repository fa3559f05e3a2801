package model

import "time"

// TeamMember is a person tasks can be assigned to. Email is nullable:
// a member without an address is silently skipped by the reminder
// pipeline.
type TeamMember struct {
	ID       string  `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Position string  `json:"position" db:"position"`
	Email    *string `json:"email,omitempty" db:"email"`
	Phone    string  `json:"phone" db:"phone"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ProjectManager owns projects. Referenced by Project.OwnerID.
type ProjectManager struct {
	ID    string `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
	Phone string `json:"phone" db:"phone"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
