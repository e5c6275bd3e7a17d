package model

import "time"

// Teacher represents a teaching staff member.
type Teacher struct {
	ID        int       `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Emails    []string  `json:"emails"`
	ClassID   *int      `json:"class_id,omitempty"`
	GradeID   *int      `json:"grade_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateTeacherRequest is the payload for creating or updating a teacher.
type CreateTeacherRequest struct {
	FirstName string   `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string   `json:"last_name" binding:"required,min=1,max=100"`
	Emails    []string `json:"emails" binding:"omitempty,dive,email"`
	ClassID   *int     `json:"class_id" binding:"omitempty"`
	GradeID   *int     `json:"grade_id" binding:"omitempty"`
}
