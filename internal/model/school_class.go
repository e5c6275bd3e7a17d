package model

import "time"

// SchoolGrade represents a grade (year) level.
type SchoolGrade struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SchoolClass represents a register class within a grade.
type SchoolClass struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	GradeID   int       `json:"grade_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateGradeRequest is the payload for creating or updating a grade.
type CreateGradeRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}

// CreateClassRequest is the payload for creating or updating a class.
type CreateClassRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=50"`
	GradeID int    `json:"grade_id" binding:"required"`
}
