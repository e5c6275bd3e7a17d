package model

import "time"

// Learner represents an enrolled learner.
type Learner struct {
	ID        int       `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IDNumber  string    `json:"id_number"`
	ClassID   *int      `json:"class_id,omitempty"`
	GradeID   *int      `json:"grade_id,omitempty"`
	Emails    []string  `json:"emails"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LearnerWithParents carries a learner together with the linked parents.
type LearnerWithParents struct {
	Learner
	Parents []Parent `json:"parents"`
}

// CreateLearnerRequest is the payload for creating a new learner.
type CreateLearnerRequest struct {
	FirstName string   `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string   `json:"last_name" binding:"required,min=1,max=100"`
	IDNumber  string   `json:"id_number" binding:"required,min=4,max=20"`
	ClassID   *int     `json:"class_id" binding:"omitempty"`
	GradeID   *int     `json:"grade_id" binding:"omitempty"`
	Emails    []string `json:"emails" binding:"omitempty,dive,email"`
}

// UpdateLearnerRequest is the payload for updating an existing learner.
type UpdateLearnerRequest struct {
	FirstName string   `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string   `json:"last_name" binding:"required,min=1,max=100"`
	IDNumber  string   `json:"id_number" binding:"required,min=4,max=20"`
	ClassID   *int     `json:"class_id" binding:"omitempty"`
	GradeID   *int     `json:"grade_id" binding:"omitempty"`
	Emails    []string `json:"emails" binding:"omitempty,dive,email"`
}

// LearnerImportRow is one learner entry in a bulk import batch.
type LearnerImportRow struct {
	FirstName string            `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string            `json:"last_name" binding:"required,min=1,max=100"`
	IDNumber  string            `json:"id_number" binding:"required,min=4,max=20"`
	GradeName string            `json:"grade_name" binding:"omitempty,max=50"`
	ClassName string            `json:"class_name" binding:"omitempty,max=50"`
	Emails    []string          `json:"emails" binding:"omitempty,dive,email"`
	Parents   []ParentImportRow `json:"parents" binding:"omitempty,dive"`
}

// ParentImportRow is one parent entry attached to an imported learner.
type ParentImportRow struct {
	FirstName      string   `json:"first_name" binding:"required,min=1,max=100"`
	LastName       string   `json:"last_name" binding:"required,min=1,max=100"`
	IDNumber       string   `json:"id_number" binding:"required,min=4,max=20"`
	ContactNumbers []string `json:"contact_numbers" binding:"omitempty"`
	Emails         []string `json:"emails" binding:"omitempty,dive,email"`
}

// GradeReassignmentRow reassigns one learner's grade/class by id-number lookup.
type GradeReassignmentRow struct {
	IDNumber  string `json:"id_number" binding:"required,min=4,max=20"`
	GradeName string `json:"grade_name" binding:"omitempty,max=50"`
	ClassName string `json:"class_name" binding:"omitempty,max=50"`
}

// ImportSummary reports the outcome of a bulk import call.
type ImportSummary struct {
	Created int      `json:"created"`
	Linked  int      `json:"linked"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}
