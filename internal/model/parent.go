package model

import "time"

// Parent represents a learner's parent or guardian.
type Parent struct {
	ID                   int       `json:"id"`
	FirstName            string    `json:"first_name"`
	LastName             string    `json:"last_name"`
	IDNumber             string    `json:"id_number"`
	ContactNumbers       []string  `json:"contact_numbers"`
	Emails               []string  `json:"emails"`
	ReceiveNotifications bool      `json:"receive_notifications"`
	ReceiveEmails        bool      `json:"receive_emails"`
	RequireConsent       bool      `json:"require_consent"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// LearnerParent links one learner to one parent.
// ParentConsentRequired mirrors the parent's RequireConsent setting and is
// kept in sync whenever the parent is updated.
type LearnerParent struct {
	LearnerID             int  `json:"learner_id"`
	ParentID              int  `json:"parent_id"`
	ParentConsentRequired bool `json:"parent_consent_required"`
}

// CreateParentRequest is the payload for creating a new parent.
type CreateParentRequest struct {
	FirstName            string   `json:"first_name" binding:"required,min=1,max=100"`
	LastName             string   `json:"last_name" binding:"required,min=1,max=100"`
	IDNumber             string   `json:"id_number" binding:"required,min=4,max=20"`
	ContactNumbers       []string `json:"contact_numbers" binding:"omitempty"`
	Emails               []string `json:"emails" binding:"omitempty,dive,email"`
	ReceiveNotifications *bool    `json:"receive_notifications" binding:"omitempty"`
	ReceiveEmails        *bool    `json:"receive_emails" binding:"omitempty"`
	RequireConsent       *bool    `json:"require_consent" binding:"omitempty"`
	LearnerIDs           []int    `json:"learner_ids" binding:"omitempty"`
}

// UpdateParentRequest is the payload for the parent update orchestration.
// LearnerIDs is the full desired set of linked learners; the service diffs it
// against the stored links.
type UpdateParentRequest struct {
	FirstName            string   `json:"first_name" binding:"required,min=1,max=100"`
	LastName             string   `json:"last_name" binding:"required,min=1,max=100"`
	IDNumber             string   `json:"id_number" binding:"required,min=4,max=20"`
	ContactNumbers       []string `json:"contact_numbers" binding:"omitempty"`
	Emails               []string `json:"emails" binding:"omitempty,dive,email"`
	ReceiveNotifications *bool    `json:"receive_notifications" binding:"omitempty"`
	ReceiveEmails        *bool    `json:"receive_emails" binding:"omitempty"`
	RequireConsent       *bool    `json:"require_consent" binding:"omitempty"`
	LearnerIDs           []int    `json:"learner_ids" binding:"omitempty"`
}
