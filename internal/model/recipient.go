package model

import "strconv"

// RecipientKind distinguishes which entity set a recipient was projected from.
// De-duplication is per kind+id: a learner and a parent may share a numeric id.
type RecipientKind string

const (
	RecipientLearner RecipientKind = "learner"
	RecipientParent  RecipientKind = "parent"
	RecipientTeacher RecipientKind = "teacher"
)

// Recipient is a projected, de-duplicated notification target. A recipient
// with no email addresses is still included; dispatch filters separately.
// The opt-in flags are metadata for the caller, not a filter applied here.
type Recipient struct {
	Kind                 RecipientKind `json:"kind"`
	ID                   int           `json:"id"`
	FirstName            string        `json:"first_name"`
	LastName             string        `json:"last_name"`
	Emails               []string      `json:"emails"`
	ReceiveNotifications bool          `json:"receive_notifications"`
	ReceiveEmails        bool          `json:"receive_emails"`
}

// Key identifies a recipient across relationship paths.
func (r Recipient) Key() string {
	return string(r.Kind) + ":" + strconv.Itoa(r.ID)
}
