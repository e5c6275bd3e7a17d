package model

import (
	"time"

	"github.com/google/uuid"
)

// NoticeParent is the contact slice of a parent embedded in an absence notice.
type NoticeParent struct {
	ParentID      int      `json:"parent_id"`
	Name          string   `json:"name"`
	Emails        []string `json:"emails"`
	ReceiveEmails bool     `json:"receive_emails"`
}

// AbsenceNotice is the outbox payload produced when attendance is captured
// with a non-present learner. The worker consumes it and notifies the
// learner's parents; delivery is best-effort and never affects the capture
// result.
type AbsenceNotice struct {
	GroupID     uuid.UUID        `json:"group_id"`
	GroupName   string           `json:"group_name"`
	Date        time.Time        `json:"date"`
	LearnerID   int              `json:"learner_id"`
	LearnerName string           `json:"learner_name"`
	Status      AttendanceStatus `json:"status"`
	Notes       string           `json:"notes,omitempty"`
	Parents     []NoticeParent   `json:"parents"`
	// Attempts counts deliveries tried so far; the worker requeues failed
	// notices until the configured cap.
	Attempts int `json:"attempts"`
}
