package model

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceType selects which membership collection a checklist is built from.
type AttendanceType string

const (
	AttendanceTypeClass              AttendanceType = "class"
	AttendanceTypeActivityGroup      AttendanceType = "activity_group"
	AttendanceTypeEventTeam          AttendanceType = "event_team"
	AttendanceTypeEventTransportTo   AttendanceType = "event_transport_to"
	AttendanceTypeEventTransportFrom AttendanceType = "event_transport_from"
)

// Valid returns true when the attendance type is one of the five supported
// membership sources. Callers that receive false can still proceed: an
// unrecognized type yields an empty checklist, not an error.
func (t AttendanceType) Valid() bool {
	switch t {
	case AttendanceTypeClass, AttendanceTypeActivityGroup, AttendanceTypeEventTeam,
		AttendanceTypeEventTransportTo, AttendanceTypeEventTransportFrom:
		return true
	default:
		return false
	}
}

// AttendanceStatus is the recorded status of one learner in one session.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusLate    AttendanceStatus = "late"
	AttendanceStatusExcused AttendanceStatus = "excused"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate, AttendanceStatusExcused:
		return true
	default:
		return false
	}
}

// AttendanceGroup is one dated attendance-taking session scoped to a class,
// activity group, event team, or transport list.
type AttendanceGroup struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Date        time.Time      `json:"date"`
	Type        AttendanceType `json:"type"`
	ReferenceID int            `json:"reference_id"`
	CreatedAt   time.Time      `json:"created_at"`
}

// AttendanceRecord is one learner's row within an attendance group.
type AttendanceRecord struct {
	ID        int              `json:"id"`
	GroupID   uuid.UUID        `json:"group_id"`
	LearnerID int              `json:"learner_id"`
	Status    AttendanceStatus `json:"status"`
	Notes     string           `json:"notes"`
	CreatedAt time.Time        `json:"created_at"`
}

// AttendanceRecordDetail extends a record with the learner's name for
// listings and exports.
type AttendanceRecordDetail struct {
	AttendanceRecord
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// RosterMember is a flat membership row used to prefill checklists.
type RosterMember struct {
	LearnerID int    `json:"learner_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ChecklistEntry is one prefilled row of an attendance checklist.
type ChecklistEntry struct {
	LearnerID int              `json:"learner_id"`
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	Status    AttendanceStatus `json:"status"`
	Notes     string           `json:"notes"`
}

// CaptureEntry is one submitted attendance result.
type CaptureEntry struct {
	LearnerID int              `json:"learner_id" binding:"required"`
	Status    AttendanceStatus `json:"status" binding:"required,attendance_status"`
	Notes     string           `json:"notes" binding:"omitempty,max=500"`
}

// CaptureAttendanceRequest is the payload for persisting a taken attendance
// session.
type CaptureAttendanceRequest struct {
	Name        string         `json:"name" binding:"required,min=1,max=150"`
	Date        time.Time      `json:"date" binding:"required"`
	Type        AttendanceType `json:"type" binding:"required,attendance_type"`
	ReferenceID int            `json:"reference_id" binding:"required"`
	Entries     []CaptureEntry `json:"entries" binding:"required,min=1,dive"`
}
