package model

import "time"

// ConsentType classifies what a parent permission authorizes.
type ConsentType string

const (
	ConsentAttendance ConsentType = "attendance"
	ConsentTransport  ConsentType = "transport"
)

// Valid returns true when the consent type is a supported value.
func (t ConsentType) Valid() bool {
	switch t {
	case ConsentAttendance, ConsentTransport:
		return true
	default:
		return false
	}
}

// ConsentDirection scopes a transport consent to a leg of the trip.
type ConsentDirection string

const (
	DirectionTo        ConsentDirection = "to"
	DirectionFrom      ConsentDirection = "from"
	DirectionToAndFrom ConsentDirection = "to_and_from"
)

// Valid returns true when the direction is a supported value.
func (d ConsentDirection) Valid() bool {
	switch d {
	case DirectionTo, DirectionFrom, DirectionToAndFrom:
		return true
	default:
		return false
	}
}

// Covers reports whether this consent direction includes the requested leg.
func (d ConsentDirection) Covers(leg ConsentDirection) bool {
	if d == DirectionToAndFrom {
		return true
	}
	return d == leg
}

// ParentPermission records a parent's consent for a learner's participation
// or transport within an activity group.
type ParentPermission struct {
	ID              int              `json:"id"`
	ParentID        int              `json:"parent_id"`
	LearnerID       int              `json:"learner_id"`
	ActivityGroupID int              `json:"activity_group_id"`
	Type            ConsentType      `json:"type"`
	Direction       ConsentDirection `json:"direction,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// CreatePermissionRequest is the payload for recording a parent permission.
type CreatePermissionRequest struct {
	ParentID        int              `json:"parent_id" binding:"required"`
	LearnerID       int              `json:"learner_id" binding:"required"`
	ActivityGroupID int              `json:"activity_group_id" binding:"required"`
	Type            ConsentType      `json:"type" binding:"required,consent_type"`
	Direction       ConsentDirection `json:"direction" binding:"omitempty,consent_direction"`
}
