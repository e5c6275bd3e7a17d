package model

import "time"

// Event represents a school event (tour, match, outing).
type Event struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	StartsAt  time.Time  `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// EventTeam is a team participating in an event.
type EventTeam struct {
	ID        int       `json:"id"`
	EventID   int       `json:"event_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ActivityGroup is a recurring extracurricular group. Transport consents
// reference the activity group a learner participates in.
type ActivityGroup struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	EventID   *int      `json:"event_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateEventRequest is the payload for creating or updating an event.
type CreateEventRequest struct {
	Name     string     `json:"name" binding:"required,min=1,max=150"`
	StartsAt time.Time  `json:"starts_at" binding:"required"`
	EndsAt   *time.Time `json:"ends_at" binding:"omitempty,gtfield=StartsAt"`
}

// CreateEventTeamRequest is the payload for creating an event team.
type CreateEventTeamRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreateActivityGroupRequest is the payload for creating an activity group.
type CreateActivityGroupRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	EventID *int   `json:"event_id" binding:"omitempty"`
}

// MembershipRequest adds or removes a learner from a team or activity group.
type MembershipRequest struct {
	LearnerID int `json:"learner_id" binding:"required"`
}
