package service

import (
	"context"

	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/lumela/schoolsync-backend/internal/repository"
)

// EventService handles events, event teams and activity groups.
type EventService struct {
	eventRepo *repository.EventRepository
}

// NewEventService creates a new EventService.
func NewEventService(eventRepo *repository.EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

// GetEvent retrieves an event.
func (s *EventService) GetEvent(ctx context.Context, id int) (*model.Event, error) {
	return s.eventRepo.GetEvent(ctx, id)
}

// ListEvents retrieves all events.
func (s *EventService) ListEvents(ctx context.Context) ([]model.Event, error) {
	events, err := s.eventRepo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []model.Event{}
	}
	return events, nil
}

// CreateEvent creates an event.
func (s *EventService) CreateEvent(ctx context.Context, req *model.CreateEventRequest) (*model.Event, error) {
	event := &model.Event{Name: req.Name, StartsAt: req.StartsAt, EndsAt: req.EndsAt}
	if err := s.eventRepo.CreateEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// UpdateEvent modifies an event.
func (s *EventService) UpdateEvent(ctx context.Context, id int, req *model.CreateEventRequest) (*model.Event, error) {
	event, err := s.eventRepo.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	event.Name = req.Name
	event.StartsAt = req.StartsAt
	event.EndsAt = req.EndsAt
	if err := s.eventRepo.UpdateEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// DeleteEvent removes an event.
func (s *EventService) DeleteEvent(ctx context.Context, id int) error {
	if _, err := s.eventRepo.GetEvent(ctx, id); err != nil {
		return err
	}
	return s.eventRepo.DeleteEvent(ctx, id)
}

// ListTeams retrieves the teams of an event.
func (s *EventService) ListTeams(ctx context.Context, eventID int) ([]model.EventTeam, error) {
	teams, err := s.eventRepo.ListTeams(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if teams == nil {
		teams = []model.EventTeam{}
	}
	return teams, nil
}

// CreateTeam creates a team under an event.
func (s *EventService) CreateTeam(ctx context.Context, eventID int, req *model.CreateEventTeamRequest) (*model.EventTeam, error) {
	if _, err := s.eventRepo.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	team := &model.EventTeam{EventID: eventID, Name: req.Name}
	if err := s.eventRepo.CreateTeam(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// DeleteTeam removes a team.
func (s *EventService) DeleteTeam(ctx context.Context, id int) error {
	return s.eventRepo.DeleteTeam(ctx, id)
}

// AddTeamMember links a learner to a team.
func (s *EventService) AddTeamMember(ctx context.Context, teamID, learnerID int) error {
	return s.eventRepo.AddTeamMember(ctx, teamID, learnerID)
}

// RemoveTeamMember unlinks a learner from a team.
func (s *EventService) RemoveTeamMember(ctx context.Context, teamID, learnerID int) error {
	return s.eventRepo.RemoveTeamMember(ctx, teamID, learnerID)
}

// ListActivityGroups retrieves all activity groups.
func (s *EventService) ListActivityGroups(ctx context.Context) ([]model.ActivityGroup, error) {
	groups, err := s.eventRepo.ListActivityGroups(ctx)
	if err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []model.ActivityGroup{}
	}
	return groups, nil
}

// CreateActivityGroup creates an activity group.
func (s *EventService) CreateActivityGroup(ctx context.Context, req *model.CreateActivityGroupRequest) (*model.ActivityGroup, error) {
	group := &model.ActivityGroup{Name: req.Name, EventID: req.EventID}
	if err := s.eventRepo.CreateActivityGroup(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// DeleteActivityGroup removes an activity group.
func (s *EventService) DeleteActivityGroup(ctx context.Context, id int) error {
	return s.eventRepo.DeleteActivityGroup(ctx, id)
}

// AddActivityGroupMember links a learner to an activity group.
func (s *EventService) AddActivityGroupMember(ctx context.Context, groupID, learnerID int) error {
	return s.eventRepo.AddActivityGroupMember(ctx, groupID, learnerID)
}

// RemoveActivityGroupMember unlinks a learner from an activity group.
func (s *EventService) RemoveActivityGroupMember(ctx context.Context, groupID, learnerID int) error {
	return s.eventRepo.RemoveActivityGroupMember(ctx, groupID, learnerID)
}
