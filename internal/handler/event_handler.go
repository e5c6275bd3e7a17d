package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/lumela/schoolsync-backend/internal/response"
	"github.com/lumela/schoolsync-backend/internal/service"
	"github.com/lumela/schoolsync-backend/internal/validator"
)

// EventHandler handles events, event teams and activity groups.
type EventHandler struct {
	eventService *service.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// ListEvents godoc
// GET /api/v1/admin/events
func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.eventService.ListEvents(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"events": events})
}

// GetEvent godoc
// GET /api/v1/admin/events/:id
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	event, err := h.eventService.GetEvent(c.Request.Context(), id)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"event": event})
}

// CreateEvent godoc
// POST /api/v1/admin/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req model.CreateEventRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), &req)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"event": event})
}

// UpdateEvent godoc
// PUT /api/v1/admin/events/:id
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.CreateEventRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	event, err := h.eventService.UpdateEvent(c.Request.Context(), id, &req)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"event": event})
}

// DeleteEvent godoc
// DELETE /api/v1/admin/events/:id
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.eventService.DeleteEvent(c.Request.Context(), id); err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// ListTeams godoc
// GET /api/v1/admin/events/:id/teams
func (h *EventHandler) ListTeams(c *gin.Context) {
	eventID, ok := pathID(c)
	if !ok {
		return
	}

	teams, err := h.eventService.ListTeams(c.Request.Context(), eventID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"teams": teams})
}

// CreateTeam godoc
// POST /api/v1/admin/events/:id/teams
func (h *EventHandler) CreateTeam(c *gin.Context) {
	eventID, ok := pathID(c)
	if !ok {
		return
	}

	var req model.CreateEventTeamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	team, err := h.eventService.CreateTeam(c.Request.Context(), eventID, &req)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"team": team})
}

// DeleteTeam godoc
// DELETE /api/v1/admin/teams/:id
func (h *EventHandler) DeleteTeam(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.eventService.DeleteTeam(c.Request.Context(), id); err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// AddTeamMember godoc
// POST /api/v1/admin/teams/:id/members
func (h *EventHandler) AddTeamMember(c *gin.Context) {
	teamID, ok := pathID(c)
	if !ok {
		return
	}

	var req model.MembershipRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.eventService.AddTeamMember(c.Request.Context(), teamID, req.LearnerID); err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"added": true})
}

// RemoveTeamMember godoc
// DELETE /api/v1/admin/teams/:id/members/:learnerId
func (h *EventHandler) RemoveTeamMember(c *gin.Context) {
	teamID, ok := pathID(c)
	if !ok {
		return
	}
	learnerID, ok := pathParamInt(c, "learnerId")
	if !ok {
		return
	}

	if err := h.eventService.RemoveTeamMember(c.Request.Context(), teamID, learnerID); err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": true})
}

// ListActivityGroups godoc
// GET /api/v1/admin/activity-groups
func (h *EventHandler) ListActivityGroups(c *gin.Context) {
	groups, err := h.eventService.ListActivityGroups(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"activity_groups": groups})
}

// CreateActivityGroup godoc
// POST /api/v1/admin/activity-groups
func (h *EventHandler) CreateActivityGroup(c *gin.Context) {
	var req model.CreateActivityGroupRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	group, err := h.eventService.CreateActivityGroup(c.Request.Context(), &req)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"activity_group": group})
}

// DeleteActivityGroup godoc
// DELETE /api/v1/admin/activity-groups/:id
func (h *EventHandler) DeleteActivityGroup(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.eventService.DeleteActivityGroup(c.Request.Context(), id); err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// AddActivityGroupMember godoc
// POST /api/v1/admin/activity-groups/:id/members
func (h *EventHandler) AddActivityGroupMember(c *gin.Context) {
	groupID, ok := pathID(c)
	if !ok {
		return
	}

	var req model.MembershipRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.eventService.AddActivityGroupMember(c.Request.Context(), groupID, req.LearnerID); err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"added": true})
}

// RemoveActivityGroupMember godoc
// DELETE /api/v1/admin/activity-groups/:id/members/:learnerId
func (h *EventHandler) RemoveActivityGroupMember(c *gin.Context) {
	groupID, ok := pathID(c)
	if !ok {
		return
	}
	learnerID, ok := pathParamInt(c, "learnerId")
	if !ok {
		return
	}

	if err := h.eventService.RemoveActivityGroupMember(c.Request.Context(), groupID, learnerID); err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": true})
}
