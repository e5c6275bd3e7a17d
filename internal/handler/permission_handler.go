package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/lumela/schoolsync-backend/internal/repository"
	"github.com/lumela/schoolsync-backend/internal/response"
	"github.com/lumela/schoolsync-backend/internal/service"
	"github.com/lumela/schoolsync-backend/internal/validator"
)

// PermissionHandler handles parent consent endpoints.
type PermissionHandler struct {
	permissionService *service.PermissionService
}

// NewPermissionHandler creates a new PermissionHandler.
func NewPermissionHandler(permissionService *service.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

// ListByActivityGroup godoc
// GET /api/v1/admin/activity-groups/:id/permissions
func (h *PermissionHandler) ListByActivityGroup(c *gin.Context) {
	groupID, ok := pathID(c)
	if !ok {
		return
	}

	perms, err := h.permissionService.ListByActivityGroup(c.Request.Context(), groupID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"permissions": perms})
}

// ListByLearner godoc
// GET /api/v1/admin/learners/:id/permissions
func (h *PermissionHandler) ListByLearner(c *gin.Context) {
	learnerID, ok := pathID(c)
	if !ok {
		return
	}

	perms, err := h.permissionService.ListByLearner(c.Request.Context(), learnerID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"permissions": perms})
}

// Create godoc
// POST /api/v1/admin/permissions
func (h *PermissionHandler) Create(c *gin.Context) {
	var req model.CreatePermissionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	perm, err := h.permissionService.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrDirectionRequired) {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
				map[string]string{"direction": "A direction is required for transport consents."})
			return
		}
		if errors.Is(err, repository.ErrDuplicatePermission) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"permission": perm})
}

// Delete godoc
// DELETE /api/v1/admin/permissions/:id
func (h *PermissionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.permissionService.Delete(c.Request.Context(), id); err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
