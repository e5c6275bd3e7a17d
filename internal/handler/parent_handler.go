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

// ParentHandler handles parent management endpoints.
type ParentHandler struct {
	parentService *service.ParentService
}

// NewParentHandler creates a new ParentHandler.
func NewParentHandler(parentService *service.ParentService) *ParentHandler {
	return &ParentHandler{parentService: parentService}
}

// List godoc
// GET /api/v1/admin/parents?page=&per_page=
func (h *ParentHandler) List(c *gin.Context) {
	page, perPage := pageParams(c)

	parents, total, err := h.parentService.List(c.Request.Context(), perPage, (page-1)*perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"parents": parents}, buildPagination(page, perPage, total))
}

// Get godoc
// GET /api/v1/admin/parents/:id
// Returns the parent with the ids of their linked learners.
func (h *ParentHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	parent, learnerIDs, err := h.parentService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromErr(c, err)
		return
	}
	if learnerIDs == nil {
		learnerIDs = []int{}
	}
	response.Success(c, http.StatusOK, gin.H{"parent": parent, "learner_ids": learnerIDs})
}

// Create godoc
// POST /api/v1/admin/parents
func (h *ParentHandler) Create(c *gin.Context) {
	var req model.CreateParentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	parent, err := h.parentService.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateIDNumber) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"parent": parent})
}

// Update godoc
// PUT /api/v1/admin/parents/:id
// Applies the full update orchestration: scalars, link diff, consent
// propagation.
func (h *ParentHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.UpdateParentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	parent, err := h.parentService.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateIDNumber) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"parent": parent})
}

// Delete godoc
// DELETE /api/v1/admin/parents/:id
func (h *ParentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.parentService.Delete(c.Request.Context(), id); err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
