package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/lumela/schoolsync-backend/internal/repository"
	"github.com/lumela/schoolsync-backend/internal/response"
	"github.com/lumela/schoolsync-backend/internal/service"
	"github.com/lumela/schoolsync-backend/internal/validator"
)

// LearnerHandler handles learner management endpoints.
type LearnerHandler struct {
	learnerService *service.LearnerService
}

// NewLearnerHandler creates a new LearnerHandler.
func NewLearnerHandler(learnerService *service.LearnerService) *LearnerHandler {
	return &LearnerHandler{learnerService: learnerService}
}

// List godoc
// GET /api/v1/admin/learners?page=&per_page=&class_id=
func (h *LearnerHandler) List(c *gin.Context) {
	page, perPage := pageParams(c)

	var classID *int
	if raw := c.Query("class_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		classID = &id
	}

	learners, total, err := h.learnerService.List(c.Request.Context(), classID, perPage, (page-1)*perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"learners": learners}, buildPagination(page, perPage, total))
}

// Get godoc
// GET /api/v1/admin/learners/:id
// Returns the learner with their linked parents.
func (h *LearnerHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	learner, err := h.learnerService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"learner": learner})
}

// Create godoc
// POST /api/v1/admin/learners
func (h *LearnerHandler) Create(c *gin.Context) {
	var req model.CreateLearnerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	learner, err := h.learnerService.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateIDNumber) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"learner": learner})
}

// Update godoc
// PUT /api/v1/admin/learners/:id
func (h *LearnerHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.UpdateLearnerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	learner, err := h.learnerService.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateIDNumber) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"learner": learner})
}

// Delete godoc
// DELETE /api/v1/admin/learners/:id
func (h *LearnerHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.learnerService.Delete(c.Request.Context(), id); err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
