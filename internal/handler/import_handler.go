package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/lumela/schoolsync-backend/internal/response"
	"github.com/lumela/schoolsync-backend/internal/service"
	"github.com/lumela/schoolsync-backend/internal/validator"
)

// ImportHandler handles bulk learner import endpoints.
type ImportHandler struct {
	importService *service.LearnerImportService
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService *service.LearnerImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// ImportLearnersRequest is the payload for a bulk learner import.
type ImportLearnersRequest struct {
	Rows []model.LearnerImportRow `json:"rows" binding:"required,min=1,dive"`
}

// ImportLearners godoc
// POST /api/v1/admin/imports/learners
// Imports a batch of learners with their parents. The batch is atomic: any
// bad row rolls back the whole import and the row errors are returned.
func (h *ImportHandler) ImportLearners(c *gin.Context) {
	var req ImportLearnersRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	summary, err := h.importService.ImportLearnersAndParents(c.Request.Context(), req.Rows)
	if err != nil {
		if errors.Is(err, service.ErrImportAborted) {
			response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrImportFailed, rowErrorFields(summary))
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrImportFailed)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"summary": summary})
}

// rowErrorFields maps the summary's row errors into the envelope's field map.
func rowErrorFields(summary *model.ImportSummary) map[string]string {
	fields := make(map[string]string, len(summary.Errors))
	for i, msg := range summary.Errors {
		fields[fmt.Sprintf("row_error_%d", i+1)] = msg
	}
	return fields
}

// ReassignGradesRequest is the payload for a bulk grade reassignment.
type ReassignGradesRequest struct {
	Rows []model.GradeReassignmentRow `json:"rows" binding:"required,min=1,dive"`
}

// ReassignGrades godoc
// POST /api/v1/admin/imports/grade-reassignments
// Moves learners, matched by id-number, to new grades and classes. Atomic.
func (h *ImportHandler) ReassignGrades(c *gin.Context) {
	var req ReassignGradesRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	summary, err := h.importService.ReassignGradesByID(c.Request.Context(), req.Rows)
	if err != nil {
		if errors.Is(err, service.ErrImportAborted) {
			response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrImportFailed, rowErrorFields(summary))
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrImportFailed)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"summary": summary})
}
