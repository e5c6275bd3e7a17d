package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/lumela/schoolsync-backend/internal/response"
	"github.com/lumela/schoolsync-backend/internal/service"
	"github.com/lumela/schoolsync-backend/internal/validator"
)

// AttendanceHandler handles checklist, capture and export endpoints.
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// Checklist godoc
// GET /api/v1/admin/attendance/checklist?type=&reference_id=
// Prefills a checklist from the membership source selected by type. An
// unknown type is answered with an empty checklist and a message, not an
// error.
func (h *AttendanceHandler) Checklist(c *gin.Context) {
	typ := model.AttendanceType(c.Query("type"))
	referenceID, err := strconv.Atoi(c.Query("reference_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	entries, message, err := h.attendanceService.BuildChecklist(c.Request.Context(), typ, referenceID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	payload := gin.H{"entries": entries}
	if message != "" {
		payload["message"] = message
	}
	response.Success(c, http.StatusOK, payload)
}

// Capture godoc
// POST /api/v1/admin/attendance
// Persists a taken session and queues absence notices.
func (h *AttendanceHandler) Capture(c *gin.Context) {
	var req model.CaptureAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	group, err := h.attendanceService.CaptureAttendance(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUnknownAttendanceType) || errors.Is(err, service.ErrInvalidStatus) {
			response.Fail(c, http.StatusBadRequest, response.ErrValidation)
			return
		}
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"group": group})
}

// Get godoc
// GET /api/v1/admin/attendance/:id
// Returns a captured session with its records.
func (h *AttendanceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	group, records, err := h.attendanceService.Group(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if records == nil {
		records = []model.AttendanceRecordDetail{}
	}
	response.Success(c, http.StatusOK, gin.H{"group": group, "records": records})
}

// Export godoc
// POST /api/v1/admin/attendance/:id/export
// Writes a spreadsheet for the session and returns the download path.
func (h *AttendanceHandler) Export(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	file, err := h.attendanceService.ExportGroup(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrExportFailed)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"file": file, "url": "/exports/" + file})
}
