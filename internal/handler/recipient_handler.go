package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumela/schoolsync-backend/internal/response"
	"github.com/lumela/schoolsync-backend/internal/service"
)

// RecipientHandler exposes the notification recipient-list builders.
type RecipientHandler struct {
	recipientService *service.RecipientService
}

// NewRecipientHandler creates a new RecipientHandler.
func NewRecipientHandler(recipientService *service.RecipientService) *RecipientHandler {
	return &RecipientHandler{recipientService: recipientService}
}

// ClassList godoc
// GET /api/v1/admin/recipients/class/:id
// Learners of the class, their parents, and the class teachers.
func (h *RecipientHandler) ClassList(c *gin.Context) {
	classID, ok := pathID(c)
	if !ok {
		return
	}

	recipients, err := h.recipientService.ClassNotificationList(c.Request.Context(), classID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"recipients": recipients})
}

// TeachersList godoc
// GET /api/v1/admin/recipients/teachers
func (h *RecipientHandler) TeachersList(c *gin.Context) {
	recipients, err := h.recipientService.TeachersNotificationList(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"recipients": recipients})
}

// ParentList godoc
// GET /api/v1/admin/recipients/parent/:id
// The parent and their linked learners.
func (h *RecipientHandler) ParentList(c *gin.Context) {
	parentID, ok := pathID(c)
	if !ok {
		return
	}

	recipients, err := h.recipientService.ParentNotificationList(c.Request.Context(), parentID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"recipients": recipients})
}

// GlobalList godoc
// GET /api/v1/admin/recipients/global
// Every parent, teacher and learner, de-duplicated.
func (h *RecipientHandler) GlobalList(c *gin.Context) {
	recipients, err := h.recipientService.GlobalMailRecipientList(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"recipients": recipients})
}
