package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumela/schoolsync-backend/internal/middleware"
	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/lumela/schoolsync-backend/internal/response"
	"github.com/lumela/schoolsync-backend/internal/service"
	"github.com/lumela/schoolsync-backend/internal/validator"
)

// AuthHandler handles staff authentication endpoints.
type AuthHandler struct {
	staffService *service.StaffService
	authService  *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(staffService *service.StaffService, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{staffService: staffService, authService: authService}
}

// Login godoc
// POST /api/v1/auth/login
// Authenticates a staff account and issues a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.StaffLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.staffService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Logout godoc
// POST /api/v1/admin/auth/logout
// Invalidates the active session.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims.StaffID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"logged_out": true})
}

// Me godoc
// GET /api/v1/admin/auth/me
// Returns the authenticated staff account.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	staff, err := h.staffService.GetByID(c.Request.Context(), claims.StaffID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"staff": staff, "permissions": claims.Permissions})
}
