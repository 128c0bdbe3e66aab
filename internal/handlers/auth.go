package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sundaypicks/sunday-picks-api/internal/middleware"
	"github.com/sundaypicks/sunday-picks-api/internal/services"
	"github.com/sundaypicks/sunday-picks-api/pkg/response"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	CurrentPassword         string `json:"current_password"`
	NewPassword             string `json:"new_password"`
	NewPasswordConfirmation string `json:"new_password_confirmation"`
}

// Login handles user login
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		response.BadRequest(c, "Email and password are required")
		return
	}

	session, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Unauthorized(c, "Invalid credentials")
			return
		}
		response.ServerError(c, "Unable to log in")
		return
	}

	response.OK(c, session)
}

// Refresh rotates a refresh token and returns a new session
// POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		response.BadRequest(c, "refresh_token is required")
		return
	}

	session, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrRefreshTokenNotFound) {
			response.Unauthorized(c, "Invalid or expired refresh token")
			return
		}
		response.ServerError(c, "Unable to refresh session")
		return
	}

	response.OK(c, session)
}

// Logout revokes every active refresh token for the authenticated user
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		response.Unauthorized(c, "Invalid access token payload")
		return
	}

	if err := h.authService.Logout(userID); err != nil {
		response.ServerError(c, "Unable to log out")
		return
	}

	response.Message(c, "Logout successful")
}

// ChangePassword replaces the user's password and kills all sessions
// POST /auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		response.Unauthorized(c, "Invalid access token payload")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.CurrentPassword == "" || req.NewPassword == "" || req.NewPasswordConfirmation == "" {
		response.BadRequest(c, "current_password, new_password and new_password_confirmation are required")
		return
	}

	if req.NewPassword != req.NewPasswordConfirmation {
		response.BadRequest(c, "new_password and new_password_confirmation must match")
		return
	}

	if len(req.NewPassword) < 8 {
		response.BadRequest(c, "new_password must be at least 8 characters")
		return
	}

	err := h.authService.ChangePassword(userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			response.NotFound(c, "User not found")
		case errors.Is(err, services.ErrWrongPassword):
			response.Unauthorized(c, "Current password is incorrect")
		case errors.Is(err, services.ErrSamePassword):
			response.BadRequest(c, "New password must be different from current password")
		default:
			response.Error(c, http.StatusInternalServerError, "Unable to change password")
		}
		return
	}

	response.Message(c, "Password updated successfully")
}
