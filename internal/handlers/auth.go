package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/intask-dev/intask/internal/apierrors"
	"github.com/intask-dev/intask/internal/dto"
	"github.com/intask-dev/intask/internal/middleware"
	"github.com/intask-dev/intask/internal/models"
	"github.com/intask-dev/intask/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new user and returns a session token.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Name     string      `json:"name"`
		Email    string      `json:"email"`
		Password string      `json:"password"`
		Role     models.Role `json:"role"`
		TeamID   *uint64     `json:"teamId"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, signed, err := h.authService.Register(services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		TeamID:   req.TeamID,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	// Reload with the team relation so the response carries the team name.
	user, err = h.authService.GetUser(user.ID)
	if err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"token":   signed,
		"user":    dto.ToUserDTO(*user),
	})
}

// Login verifies credentials and returns a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Email and password are required")
		return
	}

	user, signed, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   signed,
		"user":    dto.ToUserDTO(*user),
	})
}

// Verify returns the identity behind the presented token.
func (h *AuthHandler) Verify(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, apierrors.CodeAuthFailed, "Authentication required")
		return
	}

	user, err := h.authService.GetUser(caller.ID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    dto.ToUserDTO(*user),
	})
}

// ChangePassword rotates the caller's password, invalidating older tokens.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, apierrors.CodeAuthFailed, "Authentication required")
		return
	}

	type ChangePasswordRequest struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Current and new password are required")
		return
	}

	if err := h.authService.ChangePassword(caller.ID, req.CurrentPassword, req.NewPassword); err != nil {
		respondAuthError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Password updated successfully")
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrTeamNotFound):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.BadRequest(c, "Invalid credentials")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNoTeamAssigned):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, err.Error())
	}
}
