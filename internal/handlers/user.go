package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/intask-dev/intask/internal/apierrors"
	"github.com/intask-dev/intask/internal/dto"
	"github.com/intask-dev/intask/internal/middleware"
	"github.com/intask-dev/intask/internal/models"
	"github.com/intask-dev/intask/internal/policy"
	"github.com/intask-dev/intask/internal/repository"
	"gorm.io/gorm"
)

// UserHandler serves user administration endpoints.
type UserHandler struct {
	users repository.UserRepository
	teams repository.TeamRepository
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users repository.UserRepository, teams repository.TeamRepository) *UserHandler {
	return &UserHandler{
		users: users,
		teams: teams,
	}
}

// AssignTeam moves a user into a team (or out of one when teamId is null).
// Only the team's creating admin may assign into it.
func (h *UserHandler) AssignTeam(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, apierrors.CodeAuthFailed, "Authentication required")
		return
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	type AssignTeamRequest struct {
		TeamID *uint64 `json:"teamId"`
	}

	var req AssignTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "User not found")
		} else {
			apierrors.InternalError(c, err.Error())
		}
		return
	}

	var team *models.Team
	if req.TeamID != nil {
		team, err = h.teams.FindByID(*req.TeamID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierrors.NotFound(c, "Team not found")
			} else {
				apierrors.InternalError(c, err.Error())
			}
			return
		}
	}

	if d := policy.CanAssignTeam(caller, team); !d.Allowed {
		apierrors.ForbiddenWithRoles(c, d.Reason, d.RequiredRoles, caller.Role)
		return
	}

	if err := h.users.UpdateTeam(user.ID, req.TeamID); err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	updated, err := h.users.FindByIDWithTeam(user.ID)
	if err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"message": "Team assignment updated",
		"user":    dto.ToUserDTO(*updated),
	})
}
