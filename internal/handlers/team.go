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

// TeamHandler serves the team CRUD endpoints.
type TeamHandler struct {
	teams repository.TeamRepository
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teams repository.TeamRepository) *TeamHandler {
	return &TeamHandler{teams: teams}
}

// List returns the teams visible to the caller with members and creator.
func (h *TeamHandler) List(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, apierrors.CodeAuthFailed, "Authentication required")
		return
	}

	if d := policy.CanListTeams(caller); !d.Allowed {
		apierrors.ForbiddenWithRoles(c, d.Reason, d.RequiredRoles, caller.Role)
		return
	}

	teams, err := h.teams.List(policy.TeamScope(caller))
	if err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	respondData(c, http.StatusOK, dto.ToTeamDTOs(teams))
}

// Create creates a team owned by the calling admin.
func (h *TeamHandler) Create(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, apierrors.CodeAuthFailed, "Authentication required")
		return
	}

	if d := policy.CanCreateTeam(caller); !d.Allowed {
		apierrors.ForbiddenWithRoles(c, d.Reason, d.RequiredRoles, caller.Role)
		return
	}

	type CreateTeamRequest struct {
		Name string `json:"name" binding:"required,min=3,max=50"`
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Team name must be between 3 and 50 characters")
		return
	}

	team := &models.Team{
		Name:      req.Name,
		CreatedBy: &caller.ID,
	}

	if err := h.teams.Create(team); err != nil {
		if repository.IsUniqueViolation(err) {
			apierrors.Conflict(c, "Team name already exists")
			return
		}
		apierrors.InternalError(c, err.Error())
		return
	}

	respondData(c, http.StatusCreated, dto.ToTeamDTO(*team))
}

// Update renames a team; only its creator may do so.
func (h *TeamHandler) Update(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, apierrors.CodeAuthFailed, "Authentication required")
		return
	}

	team, done := h.resolveTeam(c)
	if done {
		return
	}

	if d := policy.CanMutateTeam(caller, team); !d.Allowed {
		apierrors.ForbiddenWithRoles(c, d.Reason, d.RequiredRoles, caller.Role)
		return
	}

	type UpdateTeamRequest struct {
		Name string `json:"name" binding:"required,min=3,max=50"`
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Team name must be between 3 and 50 characters")
		return
	}

	team.Name = req.Name
	if err := h.teams.Update(team); err != nil {
		if repository.IsUniqueViolation(err) {
			apierrors.Conflict(c, "Team name already exists")
			return
		}
		apierrors.InternalError(c, err.Error())
		return
	}

	respondData(c, http.StatusOK, dto.ToTeamDTO(*team))
}

// Delete tombstones a team. Repeating the call after a successful delete
// yields 404, not a second success.
func (h *TeamHandler) Delete(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, apierrors.CodeAuthFailed, "Authentication required")
		return
	}

	team, done := h.resolveTeam(c)
	if done {
		return
	}

	if d := policy.CanMutateTeam(caller, team); !d.Allowed {
		apierrors.ForbiddenWithRoles(c, d.Reason, d.RequiredRoles, caller.Role)
		return
	}

	if err := h.teams.Delete(team.ID); err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	respondMessage(c, http.StatusOK, "Team deleted successfully")
}

func (h *TeamHandler) resolveTeam(c *gin.Context) (*models.Team, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid team ID")
		return nil, true
	}

	team, err := h.teams.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Team not found")
		} else {
			apierrors.InternalError(c, err.Error())
		}
		return nil, true
	}

	return team, false
}
