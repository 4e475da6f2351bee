package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/intask-dev/intask/internal/apierrors"
	"github.com/intask-dev/intask/internal/repository"
	"gorm.io/gorm"
)

// AdminHandler serves the tombstone administration endpoints. Default
// queries exclude tombstoned rows everywhere else; this is the one explicit
// path that can see and undo them.
type AdminHandler struct {
	teams repository.TeamRepository
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(teams repository.TeamRepository) *AdminHandler {
	return &AdminHandler{teams: teams}
}

// ListDeletedTeams returns tombstoned teams.
func (h *AdminHandler) ListDeletedTeams(c *gin.Context) {
	teams, err := h.teams.ListDeleted()
	if err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	respondData(c, http.StatusOK, teams)
}

// RestoreTeam clears the tombstone on a deleted team.
func (h *AdminHandler) RestoreTeam(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid team ID")
		return
	}

	if err := h.teams.Restore(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "No deleted team with this ID")
		} else {
			apierrors.InternalError(c, err.Error())
		}
		return
	}

	respondMessage(c, http.StatusOK, "Team restored successfully")
}
