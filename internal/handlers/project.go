package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/intask-dev/intask/internal/apierrors"
	"github.com/intask-dev/intask/internal/middleware"
	"github.com/intask-dev/intask/internal/models"
	"github.com/intask-dev/intask/internal/policy"
	"github.com/intask-dev/intask/internal/repository"
	"gorm.io/gorm"
)

// ProjectHandler serves the project CRUD endpoints.
type ProjectHandler struct {
	projects repository.ProjectRepository
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projects repository.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// List returns the projects visible to the caller. The visibility predicate
// is applied in the store query, not as a post-filter.
func (h *ProjectHandler) List(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, apierrors.CodeAuthFailed, "Authentication required")
		return
	}

	projects, err := h.projects.List(policy.ProjectScope(caller))
	if err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	respondData(c, http.StatusOK, projects)
}

// Create creates a project owned by the calling lead's team.
func (h *ProjectHandler) Create(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, apierrors.CodeAuthFailed, "Authentication required")
		return
	}

	type CreateProjectRequest struct {
		Name        string                 `json:"name" binding:"required"`
		Description string                 `json:"description"`
		Priority    models.ProjectPriority `json:"priority"`
		DueDate     *time.Time             `json:"dueDate"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Project name is required")
		return
	}

	if d := policy.CanCreateProject(caller); !d.Allowed {
		// A lead without a team fails validation, not authorization.
		if caller.Role == models.RoleLead && caller.TeamID == nil {
			apierrors.BadRequest(c, d.Reason)
			return
		}
		apierrors.ForbiddenWithRoles(c, d.Reason, d.RequiredRoles, caller.Role)
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		apierrors.BadRequest(c, "Invalid priority")
		return
	}

	project := &models.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      models.ProjectStatusInProgress,
		Priority:    priority,
		DueDate:     req.DueDate,
		TeamID:      caller.TeamID,
		CreatedBy:   &caller.ID,
	}

	if err := h.projects.Create(project); err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	respondData(c, http.StatusCreated, project)
}

// Update modifies a project; only its creating lead may do so.
func (h *ProjectHandler) Update(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, apierrors.CodeAuthFailed, "Authentication required")
		return
	}

	project, done := h.resolveProject(c)
	if done {
		return
	}

	if d := policy.CanMutateProject(caller, project); !d.Allowed {
		apierrors.ForbiddenWithRoles(c, d.Reason, d.RequiredRoles, caller.Role)
		return
	}

	type UpdateProjectRequest struct {
		Name        *string                 `json:"name"`
		Description *string                 `json:"description"`
		Status      *models.ProjectStatus   `json:"status"`
		Priority    *models.ProjectPriority `json:"priority"`
		DueDate     *time.Time              `json:"dueDate"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			apierrors.BadRequest(c, "Project name cannot be empty")
			return
		}
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		// Status is a label, not a workflow gate: any valid value is
		// reachable from any other.
		if !req.Status.Valid() {
			apierrors.BadRequest(c, "Invalid status")
			return
		}
		project.Status = *req.Status
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			apierrors.BadRequest(c, "Invalid priority")
			return
		}
		project.Priority = *req.Priority
	}
	if req.DueDate != nil {
		project.DueDate = req.DueDate
	}

	if err := h.projects.Update(project); err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	respondData(c, http.StatusOK, project)
}

// Delete tombstones a project and cascades to its tasks.
func (h *ProjectHandler) Delete(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, apierrors.CodeAuthFailed, "Authentication required")
		return
	}

	project, done := h.resolveProject(c)
	if done {
		return
	}

	if d := policy.CanMutateProject(caller, project); !d.Allowed {
		apierrors.ForbiddenWithRoles(c, d.Reason, d.RequiredRoles, caller.Role)
		return
	}

	if err := h.projects.Delete(project.ID); err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	respondMessage(c, http.StatusOK, "Project deleted successfully")
}

// resolveProject loads the target project, responding 404 (tombstones
// included) or 400 itself; the second return reports whether it responded.
func (h *ProjectHandler) resolveProject(c *gin.Context) (*models.Project, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return nil, true
	}

	project, err := h.projects.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Project not found")
		} else {
			apierrors.InternalError(c, err.Error())
		}
		return nil, true
	}

	return project, false
}
