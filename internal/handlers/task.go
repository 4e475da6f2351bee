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

// TaskHandler serves the task CRUD endpoints.
type TaskHandler struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
	users    repository.UserRepository
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks repository.TaskRepository, projects repository.ProjectRepository, users repository.UserRepository) *TaskHandler {
	return &TaskHandler{
		tasks:    tasks,
		projects: projects,
		users:    users,
	}
}

// List returns the tasks visible to the caller, optionally filtered to one
// project via ?projectId=.
func (h *TaskHandler) List(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, apierrors.CodeAuthFailed, "Authentication required")
		return
	}

	var projectID *uint64
	if raw := c.Query("projectId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid projectId")
			return
		}
		projectID = &id
	}

	tasks, err := h.tasks.List(policy.TaskScope(caller), projectID)
	if err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	respondData(c, http.StatusOK, tasks)
}

// Create creates a task under an existing project.
func (h *TaskHandler) Create(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, apierrors.CodeAuthFailed, "Authentication required")
		return
	}

	if d := policy.CanCreateTask(caller); !d.Allowed {
		apierrors.ForbiddenWithRoles(c, d.Reason, d.RequiredRoles, caller.Role)
		return
	}

	type CreateTaskRequest struct {
		Title       string            `json:"title"`
		Description string            `json:"description"`
		Status      models.TaskStatus `json:"status"`
		DueDate     *time.Time        `json:"dueDate"`
		ProjectID   uint64            `json:"projectId"`
		AssignedTo  *uint64           `json:"assignedTo"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.Title == "" || req.ProjectID == 0 {
		apierrors.BadRequest(c, "Title and project ID are required")
		return
	}

	project, err := h.projects.FindByID(req.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Project not found")
		} else {
			apierrors.InternalError(c, err.Error())
		}
		return
	}

	status := req.Status
	if status == "" {
		status = models.TaskStatusTodo
	}
	if !status.Valid() {
		apierrors.BadRequest(c, "Invalid status")
		return
	}

	if req.AssignedTo != nil {
		if ok := h.validateAssignee(c, *req.AssignedTo, project); !ok {
			return
		}
	}

	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		DueDate:     req.DueDate,
		ProjectID:   project.ID,
		AssignedTo:  req.AssignedTo,
	}

	if err := h.tasks.Create(task); err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	respondData(c, http.StatusCreated, task)
}

// Update modifies a task; mutation is scoped to the task's project's team.
func (h *TaskHandler) Update(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, apierrors.CodeAuthFailed, "Authentication required")
		return
	}

	task, done := h.resolveTask(c)
	if done {
		return
	}

	if d := policy.CanMutateTask(caller, task.Project); !d.Allowed {
		apierrors.ForbiddenWithRoles(c, d.Reason, d.RequiredRoles, caller.Role)
		return
	}

	type UpdateTaskRequest struct {
		Title       *string            `json:"title"`
		Description *string            `json:"description"`
		Status      *models.TaskStatus `json:"status"`
		DueDate     *time.Time         `json:"dueDate"`
		// Double pointer so an explicit null (unassign) is distinguishable
		// from an absent field (leave unchanged).
		AssignedTo **uint64 `json:"assignedTo"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Title != nil {
		if *req.Title == "" {
			apierrors.BadRequest(c, "Title cannot be empty")
			return
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			apierrors.BadRequest(c, "Invalid status")
			return
		}
		task.Status = *req.Status
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.AssignedTo != nil {
		if *req.AssignedTo == nil {
			task.AssignedTo = nil
		} else {
			if ok := h.validateAssignee(c, **req.AssignedTo, task.Project); !ok {
				return
			}
			task.AssignedTo = *req.AssignedTo
		}
	}

	if err := h.tasks.Update(task); err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	respondData(c, http.StatusOK, task)
}

// Delete tombstones a task.
func (h *TaskHandler) Delete(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, apierrors.CodeAuthFailed, "Authentication required")
		return
	}

	task, done := h.resolveTask(c)
	if done {
		return
	}

	if d := policy.CanMutateTask(caller, task.Project); !d.Allowed {
		apierrors.ForbiddenWithRoles(c, d.Reason, d.RequiredRoles, caller.Role)
		return
	}

	if err := h.tasks.Delete(task.ID); err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	respondMessage(c, http.StatusOK, "Task deleted successfully")
}

// validateAssignee enforces that the assignee exists and belongs to the
// task's project's team. Responds 400 and returns false otherwise.
func (h *TaskHandler) validateAssignee(c *gin.Context, assigneeID uint64, project *models.Project) bool {
	assignee, err := h.users.FindByID(assigneeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.BadRequest(c, "Assignee does not exist")
		} else {
			apierrors.InternalError(c, err.Error())
		}
		return false
	}

	if assignee.TeamID == nil || project.TeamID == nil || *assignee.TeamID != *project.TeamID {
		apierrors.BadRequest(c, "Assignee must belong to the project's team")
		return false
	}

	return true
}

// resolveTask loads the target task with its project; tombstoned tasks and
// tasks under tombstoned projects resolve to 404.
func (h *TaskHandler) resolveTask(c *gin.Context) (*models.Task, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return nil, true
	}

	task, err := h.tasks.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Task not found")
		} else {
			apierrors.InternalError(c, err.Error())
		}
		return nil, true
	}

	if task.Project == nil {
		apierrors.NotFound(c, "Task not found")
		return nil, true
	}

	return task, false
}
