package repository

import (
	"time"

	"github.com/intask-dev/intask/internal/models"
	"github.com/intask-dev/intask/internal/policy"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a live user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByIDWithTeam finds a live user with the team relation preloaded
	FindByIDWithTeam(id uint64) (*models.User, error)

	// FindByEmail finds a live user by email
	FindByEmail(email string) (*models.User, error)

	// UpdateTeam moves the user into a team, or out of one when teamID is nil
	UpdateTeam(userID uint64, teamID *uint64) error

	// UpdatePassword replaces the password hash and stamps the change time,
	// invalidating tokens issued earlier
	UpdatePassword(userID uint64, hash string, changedAt time.Time) error
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	// Create creates a new team
	Create(team *models.Team) error

	// FindByID finds a live team by ID
	FindByID(id uint64) (*models.Team, error)

	// FindByName finds a live team by its unique name
	FindByName(name string) (*models.Team, error)

	// List retrieves teams visible under the given scope, with members and
	// creator preloaded
	List(scope policy.Scope) ([]models.Team, error)

	// Update updates a team
	Update(team *models.Team) error

	// Delete tombstones the team. Its projects are left untouched; the
	// team reference on them simply goes stale.
	Delete(id uint64) error

	// ListDeleted retrieves tombstoned teams (administrative path)
	ListDeleted() ([]models.Team, error)

	// Restore clears the tombstone on a deleted team
	Restore(id uint64) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a live project by ID
	FindByID(id uint64) (*models.Project, error)

	// List retrieves projects visible under the given scope
	List(scope policy.Scope) ([]models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete tombstones the project and all of its tasks atomically
	Delete(id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a live task with its project preloaded
	FindByID(id uint64) (*models.Task, error)

	// List retrieves tasks visible under the given scope, optionally
	// filtered to one project, newest first
	List(scope policy.Scope, projectID *uint64) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete tombstones a task
	Delete(id uint64) error
}
