// Package policy is the single source of truth for access decisions. Every
// handler consults these functions instead of checking roles inline, so the
// rules for each (entity, operation) pair live in exactly one place.
package policy

import (
	"github.com/intask-dev/intask/internal/models"
)

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed       bool
	Reason        string
	RequiredRoles []models.Role
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string, required ...models.Role) Decision {
	return Decision{Allowed: false, Reason: reason, RequiredRoles: required}
}

// CanCreateProject permits only leads that belong to a team. Admins are
// deliberately excluded: a project's team is populated from the creator's own
// team, which admins do not have.
func CanCreateProject(caller *models.User) Decision {
	if caller.Role == models.RoleAdmin {
		return deny("Admins are not allowed to create projects", models.RoleLead)
	}
	if caller.Role != models.RoleLead {
		return deny("Only leads can create projects", models.RoleLead)
	}
	if caller.TeamID == nil {
		return deny("You are not assigned to a team", models.RoleLead)
	}
	return allow()
}

// CanMutateProject permits update and delete only to the lead that created
// the project.
func CanMutateProject(caller *models.User, project *models.Project) Decision {
	if caller.Role == models.RoleLead && project.CreatedBy != nil && *project.CreatedBy == caller.ID {
		return allow()
	}
	return deny("Not authorized to modify this project", models.RoleLead)
}

// CanCreateTask permits admins and leads.
func CanCreateTask(caller *models.User) Decision {
	if caller.Role == models.RoleAdmin || caller.Role == models.RoleLead {
		return allow()
	}
	return deny("Only admins and leads can create tasks", models.RoleAdmin, models.RoleLead)
}

// CanMutateTask permits admins unconditionally; everyone else only for tasks
// whose project belongs to the caller's team.
func CanMutateTask(caller *models.User, project *models.Project) Decision {
	if caller.Role == models.RoleAdmin {
		return allow()
	}
	if caller.TeamID != nil && project.TeamID != nil && *project.TeamID == *caller.TeamID {
		return allow()
	}
	return deny("Not authorized to modify this task", models.RoleAdmin, models.RoleLead, models.RoleMember)
}

// CanListTeams permits admins and leads; members have no team visibility.
func CanListTeams(caller *models.User) Decision {
	if caller.Role == models.RoleAdmin || caller.Role == models.RoleLead {
		return allow()
	}
	return deny("Only admins and leads can view teams", models.RoleAdmin, models.RoleLead)
}

// CanCreateTeam permits only admins.
func CanCreateTeam(caller *models.User) Decision {
	if caller.Role == models.RoleAdmin {
		return allow()
	}
	return deny("Only admins can create teams", models.RoleAdmin)
}

// CanMutateTeam permits only the team's creator, whatever their role.
func CanMutateTeam(caller *models.User, team *models.Team) Decision {
	if team.CreatedBy != nil && *team.CreatedBy == caller.ID {
		return allow()
	}
	return deny("Only the team creator can modify this team", models.RoleAdmin, models.RoleLead)
}

// CanAssignTeam governs moving a user into a team (or out, when team is nil).
// The caller must be an admin, and for an assignment must also be the target
// team's creator.
func CanAssignTeam(caller *models.User, team *models.Team) Decision {
	if caller.Role != models.RoleAdmin {
		return deny("Only admins can manage team assignments", models.RoleAdmin)
	}
	if team == nil {
		return allow()
	}
	if team.CreatedBy != nil && *team.CreatedBy == caller.ID {
		return allow()
	}
	return deny("Only the team creator can assign members", models.RoleAdmin)
}
