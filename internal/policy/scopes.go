package policy

import (
	"github.com/intask-dev/intask/internal/models"
	"gorm.io/gorm"
)

// Scope narrows a list query to the rows the caller may see. Scopes are
// applied at the store level so denied rows never leave the database.
type Scope func(db *gorm.DB) *gorm.DB

// none matches no rows.
func none(db *gorm.DB) *gorm.DB {
	return db.Where("1 = 0")
}

// ProjectScope returns the visibility predicate for project lists:
// admins see everything, leads see what they created plus their team's
// projects, members see their team's projects.
func ProjectScope(caller *models.User) Scope {
	switch caller.Role {
	case models.RoleAdmin:
		return func(db *gorm.DB) *gorm.DB { return db }
	case models.RoleLead:
		return func(db *gorm.DB) *gorm.DB {
			if caller.TeamID == nil {
				return db.Where("projects.created_by = ?", caller.ID)
			}
			return db.Where("projects.created_by = ? OR projects.team_id = ?", caller.ID, *caller.TeamID)
		}
	case models.RoleMember:
		return func(db *gorm.DB) *gorm.DB {
			if caller.TeamID == nil {
				return none(db)
			}
			return db.Where("projects.team_id = ?", *caller.TeamID)
		}
	}
	return none
}

// TaskScope returns the visibility predicate for task lists. Non-admins see
// tasks whose (live) project belongs to their team.
func TaskScope(caller *models.User) Scope {
	if caller.Role == models.RoleAdmin {
		return func(db *gorm.DB) *gorm.DB { return db }
	}
	return func(db *gorm.DB) *gorm.DB {
		if caller.TeamID == nil {
			return none(db)
		}
		projects := db.Session(&gorm.Session{NewDB: true}).
			Model(&models.Project{}).
			Select("1").
			Where("projects.id = tasks.project_id").
			Where("projects.team_id = ?", *caller.TeamID)
		return db.Where("EXISTS (?)", projects)
	}
}

// TeamScope returns the visibility predicate for team lists. Callers denied
// by CanListTeams never reach the query.
func TeamScope(caller *models.User) Scope {
	if caller.Role == models.RoleAdmin {
		return func(db *gorm.DB) *gorm.DB { return db }
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("teams.created_by = ?", caller.ID)
	}
}
