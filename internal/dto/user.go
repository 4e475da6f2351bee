package dto

import "github.com/intask-dev/intask/internal/models"

// UserDTO represents a user in API responses. The team name rides along so
// clients do not need a second lookup.
type UserDTO struct {
	ID       uint64      `json:"id"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
	TeamID   *uint64     `json:"teamId"`
	TeamName *string     `json:"teamName"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	d := UserDTO{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		TeamID: user.TeamID,
	}
	if user.Team != nil {
		d.TeamName = &user.Team.Name
	}
	return d
}
