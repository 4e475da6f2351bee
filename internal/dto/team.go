package dto

import (
	"time"

	"github.com/intask-dev/intask/internal/models"
)

// TeamMemberDTO represents a member in team responses
type TeamMemberDTO struct {
	ID    uint64      `json:"id"`
	Name  string      `json:"name"`
	Role  models.Role `json:"role"`
	Email string      `json:"email"`
}

// TeamCreatorDTO represents the creating user in team responses
type TeamCreatorDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TeamDTO represents a team in API responses
type TeamDTO struct {
	ID        uint64          `json:"id"`
	Name      string          `json:"name"`
	CreatedBy *uint64         `json:"createdBy"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Members   []TeamMemberDTO `json:"members"`
	Creator   *TeamCreatorDTO `json:"creator,omitempty"`
}

// ToTeamDTO converts a Team model to TeamDTO
func ToTeamDTO(team models.Team) TeamDTO {
	d := TeamDTO{
		ID:        team.ID,
		Name:      team.Name,
		CreatedBy: team.CreatedBy,
		CreatedAt: team.CreatedAt,
		UpdatedAt: team.UpdatedAt,
		Members:   make([]TeamMemberDTO, 0, len(team.Members)),
	}
	for _, m := range team.Members {
		d.Members = append(d.Members, TeamMemberDTO{
			ID:    m.ID,
			Name:  m.Name,
			Role:  m.Role,
			Email: m.Email,
		})
	}
	if team.Creator != nil {
		d.Creator = &TeamCreatorDTO{
			ID:    team.Creator.ID,
			Name:  team.Creator.Name,
			Email: team.Creator.Email,
		}
	}
	return d
}

// ToTeamDTOs converts a slice of teams
func ToTeamDTOs(teams []models.Team) []TeamDTO {
	out := make([]TeamDTO, len(teams))
	for i, t := range teams {
		out[i] = ToTeamDTO(t)
	}
	return out
}
