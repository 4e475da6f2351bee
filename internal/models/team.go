package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultLeadTeamName is the sentinel team that leads registering without a
// team are assigned to.
const DefaultLeadTeamName = "Unassigned Leads"

type Team struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CreatedBy *uint64        `gorm:"index" json:"createdBy"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Creator  *User     `gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL" json:"creator,omitempty"`
	Members  []User    `gorm:"foreignKey:TeamID" json:"members,omitempty"`
	Projects []Project `gorm:"foreignKey:TeamID" json:"projects,omitempty"`
}
