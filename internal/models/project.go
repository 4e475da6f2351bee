package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusTodo       ProjectStatus = "todo"
	ProjectStatusInProgress ProjectStatus = "inProgress"
	ProjectStatusDone       ProjectStatus = "done"
	ProjectStatusInReview   ProjectStatus = "inReview"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusTodo, ProjectStatusInProgress, ProjectStatusDone, ProjectStatusInReview:
		return true
	}
	return false
}

type ProjectPriority string

const (
	PriorityLow    ProjectPriority = "Low"
	PriorityMedium ProjectPriority = "Medium"
	PriorityHigh   ProjectPriority = "High"
)

func (p ProjectPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Project struct {
	ID          uint64          `gorm:"primarykey" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Status      ProjectStatus   `gorm:"type:varchar(20);not null;default:'todo'" json:"status"`
	Priority    ProjectPriority `gorm:"type:varchar(20);not null;default:'Medium'" json:"priority"`
	DueDate     *time.Time      `json:"dueDate"`
	TeamID      *uint64         `gorm:"index" json:"teamId"`
	CreatedBy   *uint64         `gorm:"index" json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relations
	Team    *Team  `gorm:"foreignKey:TeamID;constraint:OnDelete:SET NULL" json:"team,omitempty"`
	Creator *User  `gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL" json:"creator,omitempty"`
	Tasks   []Task `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}
