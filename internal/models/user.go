package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleLead   Role = "lead"
	RoleMember Role = "member"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleLead, RoleMember:
		return true
	}
	return false
}

type User struct {
	ID                uint64         `gorm:"primarykey" json:"id"`
	Name              string         `gorm:"type:varchar(255);not null" json:"name"`
	Email             string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash      string         `gorm:"type:varchar(255);not null" json:"-"`
	Role              Role           `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	TeamID            *uint64        `gorm:"index" json:"teamId"`
	PasswordChangedAt *time.Time     `json:"-"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Team            *Team     `gorm:"foreignKey:TeamID;constraint:OnDelete:SET NULL" json:"team,omitempty"`
	CreatedTeams    []Team    `gorm:"foreignKey:CreatedBy" json:"-"`
	CreatedProjects []Project `gorm:"foreignKey:CreatedBy" json:"-"`
	AssignedTasks   []Task    `gorm:"foreignKey:AssignedTo" json:"-"`
}

// ChangedPasswordAfter reports whether the password was changed after the
// given token issue time. Tokens issued before the change are stale.
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return issuedAt.Unix() < u.PasswordChangedAt.Unix()
}
