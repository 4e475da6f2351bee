package repository

import (
	"time"

	"github.com/intask-dev/intask/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a live user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDWithTeam finds a live user with the team relation preloaded
func (r *GormUserRepository) FindByIDWithTeam(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Team").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a live user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateTeam moves the user into a team, or out of one when teamID is nil
func (r *GormUserRepository) UpdateTeam(userID uint64, teamID *uint64) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("team_id", teamID).Error
}

// UpdatePassword replaces the password hash and stamps the change time
func (r *GormUserRepository) UpdatePassword(userID uint64, hash string, changedAt time.Time) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash":       hash,
			"password_changed_at": changedAt,
		}).Error
}
