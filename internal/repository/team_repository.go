package repository

import (
	"github.com/intask-dev/intask/internal/models"
	"github.com/intask-dev/intask/internal/policy"
	"gorm.io/gorm"
)

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

// Create creates a new team
func (r *GormTeamRepository) Create(team *models.Team) error {
	return r.db.Create(team).Error
}

// FindByID finds a live team by ID
func (r *GormTeamRepository) FindByID(id uint64) (*models.Team, error) {
	var team models.Team
	if err := r.db.First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// FindByName finds a live team by its unique name
func (r *GormTeamRepository) FindByName(name string) (*models.Team, error) {
	var team models.Team
	if err := r.db.Where("name = ?", name).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// List retrieves teams visible under the given scope
func (r *GormTeamRepository) List(scope policy.Scope) ([]models.Team, error) {
	var teams []models.Team
	query := scope(r.db.Model(&models.Team{}))
	if err := query.Preload("Members").Preload("Creator").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// Update updates a team
func (r *GormTeamRepository) Update(team *models.Team) error {
	return r.db.Save(team).Error
}

// Delete tombstones the team only. Projects keep their rows and their stale
// team reference; the cascade applies to physical deletes, not tombstones.
func (r *GormTeamRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Team{}, id).Error
}

// ListDeleted retrieves tombstoned teams
func (r *GormTeamRepository) ListDeleted() ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.Unscoped().
		Where("deleted_at IS NOT NULL").
		Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// Restore clears the tombstone on a deleted team
func (r *GormTeamRepository) Restore(id uint64) error {
	result := r.db.Unscoped().
		Model(&models.Team{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
