package services

import (
	"github.com/intask-dev/intask/internal/models"
	"gorm.io/gorm"
)

// DashboardStats are the admin dashboard counters.
type DashboardStats struct {
	TotalTeams     int64 `json:"totalTeams"`
	TotalMembers   int64 `json:"totalMembers"`
	TotalProjects  int64 `json:"totalProjects"`
	ActiveProjects int64 `json:"activeProjects"`
	CompletedTasks int64 `json:"completedTasks"`
	PendingReviews int64 `json:"pendingReviews"`
}

// DashboardService aggregates cross-entity counts for admins.
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// Stats computes the dashboard counters. Members counts non-admin users that
// hold a team assignment; completed tasks require a still-live project.
func (s *DashboardService) Stats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := s.db.Model(&models.Team{}).
		Count(&stats.TotalTeams).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.User{}).
		Where("role <> ?", models.RoleAdmin).
		Where("team_id IS NOT NULL").
		Count(&stats.TotalMembers).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Project{}).
		Count(&stats.TotalProjects).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Project{}).
		Where("status IN ?", []models.ProjectStatus{models.ProjectStatusTodo, models.ProjectStatusInProgress}).
		Count(&stats.ActiveProjects).Error; err != nil {
		return nil, err
	}

	projectExists := s.db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Project{}).
		Select("1").
		Where("projects.id = tasks.project_id")
	if err := s.db.Model(&models.Task{}).
		Where("status = ?", models.TaskStatusDone).
		Where("EXISTS (?)", projectExists).
		Count(&stats.CompletedTasks).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Project{}).
		Where("status = ?", models.ProjectStatusInReview).
		Where("team_id IS NOT NULL").
		Count(&stats.PendingReviews).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
