package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/intask-dev/intask/internal/database"
	"github.com/intask-dev/intask/internal/middleware"
	"github.com/intask-dev/intask/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestDB opens a fresh in-memory database, migrates the schema and
// installs it as the package-global connection used by the auth middleware.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Team{}, &models.Project{}, &models.Task{}))

	database.SetDB(db)
	return db
}

// asUser injects the caller directly, bypassing token verification; the
// middleware itself is covered by its own tests.
func asUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, user)
		c.Next()
	}
}

func jsonBody(body any) *bytes.Buffer {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	return &buf
}

func performJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, jsonBody(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func createTestTeam(t *testing.T, db *gorm.DB, name string, createdBy *uint64) models.Team {
	t.Helper()

	team := models.Team{Name: name, CreatedBy: createdBy}
	require.NoError(t, db.Create(&team).Error)
	return team
}

func createTestUser(t *testing.T, db *gorm.DB, name string, role models.Role, teamID *uint64) models.User {
	t.Helper()

	user := models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s@example.com", name),
		PasswordHash: "not-a-real-hash",
		Role:         role,
		TeamID:       teamID,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestProject(t *testing.T, db *gorm.DB, name string, teamID, createdBy *uint64) models.Project {
	t.Helper()

	project := models.Project{
		Name:      name,
		Status:    models.ProjectStatusInProgress,
		Priority:  models.PriorityMedium,
		TeamID:    teamID,
		CreatedBy: createdBy,
	}
	require.NoError(t, db.Create(&project).Error)
	return project
}

func createTestTask(t *testing.T, db *gorm.DB, title string, projectID uint64, assignedTo *uint64) models.Task {
	t.Helper()

	task := models.Task{
		Title:      title,
		Status:     models.TaskStatusTodo,
		ProjectID:  projectID,
		AssignedTo: assignedTo,
	}
	require.NoError(t, db.Create(&task).Error)
	return task
}
