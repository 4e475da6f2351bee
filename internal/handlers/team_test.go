package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/intask-dev/intask/internal/models"
	"github.com/intask-dev/intask/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type teamTestEnv struct {
	db      *gorm.DB
	handler *TeamHandler
	admin   *AdminHandler
}

func setupTeamTest(t *testing.T) *teamTestEnv {
	t.Helper()

	db := setupTestDB(t)
	teams := repository.NewTeamRepository(db)
	return &teamTestEnv{
		db:      db,
		handler: NewTeamHandler(teams),
		admin:   NewAdminHandler(teams),
	}
}

func (e *teamTestEnv) routerFor(user *models.User) *gin.Engine {
	r := gin.New()
	r.Use(asUser(user))
	r.GET("/api/teams", e.handler.List)
	r.POST("/api/teams", e.handler.Create)
	r.PUT("/api/teams/:id", e.handler.Update)
	r.DELETE("/api/teams/:id", e.handler.Delete)
	r.GET("/api/admin/teams/deleted", e.admin.ListDeletedTeams)
	r.POST("/api/admin/teams/:id/restore", e.admin.RestoreTeam)
	return r
}

func TestTeamList_MemberDenied(t *testing.T) {
	env := setupTeamTest(t)
	member := createTestUser(t, env.db, "member", models.RoleMember, nil)

	w := performJSON(env.routerFor(&member), http.MethodGet, "/api/teams", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTeamList_LeadSeesOnlyOwnCreations(t *testing.T) {
	env := setupTeamTest(t)
	admin := createTestUser(t, env.db, "admin", models.RoleAdmin, nil)
	lead := createTestUser(t, env.db, "lead", models.RoleLead, nil)
	createTestTeam(t, env.db, "Admin's team", &admin.ID)
	createTestTeam(t, env.db, "Lead's team", &lead.ID)

	w := performJSON(env.routerFor(&lead), http.MethodGet, "/api/teams", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items, _ := decodeBody(t, w)["data"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Lead's team", items[0].(map[string]any)["name"])

	w = performJSON(env.routerFor(&admin), http.MethodGet, "/api/teams", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items, _ = decodeBody(t, w)["data"].([]any)
	assert.Len(t, items, 2)
}

func TestTeamCreate(t *testing.T) {
	env := setupTeamTest(t)
	admin := createTestUser(t, env.db, "admin", models.RoleAdmin, nil)
	lead := createTestUser(t, env.db, "lead", models.RoleLead, nil)

	t.Run("admin creates", func(t *testing.T) {
		w := performJSON(env.routerFor(&admin), http.MethodPost, "/api/teams", gin.H{"name": "Platform"})
		require.Equal(t, http.StatusCreated, w.Code)
		data := decodeBody(t, w)["data"].(map[string]any)
		assert.Equal(t, "Platform", data["name"])
		assert.Equal(t, float64(admin.ID), data["createdBy"])
	})

	t.Run("duplicate name", func(t *testing.T) {
		w := performJSON(env.routerFor(&admin), http.MethodPost, "/api/teams", gin.H{"name": "Platform"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Team name already exists", decodeBody(t, w)["error"])
	})

	t.Run("name too short", func(t *testing.T) {
		w := performJSON(env.routerFor(&admin), http.MethodPost, "/api/teams", gin.H{"name": "ab"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("lead denied", func(t *testing.T) {
		w := performJSON(env.routerFor(&lead), http.MethodPost, "/api/teams", gin.H{"name": "Rogue"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestTeamUpdate_CreatorOnly(t *testing.T) {
	env := setupTeamTest(t)
	creator := createTestUser(t, env.db, "creator", models.RoleAdmin, nil)
	other := createTestUser(t, env.db, "other", models.RoleAdmin, nil)
	team := createTestTeam(t, env.db, "Platform", &creator.ID)
	path := fmt.Sprintf("/api/teams/%d", team.ID)

	w := performJSON(env.routerFor(&other), http.MethodPut, path, gin.H{"name": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = performJSON(env.routerFor(&creator), http.MethodPut, path, gin.H{"name": "Platform Core"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Platform Core", decodeBody(t, w)["data"].(map[string]any)["name"])
}

func TestTeamDelete(t *testing.T) {
	env := setupTeamTest(t)
	creator := createTestUser(t, env.db, "creator", models.RoleAdmin, nil)
	team := createTestTeam(t, env.db, "Platform", &creator.ID)
	project := createTestProject(t, env.db, "Live project", &team.ID, nil)
	path := fmt.Sprintf("/api/teams/%d", team.ID)

	w := performJSON(env.routerFor(&creator), http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("repeat delete is not found", func(t *testing.T) {
		w := performJSON(env.routerFor(&creator), http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("tombstone hides the team from lists", func(t *testing.T) {
		w := performJSON(env.routerFor(&creator), http.MethodGet, "/api/teams", nil)
		require.Equal(t, http.StatusOK, w.Code)
		items, _ := decodeBody(t, w)["data"].([]any)
		assert.Empty(t, items)
	})

	t.Run("projects keep their rows", func(t *testing.T) {
		var got models.Project
		require.NoError(t, env.db.First(&got, project.ID).Error)
		require.NotNil(t, got.TeamID)
		assert.Equal(t, team.ID, *got.TeamID, "team reference goes stale, it is not cleared")
	})
}

func TestTeamRestore(t *testing.T) {
	env := setupTeamTest(t)
	creator := createTestUser(t, env.db, "creator", models.RoleAdmin, nil)
	team := createTestTeam(t, env.db, "Platform", &creator.ID)

	w := performJSON(env.routerFor(&creator), http.MethodDelete, fmt.Sprintf("/api/teams/%d", team.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performJSON(env.routerFor(&creator), http.MethodGet, "/api/admin/teams/deleted", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items, _ := decodeBody(t, w)["data"].([]any)
	require.Len(t, items, 1)

	restorePath := fmt.Sprintf("/api/admin/teams/%d/restore", team.ID)
	w = performJSON(env.routerFor(&creator), http.MethodPost, restorePath, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performJSON(env.routerFor(&creator), http.MethodGet, "/api/teams", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items, _ = decodeBody(t, w)["data"].([]any)
	assert.Len(t, items, 1, "restored team is visible again")

	// Restoring a live team is a no-op target.
	w = performJSON(env.routerFor(&creator), http.MethodPost, restorePath, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
