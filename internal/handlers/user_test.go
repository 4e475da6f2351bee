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

type userTestEnv struct {
	db      *gorm.DB
	handler *UserHandler
}

func setupUserTest(t *testing.T) *userTestEnv {
	t.Helper()

	db := setupTestDB(t)
	return &userTestEnv{
		db:      db,
		handler: NewUserHandler(repository.NewUserRepository(db), repository.NewTeamRepository(db)),
	}
}

func (e *userTestEnv) routerFor(user *models.User) *gin.Engine {
	r := gin.New()
	r.Use(asUser(user))
	r.PATCH("/api/users/:id/team", e.handler.AssignTeam)
	return r
}

func TestAssignTeam(t *testing.T) {
	env := setupUserTest(t)
	creator := createTestUser(t, env.db, "creator", models.RoleAdmin, nil)
	otherAdmin := createTestUser(t, env.db, "other-admin", models.RoleAdmin, nil)
	lead := createTestUser(t, env.db, "lead", models.RoleLead, nil)
	team := createTestTeam(t, env.db, "Platform", &creator.ID)
	member := createTestUser(t, env.db, "member", models.RoleMember, nil)
	path := fmt.Sprintf("/api/users/%d/team", member.ID)

	t.Run("creator assigns into own team", func(t *testing.T) {
		w := performJSON(env.routerFor(&creator), http.MethodPatch, path, gin.H{"teamId": team.ID})
		require.Equal(t, http.StatusOK, w.Code)

		user := decodeBody(t, w)["data"].(map[string]any)["user"].(map[string]any)
		assert.Equal(t, float64(team.ID), user["teamId"])
		assert.Equal(t, "Platform", user["teamName"])
	})

	t.Run("non-creator admin denied", func(t *testing.T) {
		w := performJSON(env.routerFor(&otherAdmin), http.MethodPatch, path, gin.H{"teamId": team.ID})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("lead denied", func(t *testing.T) {
		w := performJSON(env.routerFor(&lead), http.MethodPatch, path, gin.H{"teamId": team.ID})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("null teamId unassigns", func(t *testing.T) {
		w := performJSON(env.routerFor(&creator), http.MethodPatch, path, gin.H{"teamId": nil})
		require.Equal(t, http.StatusOK, w.Code)

		user := decodeBody(t, w)["data"].(map[string]any)["user"].(map[string]any)
		assert.Nil(t, user["teamId"])
	})

	t.Run("unknown user", func(t *testing.T) {
		w := performJSON(env.routerFor(&creator), http.MethodPatch, "/api/users/999/team", gin.H{"teamId": team.ID})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown team", func(t *testing.T) {
		w := performJSON(env.routerFor(&creator), http.MethodPatch, path, gin.H{"teamId": 999})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
