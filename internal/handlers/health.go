package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/intask-dev/intask/internal/database"
)

// HealthCheck reports liveness and the database connection state.
func HealthCheck(c *gin.Context) {
	dbStatus := "connected"
	if sqlDB, err := database.GetDB().DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "disconnected"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": dbStatus,
	})
}
