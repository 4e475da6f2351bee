package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/intask-dev/intask/internal/apierrors"
	"github.com/intask-dev/intask/internal/services"
)

// DashboardHandler serves the admin dashboard counters.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// AdminDashboard returns the aggregate counters. Route is admin-gated.
func (h *DashboardHandler) AdminDashboard(c *gin.Context) {
	stats, err := h.dashboardService.Stats()
	if err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	respondData(c, http.StatusOK, stats)
}
