package handlers

import (
	"corpsite/internal/common"
	"corpsite/internal/dashboard"

	"github.com/labstack/echo/v4"
)

// DashboardHandlers handles HTTP requests for the dashboard snapshot.
type DashboardHandlers struct {
	dashboardService *dashboard.Service
}

func NewDashboardHandlers(dashboardService *dashboard.Service) *DashboardHandlers {
	return &DashboardHandlers{dashboardService: dashboardService}
}

// GetStatistics handles GET /dashboard/stats
func (h *DashboardHandlers) GetStatistics(c echo.Context) error {
	stats, err := h.dashboardService.GetStatistics(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err, "Failed to retrieve dashboard statistics")
	}
	return common.RespondOK(c, "Dashboard statistics retrieved successfully", stats)
}

// Refresh handles POST /dashboard/stats/refresh
func (h *DashboardHandlers) Refresh(c echo.Context) error {
	stats, err := h.dashboardService.Refresh(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err, "Failed to refresh dashboard statistics")
	}
	return common.RespondOK(c, "Dashboard statistics refreshed successfully", stats)
}

// Detailed handles GET /dashboard/detailed-stats
func (h *DashboardHandlers) Detailed(c echo.Context) error {
	detail, err := h.dashboardService.Detailed(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err, "Failed to retrieve detailed dashboard")
	}
	return common.RespondOK(c, "Detailed dashboard retrieved successfully", detail)
}
