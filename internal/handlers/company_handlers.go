package handlers

import (
	"net/http"

	"corpsite/internal/common"
	"corpsite/internal/models"
	"corpsite/internal/services"

	"github.com/labstack/echo/v4"
)

// CompanyHandlers handles HTTP requests for the singleton company profile.
type CompanyHandlers struct {
	companyService services.CompanyService
}

func NewCompanyHandlers(companyService services.CompanyService) *CompanyHandlers {
	return &CompanyHandlers{companyService: companyService}
}

// Get handles GET /company-info
func (h *CompanyHandlers) Get(c echo.Context) error {
	info, err := h.companyService.Get(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err, "Failed to retrieve company info")
	}
	return common.RespondOK(c, "Company info retrieved successfully", info)
}

// Upsert handles PUT /company-info
func (h *CompanyHandlers) Upsert(c echo.Context) error {
	var req models.CompanyInfo
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "Invalid request format", err)
	}

	info, err := h.companyService.Upsert(c.Request().Context(), &req)
	if err != nil {
		return respondServiceError(c, err, "Failed to update company info")
	}
	return common.RespondOK(c, "Company info updated successfully", info)
}
