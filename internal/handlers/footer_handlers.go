package handlers

import (
	"net/http"

	"corpsite/internal/common"
	"corpsite/internal/models"
	"corpsite/internal/services"

	"github.com/labstack/echo/v4"
)

// FooterHandlers handles HTTP requests for footer columns and links.
type FooterHandlers struct {
	footerService services.FooterService
}

func NewFooterHandlers(footerService services.FooterService) *FooterHandlers {
	return &FooterHandlers{footerService: footerService}
}

// List handles GET /footer. Columns come back ordered with links nested.
func (h *FooterHandlers) List(c echo.Context) error {
	columns, err := h.footerService.ListGrouped(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err, "Failed to list footer")
	}
	return common.RespondOK(c, "Footer retrieved successfully", columns)
}

// CreateColumn handles POST /footer/columns
func (h *FooterHandlers) CreateColumn(c echo.Context) error {
	var req models.FooterColumn
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "Invalid request format", err)
	}

	if err := h.footerService.CreateColumn(c.Request().Context(), &req); err != nil {
		return respondServiceError(c, err, "Failed to create footer column")
	}
	return common.RespondCreated(c, "Footer column created successfully", req)
}

// UpdateColumn handles PUT /footer/columns/:id
func (h *FooterHandlers) UpdateColumn(c echo.Context) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return common.SendValidationError(c, err)
	}

	var req models.FooterColumn
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "Invalid request format", err)
	}
	req.ID = id

	if err := h.footerService.UpdateColumn(c.Request().Context(), &req); err != nil {
		return respondServiceError(c, err, "Failed to update footer column")
	}
	return common.RespondOK(c, "Footer column updated successfully", req)
}

// DeleteColumn handles DELETE /footer/columns/:id
func (h *FooterHandlers) DeleteColumn(c echo.Context) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return common.SendValidationError(c, err)
	}

	if err := h.footerService.DeleteColumn(c.Request().Context(), id); err != nil {
		return respondServiceError(c, err, "Failed to delete footer column")
	}
	return common.RespondOK(c, "Footer column deleted successfully", nil)
}

// CreateLink handles POST /footer/links
func (h *FooterHandlers) CreateLink(c echo.Context) error {
	var req models.FooterLink
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "Invalid request format", err)
	}

	if err := h.footerService.CreateLink(c.Request().Context(), &req); err != nil {
		return respondServiceError(c, err, "Failed to create footer link")
	}
	return common.RespondCreated(c, "Footer link created successfully", req)
}

// UpdateLink handles PUT /footer/links/:id
func (h *FooterHandlers) UpdateLink(c echo.Context) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return common.SendValidationError(c, err)
	}

	var req models.FooterLink
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "Invalid request format", err)
	}
	req.ID = id

	if err := h.footerService.UpdateLink(c.Request().Context(), &req); err != nil {
		return respondServiceError(c, err, "Failed to update footer link")
	}
	return common.RespondOK(c, "Footer link updated successfully", req)
}

// DeleteLink handles DELETE /footer/links/:id
func (h *FooterHandlers) DeleteLink(c echo.Context) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return common.SendValidationError(c, err)
	}

	if err := h.footerService.DeleteLink(c.Request().Context(), id); err != nil {
		return respondServiceError(c, err, "Failed to delete footer link")
	}
	return common.RespondOK(c, "Footer link deleted successfully", nil)
}
