package handlers

import (
	"net/http"
	"strconv"

	"corpsite/internal/common"
	"corpsite/internal/models"
	"corpsite/internal/services"

	"github.com/labstack/echo/v4"
)

// CatalogHandlers handles HTTP requests for the service catalog.
type CatalogHandlers struct {
	catalogService services.CatalogService
}

func NewCatalogHandlers(catalogService services.CatalogService) *CatalogHandlers {
	return &CatalogHandlers{catalogService: catalogService}
}

// Create handles POST /services
func (h *CatalogHandlers) Create(c echo.Context) error {
	var req models.Service
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "Invalid request format", err)
	}

	if err := h.catalogService.Create(c.Request().Context(), &req); err != nil {
		return respondServiceError(c, err, "Failed to create service")
	}
	return common.RespondCreated(c, "Service created successfully", req)
}

// GetByID handles GET /services/:id
func (h *CatalogHandlers) GetByID(c echo.Context) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return common.SendValidationError(c, err)
	}

	svc, err := h.catalogService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err, "Service not found")
	}
	return common.RespondOK(c, "Service retrieved successfully", svc)
}

// Update handles PUT /services/:id
func (h *CatalogHandlers) Update(c echo.Context) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return common.SendValidationError(c, err)
	}

	var req models.Service
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "Invalid request format", err)
	}
	req.ID = id

	if err := h.catalogService.Update(c.Request().Context(), &req); err != nil {
		return respondServiceError(c, err, "Failed to update service")
	}
	return common.RespondOK(c, "Service updated successfully", req)
}

// Delete handles DELETE /services/:id
func (h *CatalogHandlers) Delete(c echo.Context) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return common.SendValidationError(c, err)
	}

	if err := h.catalogService.Delete(c.Request().Context(), id); err != nil {
		return respondServiceError(c, err, "Failed to delete service")
	}
	return common.RespondOK(c, "Service deleted successfully", nil)
}

// List handles GET /services
func (h *CatalogHandlers) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	services, err := h.catalogService.List(c.Request().Context(), page, limit)
	if err != nil {
		return respondServiceError(c, err, "Failed to list services")
	}
	return common.RespondOK(c, "Services retrieved successfully", services)
}

// UploadImage handles POST /services/:id/image
func (h *CatalogHandlers) UploadImage(c echo.Context) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return common.SendValidationError(c, err)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return common.RespondError(c, http.StatusBadRequest, "Image file is required", err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return common.RespondError(c, http.StatusBadRequest, "Failed to read image file", err)
	}
	defer file.Close()

	svc, err := h.catalogService.UploadImage(c.Request().Context(), id, fileHeader.Filename,
		file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return respondServiceError(c, err, "Failed to upload image")
	}
	return common.RespondOK(c, "Image uploaded successfully", svc)
}

func parseIntParam(c echo.Context, name string) (int, error) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil || value <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return value, nil
}
