package handlers

import (
	"net/http"
	"strconv"

	"corpsite/internal/common"
	"corpsite/internal/models"
	"corpsite/internal/services"

	"github.com/labstack/echo/v4"
)

// ContactHandlers handles HTTP requests for contact-form submissions.
type ContactHandlers struct {
	contactService services.ContactService
}

func NewContactHandlers(contactService services.ContactService) *ContactHandlers {
	return &ContactHandlers{contactService: contactService}
}

// Create handles POST /contacts. This is the public contact form.
func (h *ContactHandlers) Create(c echo.Context) error {
	var req models.Contact
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "Invalid request format", err)
	}

	if err := h.contactService.Create(c.Request().Context(), &req); err != nil {
		return respondServiceError(c, err, "Failed to submit contact")
	}
	return common.RespondCreated(c, "Contact submitted successfully", req)
}

// GetByID handles GET /contacts/:id
func (h *ContactHandlers) GetByID(c echo.Context) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return common.SendValidationError(c, err)
	}

	contact, err := h.contactService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err, "Contact not found")
	}
	return common.RespondOK(c, "Contact retrieved successfully", contact)
}

// Delete handles DELETE /contacts/:id
func (h *ContactHandlers) Delete(c echo.Context) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return common.SendValidationError(c, err)
	}

	if err := h.contactService.Delete(c.Request().Context(), id); err != nil {
		return respondServiceError(c, err, "Failed to delete contact")
	}
	return common.RespondOK(c, "Contact deleted successfully", nil)
}

// List handles GET /contacts
func (h *ContactHandlers) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	contacts, err := h.contactService.List(c.Request().Context(), page, limit)
	if err != nil {
		return respondServiceError(c, err, "Failed to list contacts")
	}
	return common.RespondOK(c, "Contacts retrieved successfully", contacts)
}
