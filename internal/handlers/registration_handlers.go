package handlers

import (
	"net/http"
	"strconv"

	"corpsite/internal/common"
	"corpsite/internal/models"
	"corpsite/internal/services"

	"github.com/labstack/echo/v4"
)

// RegistrationHandlers handles HTTP requests for service registrations.
type RegistrationHandlers struct {
	registrationService services.RegistrationService
}

func NewRegistrationHandlers(registrationService services.RegistrationService) *RegistrationHandlers {
	return &RegistrationHandlers{registrationService: registrationService}
}

// Create handles POST /service-registrations
func (h *RegistrationHandlers) Create(c echo.Context) error {
	var req services.CreateRegistrationInput
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "Invalid request format", err)
	}
	if err := c.Validate(&req); err != nil {
		return common.SendValidationError(c, err)
	}

	reg, err := h.registrationService.Create(c.Request().Context(), &req)
	if err != nil {
		return respondServiceError(c, err, "Failed to create registration")
	}
	return common.RespondCreated(c, "Registration created successfully", reg)
}

// GetByID handles GET /service-registrations/:id
func (h *RegistrationHandlers) GetByID(c echo.Context) error {
	reg, err := h.registrationService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondServiceError(c, err, "Registration not found")
	}
	return common.RespondOK(c, "Registration retrieved successfully", reg)
}

// Update handles PUT /service-registrations/:id
func (h *RegistrationHandlers) Update(c echo.Context) error {
	var req services.UpdateRegistrationInput
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "Invalid request format", err)
	}

	reg, err := h.registrationService.Update(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return respondServiceError(c, err, "Failed to update registration")
	}
	return common.RespondOK(c, "Registration updated successfully", reg)
}

// Extend handles PATCH /service-registrations/:id/extend
func (h *RegistrationHandlers) Extend(c echo.Context) error {
	var req services.ExtendRegistrationInput
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "Invalid request format", err)
	}

	reg, err := h.registrationService.Extend(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return respondServiceError(c, err, "Failed to extend registration")
	}
	return common.RespondOK(c, "Registration extended successfully", reg)
}

// SoftDelete handles DELETE /service-registrations/:id
func (h *RegistrationHandlers) SoftDelete(c echo.Context) error {
	reg, err := h.registrationService.SoftDelete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondServiceError(c, err, "Failed to cancel registration")
	}
	return common.RespondOK(c, "Registration cancelled successfully", reg)
}

// PermanentDelete handles DELETE /service-registrations/:id/permanent
func (h *RegistrationHandlers) PermanentDelete(c echo.Context) error {
	if err := h.registrationService.PermanentDelete(c.Request().Context(), c.Param("id")); err != nil {
		return respondServiceError(c, err, "Failed to delete registration")
	}
	return common.RespondOK(c, "Registration deleted permanently", nil)
}

// List handles GET /service-registrations
func (h *RegistrationHandlers) List(c echo.Context) error {
	filter, err := parseRegistrationFilter(c)
	if err != nil {
		return common.SendValidationError(c, err)
	}

	page, err := h.registrationService.List(c.Request().Context(), filter)
	if err != nil {
		return respondServiceError(c, err, "Failed to list registrations")
	}
	return common.RespondOK(c, "Registrations retrieved successfully", page)
}

// ExpiringSoon handles GET /service-registrations/expiring/soon
func (h *RegistrationHandlers) ExpiringSoon(c echo.Context) error {
	days := 0
	if v := c.QueryParam("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return common.RespondError(c, http.StatusBadRequest, "days must be a positive integer", nil)
		}
		days = parsed
	}

	regs, err := h.registrationService.ExpiringSoon(c.Request().Context(), days)
	if err != nil {
		return respondServiceError(c, err, "Failed to list expiring registrations")
	}
	return common.RespondOK(c, "Expiring registrations retrieved successfully", regs)
}

// ListExpired handles GET /service-registrations/expired/list
func (h *RegistrationHandlers) ListExpired(c echo.Context) error {
	regs, err := h.registrationService.Expired(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err, "Failed to list expired registrations")
	}
	return common.RespondOK(c, "Expired registrations retrieved successfully", regs)
}

// SweepExpired handles POST /service-registrations/expired/update
func (h *RegistrationHandlers) SweepExpired(c echo.Context) error {
	affected, err := h.registrationService.SweepExpired(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err, "Failed to sweep expired registrations")
	}
	return common.RespondOK(c, "Expired registrations updated", map[string]int64{"updated": affected})
}

// Stats handles GET /service-registrations/stats/overview
func (h *RegistrationHandlers) Stats(c echo.Context) error {
	stats, err := h.registrationService.Statistics(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err, "Failed to compute registration statistics")
	}
	return common.RespondOK(c, "Registration statistics retrieved successfully", stats)
}

func parseRegistrationFilter(c echo.Context) (*models.RegistrationFilter, error) {
	filter := &models.RegistrationFilter{
		Status:        c.QueryParam("status"),
		PaymentStatus: c.QueryParam("payment_status"),
	}

	if v := c.QueryParam("expiring_in_days"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days <= 0 {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "expiring_in_days must be a positive integer")
		}
		filter.ExpiringInDays = days
	}
	if v := c.QueryParam("start_date"); v != "" {
		date, err := common.ParseDate(v, "start_date")
		if err != nil {
			return nil, err
		}
		filter.StartDate = &date
	}
	if v := c.QueryParam("end_date"); v != "" {
		date, err := common.ParseDate(v, "end_date")
		if err != nil {
			return nil, err
		}
		filter.EndDate = &date
	}
	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	return filter, nil
}
