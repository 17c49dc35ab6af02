package handlers

import (
	"net/http"
	"strconv"

	"corpsite/internal/common"
	"corpsite/internal/models"
	"corpsite/internal/services"

	"github.com/labstack/echo/v4"
)

// ReviewHandlers handles HTTP requests for customer reviews.
type ReviewHandlers struct {
	reviewService services.ReviewService
}

func NewReviewHandlers(reviewService services.ReviewService) *ReviewHandlers {
	return &ReviewHandlers{reviewService: reviewService}
}

// Create handles POST /reviews
func (h *ReviewHandlers) Create(c echo.Context) error {
	var req models.Review
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "Invalid request format", err)
	}

	if err := h.reviewService.Create(c.Request().Context(), &req); err != nil {
		return respondServiceError(c, err, "Failed to create review")
	}
	return common.RespondCreated(c, "Review created successfully", req)
}

// GetByID handles GET /reviews/:id
func (h *ReviewHandlers) GetByID(c echo.Context) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return common.SendValidationError(c, err)
	}

	review, err := h.reviewService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err, "Review not found")
	}
	return common.RespondOK(c, "Review retrieved successfully", review)
}

// Update handles PUT /reviews/:id
func (h *ReviewHandlers) Update(c echo.Context) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return common.SendValidationError(c, err)
	}

	var req models.Review
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "Invalid request format", err)
	}
	req.ID = id

	if err := h.reviewService.Update(c.Request().Context(), &req); err != nil {
		return respondServiceError(c, err, "Failed to update review")
	}
	return common.RespondOK(c, "Review updated successfully", req)
}

// Delete handles DELETE /reviews/:id
func (h *ReviewHandlers) Delete(c echo.Context) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return common.SendValidationError(c, err)
	}

	if err := h.reviewService.Delete(c.Request().Context(), id); err != nil {
		return respondServiceError(c, err, "Failed to delete review")
	}
	return common.RespondOK(c, "Review deleted successfully", nil)
}

// List handles GET /reviews
func (h *ReviewHandlers) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	reviews, err := h.reviewService.List(c.Request().Context(), page, limit)
	if err != nil {
		return respondServiceError(c, err, "Failed to list reviews")
	}
	return common.RespondOK(c, "Reviews retrieved successfully", reviews)
}
