package handlers

import (
	"errors"
	"net/http"

	"corpsite/internal/common"
	"corpsite/internal/services"

	"github.com/labstack/echo/v4"
)

// respondServiceError maps service-layer sentinel errors onto HTTP status
// codes. Anything unrecognized is a 500 with the message only, so storage
// errors never leak to clients.
func respondServiceError(c echo.Context, err error, message string) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return common.RespondError(c, http.StatusNotFound, message, err)
	case errors.Is(err, services.ErrValidation):
		return common.RespondError(c, http.StatusBadRequest, message, err)
	case errors.Is(err, services.ErrUnauthorized):
		return common.RespondError(c, http.StatusUnauthorized, message, err)
	default:
		return common.SendServerError(c, message)
	}
}
