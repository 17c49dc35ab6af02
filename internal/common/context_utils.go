package common

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
)

// Envelope is the response shape every endpoint returns: a success flag, a
// human-readable message and the payload.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RespondOK sends a 200 envelope.
func RespondOK(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// RespondCreated sends a 201 envelope.
func RespondCreated(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// RespondError sends an error envelope with the given status code.
func RespondError(c echo.Context, status int, message string, err error) error {
	env := Envelope{Success: false, Message: message}
	if err != nil {
		env.Error = err.Error()
	}
	return c.JSON(status, env)
}

// SendNotFoundError sends a 404 envelope for a missing resource.
func SendNotFoundError(c echo.Context, resource string) error {
	return RespondError(c, http.StatusNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// SendValidationError sends a 400 envelope for a failed validation.
func SendValidationError(c echo.Context, err error) error {
	return RespondError(c, http.StatusBadRequest, "Validation failed", err)
}

// SendServerError sends a 500 envelope without leaking the underlying error.
func SendServerError(c echo.Context, message string) error {
	return RespondError(c, http.StatusInternalServerError, message, nil)
}

// ValidateRequiredString validates required string fields.
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidatePositiveInteger validates positive integer values with upper bounds.
func ValidatePositiveInteger(value int, fieldName string, maxValue int) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive", fieldName)
	}
	if value > maxValue {
		return fmt.Errorf("%s cannot exceed %d", fieldName, maxValue)
	}
	return nil
}

// ValidateStarRating validates a star rating, which must be between 1 and 5.
func ValidateStarRating(star int) error {
	if star < 1 || star > 5 {
		return fmt.Errorf("star must be between 1 and 5")
	}
	return nil
}

// ParseDate parses YYYY-MM-DD query parameters.
func ParseDate(dateStr, fieldName string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be in YYYY-MM-DD format", fieldName)
	}
	return date, nil
}

// NormalizePagination applies the default page size and clamps out-of-range
// values. Pages are 1-indexed.
func NormalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// TotalPages computes ceil(total/limit) for pagination envelopes.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

// SafeString safely handles string pointer operations.
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetUserIDFromContext extracts the authenticated user ID from the request
// context.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}
