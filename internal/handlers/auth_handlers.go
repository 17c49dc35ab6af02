package handlers

import (
	"net/http"

	"corpsite/internal/common"
	"corpsite/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles admin authentication endpoints.
type AuthHandlers struct {
	authService services.AuthService
}

func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// Login handles POST /auth/login
func (h *AuthHandlers) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "Invalid request format", err)
	}
	if err := c.Validate(&req); err != nil {
		return common.SendValidationError(c, err)
	}

	tokens, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondServiceError(c, err, "Login failed")
	}
	return common.RespondOK(c, "Login successful", tokens)
}

// Register handles POST /auth/register
func (h *AuthHandlers) Register(c echo.Context) error {
	var req struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "Invalid request format", err)
	}
	if err := c.Validate(&req); err != nil {
		return common.SendValidationError(c, err)
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return respondServiceError(c, err, "Registration failed")
	}
	return common.RespondCreated(c, "Account created successfully", user)
}

// Refresh handles POST /auth/refresh
func (h *AuthHandlers) Refresh(c echo.Context) error {
	var req struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "Invalid request format", err)
	}
	if err := c.Validate(&req); err != nil {
		return common.SendValidationError(c, err)
	}

	tokens, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return respondServiceError(c, err, "Token refresh failed")
	}
	return common.RespondOK(c, "Token refreshed successfully", tokens)
}

// Logout handles POST /auth/logout
func (h *AuthHandlers) Logout(c echo.Context) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "Invalid request format", err)
	}

	if err := h.authService.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return respondServiceError(c, err, "Logout failed")
	}
	return common.RespondOK(c, "Logged out successfully", nil)
}

// Me handles GET /auth/me
func (h *AuthHandlers) Me(c echo.Context) error {
	userID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return common.RespondError(c, http.StatusUnauthorized, "Not authenticated", nil)
	}

	user, err := h.authService.Me(c.Request().Context(), userID)
	if err != nil {
		return respondServiceError(c, err, "User not found")
	}
	return common.RespondOK(c, "User retrieved successfully", user)
}
