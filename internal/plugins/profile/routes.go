package profile

import (
	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/sessiondesk/internal/plugins/auth"
)

// RegisterRoutes sets up the profile routes. Both require auth.
func RegisterRoutes(e *echo.Echo, h *Handler, authSvc auth.AuthService) {
	requireAuth := auth.RequireAuth(authSvc)
	e.GET("/current-user", h.CurrentUser, requireAuth)
	e.PUT("/update", h.Update, requireAuth)
}
