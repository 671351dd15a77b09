package sessions

import (
	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/sessiondesk/internal/plugins/auth"
)

// RegisterRoutes sets up the session management routes. Both require auth.
func RegisterRoutes(e *echo.Echo, h *Handler, authSvc auth.AuthService) {
	g := e.Group("/sessions", auth.RequireAuth(authSvc))
	g.GET("", h.ListSessions)
	g.DELETE("/:id", h.RevokeSession)
}
