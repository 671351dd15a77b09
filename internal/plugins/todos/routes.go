package todos

import "github.com/labstack/echo/v4"

// RegisterRoutes sets up the public todo route.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/todos", h.List)
}
