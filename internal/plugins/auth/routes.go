package auth

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/keyxmakerx/sessiondesk/internal/middleware"
)

// RegisterRoutes sets up the auth library endpoints. They are public; the
// RequireAuth middleware is exported separately for other plugins.
//
// Sign-in and sign-up are rate-limited per IP against credential stuffing:
// 10 attempts per minute for sign-in, 5 for sign-up.
func RegisterRoutes(e *echo.Echo, h *Handler, rdb redis.UniversalClient) {
	g := e.Group("/auth")

	g.POST("/sign-up", h.SignUp, middleware.RateLimit(rdb, "sign-up", 5, time.Minute))
	g.POST("/sign-in", h.SignIn, middleware.RateLimit(rdb, "sign-in", 10, time.Minute))
	g.POST("/sign-out", h.SignOut)
}
