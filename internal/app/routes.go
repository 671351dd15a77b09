package app

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/sessiondesk/internal/database"
	"github.com/keyxmakerx/sessiondesk/internal/plugins/auth"
	"github.com/keyxmakerx/sessiondesk/internal/plugins/profile"
	"github.com/keyxmakerx/sessiondesk/internal/plugins/sessions"
	"github.com/keyxmakerx/sessiondesk/internal/plugins/todos"
)

// RegisterRoutes sets up all application routes. It registers public routes
// directly and delegates to each plugin's route registration function.
//
// This is the single place where all routes are aggregated. When a new
// plugin is added, its routes are registered here.
func (a *App) RegisterRoutes() {
	e := a.Echo

	// --- Public Routes (no auth required) ---

	// Health check for container orchestration.
	e.GET("/healthz", a.healthz)

	// --- Plugin Wiring ---

	// auth plugin: owns users and sessions, exposes the auth gate.
	authSvc := auth.NewAuthService(
		auth.NewUserRepository(a.DB),
		auth.NewSessionRepository(a.DB),
		a.Config.Auth.SessionTTL,
		a.Config.Auth.SessionUpdateAge,
	)
	auth.RegisterRoutes(e, auth.NewHandler(authSvc), a.Redis)

	// todos plugin (public)
	todos.RegisterRoutes(e, todos.NewHandler(todos.NewTodoService(todos.NewTodoRepository(a.DB))))

	// profile plugin (authenticated)
	profile.RegisterRoutes(e, profile.NewHandler(profile.NewProfileService(profile.NewProfileRepository(a.DB))), authSvc)

	// sessions plugin (authenticated). Revocation signs out through authSvc.
	sessionSvc := sessions.NewSessionService(sessions.NewSessionRepository(a.DB), authSvc)
	sessions.RegisterRoutes(e, sessions.NewHandler(sessionSvc), authSvc)
}

// healthz reports MariaDB and Redis reachability. 503 if either is down.
func (a *App) healthz(c echo.Context) error {
	checks, healthy := database.Health(c.Request().Context(), a.DB, a.Redis)

	status, code := "ok", http.StatusOK
	if !healthy {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	return c.JSON(code, map[string]any{
		"status": status,
		"checks": checks,
	})
}
