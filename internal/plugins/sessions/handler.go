package sessions

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/sessiondesk/internal/apperror"
	"github.com/keyxmakerx/sessiondesk/internal/plugins/auth"
)

// Handler processes HTTP requests for the sessions plugin.
type Handler struct {
	svc SessionService
}

// NewHandler creates a new sessions Handler.
func NewHandler(svc SessionService) *Handler {
	return &Handler{svc: svc}
}

// ListSessions returns the caller's sessions.
// GET /sessions
func (h *Handler) ListSessions(c echo.Context) error {
	identity := auth.GetIdentity(c)
	if identity == nil {
		return apperror.NewUnauthenticated("no token provided")
	}

	list, err := h.svc.ListSessions(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ListResponse{Sessions: list})
}

// RevokeSession signs out the session named in the path.
// DELETE /sessions/:id
func (h *Handler) RevokeSession(c echo.Context) error {
	if err := h.svc.RevokeSession(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, RevokeResponse{Success: true})
}
