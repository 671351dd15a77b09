package profile

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/sessiondesk/internal/apperror"
	"github.com/keyxmakerx/sessiondesk/internal/plugins/auth"
)

// Handler processes HTTP requests for the profile plugin.
type Handler struct {
	svc ProfileService
}

// NewHandler creates a new profile Handler.
func NewHandler(svc ProfileService) *Handler {
	return &Handler{svc: svc}
}

// CurrentUser returns the caller as resolved by the auth gate. No query.
// GET /current-user
func (h *Handler) CurrentUser(c echo.Context) error {
	identity := auth.GetIdentity(c)
	if identity == nil {
		return apperror.NewUnauthenticated("no token provided")
	}
	return c.JSON(http.StatusOK, auth.UserProfile{
		ID:    identity.UserID,
		Email: identity.Email,
		Name:  identity.Name,
	})
}

// Update changes the caller's display name.
// PUT /update
func (h *Handler) Update(c echo.Context) error {
	identity := auth.GetIdentity(c)
	if identity == nil {
		return apperror.NewUnauthenticated("no token provided")
	}

	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	p, err := h.svc.UpdateName(c.Request().Context(), identity.UserID, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}
