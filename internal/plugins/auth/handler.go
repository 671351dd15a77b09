package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/sessiondesk/internal/apperror"
)

// Handler handles HTTP requests for sign-up, sign-in and sign-out.
// Handlers are thin: they bind the request, call the service, and write JSON.
type Handler struct {
	service AuthService
}

// NewHandler creates a new auth handler with the given service.
func NewHandler(service AuthService) *Handler {
	return &Handler{service: service}
}

// SignUp creates an account and returns its first session (POST /auth/sign-up).
func (h *Handler) SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	result, err := h.service.SignUp(c.Request().Context(), SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	}, clientMeta(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// SignIn issues a session for valid credentials (POST /auth/sign-in).
func (h *Handler) SignIn(c echo.Context) error {
	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	result, err := h.service.SignIn(c.Request().Context(), SignInInput{
		Email:    req.Email,
		Password: req.Password,
	}, clientMeta(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// SignOut invalidates the given session (POST /auth/sign-out). The token is
// read from the body, falling back to the Authorization header.
func (h *Handler) SignOut(c echo.Context) error {
	var req SignOutRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	token := req.Token
	if token == "" {
		token = c.Request().Header.Get(echo.HeaderAuthorization)
	}

	if err := h.service.SignOut(c.Request().Context(), token); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, SignOutResponse{Success: true})
}

// clientMeta captures the caller's IP and User-Agent for the session row.
func clientMeta(c echo.Context) ClientMeta {
	return ClientMeta{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
}
