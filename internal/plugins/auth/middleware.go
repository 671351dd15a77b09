package auth

import (
	"github.com/labstack/echo/v4"
)

// contextKeyIdentity is the Echo context key holding the caller's Identity.
const contextKeyIdentity = "auth_identity"

// RequireAuth returns middleware that runs the auth gate on the Authorization
// header and stores the resulting Identity for downstream handlers. Failures
// are returned as Unauthenticated errors for the app error handler to render.
func RequireAuth(service AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := service.Authenticate(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return err
			}

			c.Set(contextKeyIdentity, identity)
			return next(c)
		}
	}
}

// GetIdentity retrieves the authenticated Identity from the Echo context.
// Returns nil if the request did not pass through RequireAuth.
func GetIdentity(c echo.Context) *Identity {
	identity, ok := c.Get(contextKeyIdentity).(*Identity)
	if !ok {
		return nil
	}
	return identity
}
