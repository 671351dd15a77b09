package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CORSConfig holds configuration for the CORS middleware.
type CORSConfig struct {
	// AllowedOrigins is the list of origins permitted to make cross-origin
	// requests, typically the web front end (e.g. "http://localhost:3000").
	// Use ["*"] to allow all.
	AllowedOrigins []string

	// AllowCredentials indicates whether the browser may include credentials.
	AllowCredentials bool
}

// corsAllowedMethods covers every method the route table registers.
var corsAllowedMethods = strings.Join([]string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodOptions,
}, ", ")

// corsAllowedHeaders must include Authorization for the bearer token.
var corsAllowedHeaders = strings.Join([]string{
	"Content-Type",
	"Authorization",
	"X-Requested-With",
}, ", ")

// CORS returns middleware that handles Cross-Origin Resource Sharing headers
// for the browser front end, which is served from a different origin than
// the API.
func CORS(cfg CORSConfig) echo.MiddlewareFunc {
	allowAll := false
	originSet := make(map[string]bool)
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			allowAll = true
		}
		originSet[o] = true
	}

	// SECURITY: Wildcard origin with credentials lets any website make
	// authenticated requests. Refuse to send credentials in that case.
	if allowAll && cfg.AllowCredentials {
		slog.Warn("CORS misconfiguration: AllowedOrigins=['*'] with AllowCredentials=true; credentials will NOT be sent")
		cfg.AllowCredentials = false
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			origin := req.Header.Get("Origin")

			// No Origin header means same-origin or non-browser client.
			if origin == "" {
				return next(c)
			}

			if !allowAll && !originSet[origin] {
				// The browser will block the response on the client side.
				return next(c)
			}

			res.Header().Set("Access-Control-Allow-Origin", origin)
			res.Header().Add("Vary", "Origin")
			if cfg.AllowCredentials {
				res.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if req.Method == http.MethodOptions {
				res.Header().Set("Access-Control-Allow-Methods", corsAllowedMethods)
				res.Header().Set("Access-Control-Allow-Headers", corsAllowedHeaders)
				res.Header().Set("Access-Control-Max-Age", "3600")
				return c.NoContent(http.StatusNoContent)
			}

			res.Header().Set("Access-Control-Expose-Headers", "Retry-After, X-RateLimit-Limit, X-RateLimit-Remaining")
			return next(c)
		}
	}
}
