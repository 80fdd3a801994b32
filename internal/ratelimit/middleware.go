package ratelimit

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gxmovies/backend/internal/middleware/auth"
)

// DefaultExemptPrefixes lists route prefixes that never consume tokens:
// the authentication endpoints, the notification stream and health probes.
var DefaultExemptPrefixes = []string{"/api/users/auth/", "/notifications", "/health"}

// Middleware admits one request per token per authenticated user. Requests to
// an exempt prefix pass through untouched. Identity comes from the auth filter
// upstream; requests it left anonymous are rejected before any bucket lookup,
// because identity is required to rate-limit.
func Middleware(l *Limiter, exempt []string) echo.MiddlewareFunc {
	if exempt == nil {
		exempt = DefaultExemptPrefixes
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, p := range exempt {
				if strings.HasPrefix(path, p) {
					return next(c)
				}
			}

			userID, ok := auth.UserID(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized: Missing or invalid token")
			}

			if !l.Admit(userID) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests.")
			}
			return next(c)
		}
	}
}
