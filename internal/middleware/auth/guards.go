package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gxmovies/backend/internal/models"
)

// RequireUser rejects requests that reached the route without an attached
// identity.
func RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := UserID(c); !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required.")
		}
		return next(c)
	}
}

func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := UserID(c); !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required.")
		}
		if role, _ := Role(c); role != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "Admin access required.")
		}
		return next(c)
	}
}
