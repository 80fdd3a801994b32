// Package auth carries the per-request identity pipeline: a filter that
// authenticates the bearer token and attaches {userID, role} to the echo
// context, plus route guards consuming that identity.
package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/gxmovies/backend/internal/models"
	"github.com/gxmovies/backend/internal/token"
)

const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

type Filter struct {
	DB     *gorm.DB
	Tokens *token.Service
}

// Middleware implements the request state machine:
//
//	no token                -> anonymous, forward
//	invalid/expired token   -> 401 "Invalid or expired token."
//	valid, unknown user id  -> anonymous, forward
//	valid, user blocked     -> 401 "User is blocked."
//	valid, user active      -> identity attached, forward
func (f *Filter) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := BearerToken(c.Request())
		if raw == "" {
			return next(c)
		}

		id, err := f.Tokens.Validate(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token.")
		}

		var user models.User
		if err := f.DB.First(&user, id.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return next(c)
			}
			return err
		}
		if user.Status == models.StatusBlocked {
			return echo.NewHTTPError(http.StatusUnauthorized, "User is blocked.")
		}

		c.Set(ContextUserID, id.UserID)
		c.Set(ContextRole, id.Role)
		return next(c)
	}
}

func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// UserID returns the authenticated user id, if the filter attached one.
func UserID(c echo.Context) (int, bool) {
	id, ok := c.Get(ContextUserID).(int)
	return id, ok
}

func Role(c echo.Context) (string, bool) {
	role, ok := c.Get(ContextRole).(string)
	return role, ok
}
