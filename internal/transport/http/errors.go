package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gxmovies/backend/internal/apperr"
	"github.com/gxmovies/backend/internal/handlers"
	"github.com/gxmovies/backend/internal/logging"
)

// ErrorHandler maps service errors onto HTTP statuses and the response
// envelope. Internal errors are logged but never leak details to the client.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		_ = c.JSON(he.Code, handlers.Envelope{Success: false, Message: msg})
		return
	}

	var ae *apperr.Error
	if errors.As(err, &ae) {
		code := http.StatusInternalServerError
		message := ae.Message
		switch ae.Kind {
		case apperr.KindNotFound:
			code = http.StatusNotFound
		case apperr.KindAlreadyExists:
			code = http.StatusConflict
		case apperr.KindInvalidCredential:
			code = http.StatusUnauthorized
		case apperr.KindPaymentFailed:
			code = http.StatusPaymentRequired
		case apperr.KindInvalidArgument:
			code = http.StatusBadRequest
		}
		if code == http.StatusInternalServerError {
			logging.FromContext(c.Request().Context()).Error("internal_error", "error", err)
			message = "Internal server error."
		}
		_ = c.JSON(code, handlers.Envelope{Success: false, Message: message})
		return
	}

	logging.FromContext(c.Request().Context()).Error("internal_error", "error", err)
	_ = c.JSON(http.StatusInternalServerError, handlers.Envelope{
		Success: false,
		Message: "Internal server error.",
	})
}
