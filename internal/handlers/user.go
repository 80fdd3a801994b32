package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gxmovies/backend/internal/apperr"
	"github.com/gxmovies/backend/internal/middleware/auth"
	"github.com/gxmovies/backend/internal/service"
)

type UserHandler struct {
	Users *service.UserService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) SendOTP(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.InvalidArgument("Invalid request body.")
	}
	if err := h.Users.SendRegistrationOTP(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return OK(c, "OTP sent successfully.", nil)
}

func (h *UserHandler) Register(c echo.Context) error {
	var req struct {
		service.Registration
		OTP string `json:"otp"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.InvalidArgument("Invalid request body.")
	}
	user, err := h.Users.ValidateOTPAndRegister(c.Request().Context(), req.Registration, req.OTP)
	if err != nil {
		return err
	}
	return Created(c, "User registered successfully.", user)
}

func (h *UserHandler) LoginUser(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.InvalidArgument("Invalid request body.")
	}
	user, token, err := h.Users.LoginUser(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return OK(c, "Login successful.", map[string]any{"user": user, "token": token})
}

func (h *UserHandler) LoginAdmin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.InvalidArgument("Invalid request body.")
	}
	admin, token, err := h.Users.LoginAdmin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return OK(c, "Login successful.", map[string]any{"user": admin, "token": token})
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathInt(c, "id")
	if err != nil {
		return err
	}
	user, err := h.Users.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return OK(c, "User fetched successfully.", user)
}

// Me resolves the caller from the identity the filter attached.
func (h *UserHandler) Me(c echo.Context) error {
	id, ok := auth.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required.")
	}
	user, err := h.Users.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return OK(c, "User fetched successfully.", user)
}

func (h *UserHandler) GetAll(c echo.Context) error {
	users, err := h.Users.GetAllUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return OK(c, "Users fetched successfully.", users)
}

func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathInt(c, "id")
	if err != nil {
		return err
	}
	var req service.UserUpdate
	if err := c.Bind(&req); err != nil {
		return apperr.InvalidArgument("Invalid request body.")
	}
	user, err := h.Users.UpdateUser(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return OK(c, "User updated successfully.", user)
}

func (h *UserHandler) Block(c echo.Context) error {
	id, err := pathInt(c, "id")
	if err != nil {
		return err
	}
	if err := h.Users.BlockUser(c.Request().Context(), id); err != nil {
		return err
	}
	return OK(c, "User blocked successfully.", nil)
}

func (h *UserHandler) Unblock(c echo.Context) error {
	id, err := pathInt(c, "id")
	if err != nil {
		return err
	}
	if err := h.Users.UnblockUser(c.Request().Context(), id); err != nil {
		return err
	}
	return OK(c, "User unblocked successfully.", nil)
}
