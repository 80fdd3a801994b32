package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gxmovies/backend/internal/apperr"
	"github.com/gxmovies/backend/internal/middleware/auth"
	"github.com/gxmovies/backend/internal/service"
)

type CartHandler struct {
	Carts *service.CartService
}

func callerID(c echo.Context) (int, error) {
	id, ok := auth.UserID(c)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required.")
	}
	return id, nil
}

func (h *CartHandler) Add(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	movieID, err := pathInt(c, "movieId")
	if err != nil {
		return err
	}
	item, err := h.Carts.Add(c.Request().Context(), userID, movieID)
	if err != nil {
		return err
	}
	return Created(c, "Movie added to cart.", item)
}

func (h *CartHandler) List(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	movies, err := h.Carts.Movies(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return OK(c, "Cart fetched successfully.", movies)
}

func (h *CartHandler) Remove(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	movieID, err := pathInt(c, "movieId")
	if err != nil {
		return err
	}
	if err := h.Carts.Remove(c.Request().Context(), userID, movieID); err != nil {
		return err
	}
	return OK(c, "Movie removed from cart.", nil)
}

func (h *CartHandler) RemoveMany(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req struct {
		MovieIDs []int `json:"movieIds"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.InvalidArgument("Invalid request body.")
	}
	if err := h.Carts.RemoveMany(c.Request().Context(), userID, req.MovieIDs); err != nil {
		return err
	}
	return OK(c, "Movies removed from cart.", nil)
}

func (h *CartHandler) Clear(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	if err := h.Carts.Clear(c.Request().Context(), userID); err != nil {
		return err
	}
	return OK(c, "Cart cleared successfully.", nil)
}

func (h *CartHandler) Contains(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	movieID, err := pathInt(c, "movieId")
	if err != nil {
		return err
	}
	ok, err := h.Carts.Contains(c.Request().Context(), userID, movieID)
	if err != nil {
		return err
	}
	return OK(c, "Cart checked successfully.", ok)
}
