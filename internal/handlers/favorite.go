package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/gxmovies/backend/internal/service"
)

type FavoriteHandler struct {
	Favorites *service.FavoriteService
}

func (h *FavoriteHandler) Add(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	movieID, err := pathInt(c, "movieId")
	if err != nil {
		return err
	}
	fav, err := h.Favorites.Add(c.Request().Context(), userID, movieID)
	if err != nil {
		return err
	}
	return Created(c, "Movie added to favorites.", fav)
}

func (h *FavoriteHandler) List(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	movies, err := h.Favorites.Movies(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return OK(c, "Favorites fetched successfully.", movies)
}

func (h *FavoriteHandler) RemoveByID(c echo.Context) error {
	favID, err := pathInt(c, "id")
	if err != nil {
		return err
	}
	if err := h.Favorites.RemoveByID(c.Request().Context(), favID); err != nil {
		return err
	}
	return OK(c, "Movie removed from favorites.", nil)
}

func (h *FavoriteHandler) Remove(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	movieID, err := pathInt(c, "movieId")
	if err != nil {
		return err
	}
	if err := h.Favorites.Remove(c.Request().Context(), userID, movieID); err != nil {
		return err
	}
	return OK(c, "Movie removed from favorites.", nil)
}

func (h *FavoriteHandler) Contains(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	movieID, err := pathInt(c, "movieId")
	if err != nil {
		return err
	}
	ok, err := h.Favorites.Contains(c.Request().Context(), userID, movieID)
	if err != nil {
		return err
	}
	return OK(c, "Favorites checked successfully.", ok)
}
