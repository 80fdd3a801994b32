package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/gxmovies/backend/internal/apperr"
	"github.com/gxmovies/backend/internal/models"
	"github.com/gxmovies/backend/internal/service"
)

type MovieHandler struct {
	Movies *service.MovieService
}

func (h *MovieHandler) Add(c echo.Context) error {
	var movie models.Movie
	if err := c.Bind(&movie); err != nil {
		return apperr.InvalidArgument("Invalid request body.")
	}
	created, err := h.Movies.Add(c.Request().Context(), movie)
	if err != nil {
		return err
	}
	return Created(c, "Movie added successfully.", created)
}

func (h *MovieHandler) Update(c echo.Context) error {
	id, err := pathInt(c, "id")
	if err != nil {
		return err
	}
	var req service.MovieUpdate
	if err := c.Bind(&req); err != nil {
		return apperr.InvalidArgument("Invalid request body.")
	}
	movie, err := h.Movies.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return OK(c, "Movie updated successfully.", movie)
}

// Delete toggles availability rather than removing the row.
func (h *MovieHandler) Delete(c echo.Context) error {
	id, err := pathInt(c, "id")
	if err != nil {
		return err
	}
	movie, err := h.Movies.ToggleAvailability(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return OK(c, "Movie status updated successfully.", movie)
}

func (h *MovieHandler) Get(c echo.Context) error {
	id, err := pathInt(c, "id")
	if err != nil {
		return err
	}
	movie, err := h.Movies.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return OK(c, "Movie fetched successfully.", movie)
}

func (h *MovieHandler) GetAll(c echo.Context) error {
	movies, err := h.Movies.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return OK(c, "Movies fetched successfully.", movies)
}

func (h *MovieHandler) GetAvailable(c echo.Context) error {
	movies, err := h.Movies.GetAllAvailable(c.Request().Context())
	if err != nil {
		return err
	}
	return OK(c, "Movies fetched successfully.", movies)
}

func (h *MovieHandler) GetByGenre(c echo.Context) error {
	movies, err := h.Movies.GetByGenre(c.Request().Context(), c.Param("genre"))
	if err != nil {
		return err
	}
	return OK(c, "Movies fetched successfully.", movies)
}
