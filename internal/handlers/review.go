package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/gxmovies/backend/internal/apperr"
	"github.com/gxmovies/backend/internal/service"
)

type ReviewHandler struct {
	Reviews *service.ReviewService
}

func (h *ReviewHandler) Create(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req struct {
		MovieID    int    `json:"movieId"`
		ReviewText string `json:"reviewText"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.InvalidArgument("Invalid request body.")
	}
	review, err := h.Reviews.Create(c.Request().Context(), userID, req.MovieID, req.ReviewText)
	if err != nil {
		return err
	}
	return Created(c, "Review added successfully.", review)
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	id, err := pathInt(c, "id")
	if err != nil {
		return err
	}
	if err := h.Reviews.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return OK(c, "Review deleted successfully.", nil)
}

func (h *ReviewHandler) ByMovie(c echo.Context) error {
	movieID, err := pathInt(c, "movieId")
	if err != nil {
		return err
	}
	reviews, err := h.Reviews.ByMovie(c.Request().Context(), movieID)
	if err != nil {
		return err
	}
	return OK(c, "Reviews fetched successfully.", reviews)
}

func (h *ReviewHandler) Report(c echo.Context) error {
	id, err := pathInt(c, "id")
	if err != nil {
		return err
	}
	msg, err := h.Reviews.Report(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return OK(c, msg, nil)
}

func (h *ReviewHandler) Reported(c echo.Context) error {
	reviews, err := h.Reviews.Reported(c.Request().Context())
	if err != nil {
		return err
	}
	return OK(c, "Reported reviews fetched successfully.", reviews)
}
