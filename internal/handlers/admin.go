package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/gxmovies/backend/internal/service"
)

type AdminHandler struct {
	Admin *service.AdminService
}

func (h *AdminHandler) Summary(c echo.Context) error {
	sum, err := h.Admin.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	return OK(c, "Summary fetched successfully.", sum)
}

func (h *AdminHandler) ChartData(c echo.Context) error {
	data, err := h.Admin.ChartData(c.Request().Context(), c.QueryParam("type"))
	if err != nil {
		return err
	}
	return OK(c, "Chart data fetched successfully.", data)
}
