package handlers

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/gxmovies/backend/internal/apperr"
	"github.com/gxmovies/backend/internal/service/search"
	"github.com/gxmovies/backend/internal/util"
)

type SearchHandler struct {
	ES    *elasticsearch.Client
	Index string
}

func (h *SearchHandler) Search(c echo.Context) error {
	// the server runs without a search index when Elasticsearch is down
	if h.ES == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Search is currently unavailable.")
	}

	query := c.QueryParam("q")
	if query == "" {
		return apperr.InvalidArgument("Query cannot be null or empty.")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, movies, err := search.Search(c.Request().Context(), h.ES, h.Index, query, from, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: "Search results fetched successfully.",
		Data: map[string]any{
			"items": movies,
			"meta": map[string]any{
				"page":  page,
				"size":  limit,
				"total": total,
			},
		},
	})
}
