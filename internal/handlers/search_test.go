package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestSearchWithoutElasticsearch(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/movies/search?q=inception", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := &SearchHandler{} // ES nil: index was unreachable at startup

	var err error
	require.NotPanics(t, func() { err = h.Search(c) })

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusServiceUnavailable, he.Code)
	require.Equal(t, "Search is currently unavailable.", he.Message)
}
