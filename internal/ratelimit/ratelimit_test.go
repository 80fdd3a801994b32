package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/gxmovies/backend/internal/middleware/auth"
)

func TestAdmitExhaustsBucket(t *testing.T) {
	l := NewLimiter()

	for i := 0; i < DefaultCapacity; i++ {
		require.True(t, l.Admit(1), "call %d should be admitted", i+1)
	}
	require.False(t, l.Admit(1), "call past capacity must be rejected")
	require.False(t, l.Admit(1))

	// a different user id gets its own bucket
	require.True(t, l.Admit(2))
}

func TestAdmitRefillsAfterInterval(t *testing.T) {
	now := time.Now()
	l := NewLimiter()
	l.Capacity = 2
	l.Now = func() time.Time { return now }

	require.True(t, l.Admit(1))
	require.True(t, l.Admit(1))
	require.False(t, l.Admit(1))

	now = now.Add(59 * time.Second)
	require.False(t, l.Admit(1), "no refill before the interval elapses")

	now = now.Add(2 * time.Second)
	require.True(t, l.Admit(1), "batch refill after the interval")
}

func TestAdmitConcurrent(t *testing.T) {
	l := NewLimiter()
	l.Capacity = 50

	var admitted int64
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Admit(1) {
				atomic.AddInt64(&admitted, 1)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 50, admitted, "exactly capacity consumes must succeed")
}

func TestMiddleware(t *testing.T) {
	l := NewLimiter()
	l.Capacity = 1

	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	mw := Middleware(l, nil)(next)

	do := func(path string, userID int) (*httptest.ResponseRecorder, error) {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if userID != 0 {
			c.Set(auth.ContextUserID, userID)
		}
		return rec, mw(c)
	}

	// exempt prefixes never consume tokens
	for i := 0; i < 5; i++ {
		rec, err := do("/api/users/auth/user-login", 0)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// anonymous requests are rejected before any bucket lookup
	_, err := do("/api/movies", 0)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
	require.Equal(t, "Unauthorized: Missing or invalid token", he.Message)

	rec, err := do("/api/movies", 1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	_, err = do("/api/movies", 1)
	he, ok = err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusTooManyRequests, he.Code)
	require.Equal(t, "Too many requests.", he.Message)

	// a second identity consumes its own bucket
	rec, err = do("/api/movies", 2)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
}
