package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gxmovies/backend/internal/apperr"
	"github.com/gxmovies/backend/internal/models"
	"github.com/gxmovies/backend/internal/notify"
)

func newMovieService(t *testing.T) *MovieService {
	t.Helper()
	return &MovieService{
		DB:          newTestDB(t),
		Broadcaster: notify.NewBroadcaster(),
	}
}

func TestAddMovie(t *testing.T) {
	svc := newMovieService(t)
	ch := svc.Broadcaster.Subscribe()
	defer svc.Broadcaster.Unsubscribe(ch)

	movie, err := svc.Add(context.Background(), models.Movie{
		Title: "Inception", Genre: "SciFi", Price: 199.0,
	})
	require.NoError(t, err)
	require.NotZero(t, movie.ID)
	require.Equal(t, models.MovieAvailable, movie.Status)

	select {
	case msg := <-ch:
		require.Equal(t, "A new movie has been added: Inception", msg)
	default:
		t.Fatal("expected a broadcast for the new movie")
	}
}

func TestAddMovieDuplicateTitle(t *testing.T) {
	svc := newMovieService(t)
	_, err := svc.Add(context.Background(), models.Movie{Title: "Inception", Price: 199.0})
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), models.Movie{Title: "Inception", Price: 99.0})
	require.Equal(t, apperr.KindAlreadyExists, apperr.KindOf(err))
	require.Contains(t, err.Error(), "Movie with this title already exists.")
}

func TestAddMovieEmptyTitle(t *testing.T) {
	svc := newMovieService(t)
	_, err := svc.Add(context.Background(), models.Movie{Price: 99.0})
	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestUpdateMovie(t *testing.T) {
	svc := newMovieService(t)
	m, err := svc.Add(context.Background(), models.Movie{Title: "Inception", Price: 199.0})
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), models.Movie{Title: "Arrival", Price: 149.0})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), m.ID, MovieUpdate{Genre: "Thriller", Price: 249.0})
	require.NoError(t, err)
	require.Equal(t, "Thriller", updated.Genre)
	require.Equal(t, 249.0, updated.Price)
	require.Equal(t, "Inception", updated.Title)

	_, err = svc.Update(context.Background(), m.ID, MovieUpdate{Title: "Arrival"})
	require.Equal(t, apperr.KindAlreadyExists, apperr.KindOf(err))

	_, err = svc.Update(context.Background(), 999, MovieUpdate{Genre: "Drama"})
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestToggleAvailability(t *testing.T) {
	svc := newMovieService(t)
	m, err := svc.Add(context.Background(), models.Movie{Title: "Inception", Price: 199.0})
	require.NoError(t, err)

	got, err := svc.ToggleAvailability(context.Background(), m.ID)
	require.NoError(t, err)
	require.Equal(t, models.MovieUnavailable, got.Status)

	got, err = svc.ToggleAvailability(context.Background(), m.ID)
	require.NoError(t, err)
	require.Equal(t, models.MovieAvailable, got.Status)
}

func TestGetAllAvailable(t *testing.T) {
	svc := newMovieService(t)
	m1, err := svc.Add(context.Background(), models.Movie{Title: "Inception", Price: 199.0})
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), models.Movie{Title: "Arrival", Price: 149.0})
	require.NoError(t, err)
	_, err = svc.ToggleAvailability(context.Background(), m1.ID)
	require.NoError(t, err)

	movies, err := svc.GetAllAvailable(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 1)
	require.Equal(t, "Arrival", movies[0].Title)

	all, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestGetByGenre(t *testing.T) {
	svc := newMovieService(t)
	_, err := svc.Add(context.Background(), models.Movie{Title: "Inception", Genre: "SciFi", Price: 199.0})
	require.NoError(t, err)
	hidden, err := svc.Add(context.Background(), models.Movie{Title: "Arrival", Genre: "SciFi", Price: 149.0})
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), models.Movie{Title: "Heat", Genre: "Crime", Price: 99.0})
	require.NoError(t, err)
	_, err = svc.ToggleAvailability(context.Background(), hidden.ID)
	require.NoError(t, err)

	movies, err := svc.GetByGenre(context.Background(), "SciFi")
	require.NoError(t, err)
	require.Len(t, movies, 1)
	require.Equal(t, "Inception", movies[0].Title)

	_, err = svc.GetByGenre(context.Background(), "")
	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}
