package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"gorm.io/gorm"

	"github.com/gxmovies/backend/internal/apperr"
	"github.com/gxmovies/backend/internal/logging"
	"github.com/gxmovies/backend/internal/models"
	"github.com/gxmovies/backend/internal/mykafka"
	"github.com/gxmovies/backend/internal/notify"
)

type MovieService struct {
	DB          *gorm.DB
	Broadcaster *notify.Broadcaster
	ES          *elasticsearch.Client
	Index       string
	Producer    *mykafka.Producer
	Now         func() time.Time
}

type MovieUpdate struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Genre         string    `json:"genre"`
	ReleaseDate   time.Time `json:"releaseDate"`
	AverageRating float64   `json:"averageRating"`
	Price         float64   `json:"price"`
	PosterURL     string    `json:"posterUrl"`
	TrailerURL    string    `json:"trailerUrl"`
}

func (s *MovieService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Add stores a new movie, announces it to connected clients and mirrors it
// into the search index. Indexing and event publishing are best effort.
func (s *MovieService) Add(ctx context.Context, movie models.Movie) (models.Movie, error) {
	if movie.Title == "" {
		return models.Movie{}, apperr.InvalidArgument("Movie or title cannot be null or empty.")
	}

	var existing models.Movie
	err := s.DB.WithContext(ctx).Where("title = ?", movie.Title).First(&existing).Error
	if err == nil {
		return models.Movie{}, apperr.AlreadyExists("Movie with this title already exists.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Movie{}, err
	}

	if movie.Status == "" {
		movie.Status = models.MovieAvailable
	}
	movie.CreatedAt = s.now()
	if err := s.DB.WithContext(ctx).Create(&movie).Error; err != nil {
		return models.Movie{}, err
	}

	if s.Broadcaster != nil {
		s.Broadcaster.Broadcast("A new movie has been added: " + movie.Title)
	}
	s.indexMovie(ctx, movie)
	if err := s.Producer.PublishEvent(ctx, "movie_events", strconv.Itoa(movie.ID), map[string]any{
		"type":  "movie_added",
		"id":    movie.ID,
		"title": movie.Title,
	}); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_failed", "error", err)
	}

	return movie, nil
}

func (s *MovieService) Update(ctx context.Context, movieID int, upd MovieUpdate) (models.Movie, error) {
	movie, err := s.GetByID(ctx, movieID)
	if err != nil {
		return models.Movie{}, err
	}

	if upd.Title != "" && upd.Title != movie.Title {
		var other models.Movie
		err := s.DB.WithContext(ctx).Where("title = ? AND id <> ?", upd.Title, movieID).First(&other).Error
		if err == nil {
			return models.Movie{}, apperr.AlreadyExists("Movie with this title already exists.")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Movie{}, err
		}
		movie.Title = upd.Title
	}
	if upd.Description != "" {
		movie.Description = upd.Description
	}
	if upd.Genre != "" {
		movie.Genre = upd.Genre
	}
	if !upd.ReleaseDate.IsZero() {
		movie.ReleaseDate = upd.ReleaseDate
	}
	if upd.AverageRating > 0 {
		movie.AverageRating = upd.AverageRating
	}
	if upd.Price > 0 {
		movie.Price = upd.Price
	}
	if upd.PosterURL != "" {
		movie.PosterURL = upd.PosterURL
	}
	if upd.TrailerURL != "" {
		movie.TrailerURL = upd.TrailerURL
	}
	movie.UpdatedAt = s.now()

	if err := s.DB.WithContext(ctx).Save(&movie).Error; err != nil {
		return models.Movie{}, err
	}
	s.indexMovie(ctx, movie)
	return movie, nil
}

// ToggleAvailability flips a movie between AVAILABLE and UNAVAILABLE instead
// of deleting the row, so purchase history keeps resolving.
func (s *MovieService) ToggleAvailability(ctx context.Context, movieID int) (models.Movie, error) {
	movie, err := s.GetByID(ctx, movieID)
	if err != nil {
		return models.Movie{}, err
	}

	if movie.Status == models.MovieAvailable {
		movie.Status = models.MovieUnavailable
	} else {
		movie.Status = models.MovieAvailable
	}
	movie.UpdatedAt = s.now()

	if err := s.DB.WithContext(ctx).Save(&movie).Error; err != nil {
		return models.Movie{}, err
	}
	s.indexMovie(ctx, movie)
	return movie, nil
}

func (s *MovieService) GetByID(ctx context.Context, movieID int) (models.Movie, error) {
	var movie models.Movie
	if err := s.DB.WithContext(ctx).First(&movie, movieID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Movie{}, apperr.NotFound("Movie not found with ID: %d", movieID)
		}
		return models.Movie{}, err
	}
	return movie, nil
}

func (s *MovieService) GetAll(ctx context.Context) ([]models.Movie, error) {
	var movies []models.Movie
	err := s.DB.WithContext(ctx).Find(&movies).Error
	return movies, err
}

func (s *MovieService) GetAllAvailable(ctx context.Context) ([]models.Movie, error) {
	var movies []models.Movie
	err := s.DB.WithContext(ctx).Where("status = ?", models.MovieAvailable).Find(&movies).Error
	return movies, err
}

func (s *MovieService) GetByGenre(ctx context.Context, genre string) ([]models.Movie, error) {
	if genre == "" {
		return nil, apperr.InvalidArgument("Genre cannot be null or empty.")
	}
	var movies []models.Movie
	err := s.DB.WithContext(ctx).
		Where("genre = ? AND status = ?", genre, models.MovieAvailable).
		Find(&movies).Error
	return movies, err
}

func (s *MovieService) indexMovie(ctx context.Context, movie models.Movie) {
	if s.ES == nil {
		return
	}
	log := logging.FromContext(ctx)

	body, err := json.Marshal(movie)
	if err != nil {
		log.Error("es_marshal_failed", "movieID", movie.ID, "error", err)
		return
	}
	res, err := s.ES.Index(
		s.Index,
		bytes.NewReader(body),
		s.ES.Index.WithDocumentID(strconv.Itoa(movie.ID)),
		s.ES.Index.WithContext(ctx),
	)
	if err != nil {
		log.Error("es_index_failed", "movieID", movie.ID, "error", err)
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		log.Error("es_index_failed", "movieID", movie.ID, "status", res.StatusCode)
	}
}
