package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gxmovies/backend/internal/apperr"
	"github.com/gxmovies/backend/internal/models"
)

type FavoriteService struct {
	DB *gorm.DB
}

func (s *FavoriteService) Add(ctx context.Context, userID, movieID int) (models.Favorite, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Favorite{}, apperr.NotFound("User not found with ID: %d", userID)
		}
		return models.Favorite{}, err
	}
	var movie models.Movie
	if err := s.DB.WithContext(ctx).First(&movie, movieID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Favorite{}, apperr.NotFound("Movie not found with ID: %d", movieID)
		}
		return models.Favorite{}, err
	}

	var existing models.Favorite
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		First(&existing).Error
	if err == nil {
		return models.Favorite{}, apperr.AlreadyExists("Movie already in favorites.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Favorite{}, err
	}

	fav := models.Favorite{UserID: userID, MovieID: movieID}
	if err := s.DB.WithContext(ctx).Create(&fav).Error; err != nil {
		return models.Favorite{}, err
	}
	return fav, nil
}

// Movies returns the available movies the user marked as favorite.
func (s *FavoriteService) Movies(ctx context.Context, userID int) ([]models.Movie, error) {
	var movies []models.Movie
	err := s.DB.WithContext(ctx).Model(&models.Movie{}).
		Joins("JOIN favorites ON favorites.movie_id = movies.id").
		Where("favorites.user_id = ? AND movies.status = ?", userID, models.MovieAvailable).
		Find(&movies).Error
	return movies, err
}

func (s *FavoriteService) RemoveByID(ctx context.Context, favoriteID int) error {
	res := s.DB.WithContext(ctx).Delete(&models.Favorite{}, favoriteID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Favorite not found with ID: %d", favoriteID)
	}
	return nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID, movieID int) error {
	res := s.DB.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Movie not found in favorites: %d", movieID)
	}
	return nil
}

func (s *FavoriteService) Contains(ctx context.Context, userID, movieID int) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Count(&count).Error
	return count > 0, err
}
