package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gxmovies/backend/internal/apperr"
	"github.com/gxmovies/backend/internal/models"
)

type CartService struct {
	DB *gorm.DB
}

// Add puts a movie into the user's cart. The (user, movie) pair is unique.
func (s *CartService) Add(ctx context.Context, userID, movieID int) (models.Cart, error) {
	if err := s.checkUserAndMovie(ctx, userID, movieID); err != nil {
		return models.Cart{}, err
	}

	var existing models.Cart
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		First(&existing).Error
	if err == nil {
		return models.Cart{}, apperr.AlreadyExists("Movie already in cart.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Cart{}, err
	}

	item := models.Cart{UserID: userID, MovieID: movieID}
	if err := s.DB.WithContext(ctx).Create(&item).Error; err != nil {
		return models.Cart{}, err
	}
	return item, nil
}

// Movies returns the available movies currently in the user's cart.
func (s *CartService) Movies(ctx context.Context, userID int) ([]models.Movie, error) {
	var movies []models.Movie
	err := s.DB.WithContext(ctx).Model(&models.Movie{}).
		Joins("JOIN carts ON carts.movie_id = movies.id").
		Where("carts.user_id = ? AND movies.status = ?", userID, models.MovieAvailable).
		Find(&movies).Error
	return movies, err
}

func (s *CartService) Remove(ctx context.Context, userID, movieID int) error {
	res := s.DB.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&models.Cart{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Movie not found in cart: %d", movieID)
	}
	return nil
}

// RemoveMany deletes several cart entries at once. If any of the movies is
// not in the cart nothing is removed.
func (s *CartService) RemoveMany(ctx context.Context, userID int, movieIDs []int) error {
	if len(movieIDs) == 0 {
		return apperr.InvalidArgument("Movie IDs cannot be null or empty.")
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Cart{}).
			Where("user_id = ? AND movie_id IN ?", userID, movieIDs).
			Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(movieIDs)) {
			return apperr.NotFound("Some movies not found in cart.")
		}
		return tx.Where("user_id = ? AND movie_id IN ?", userID, movieIDs).
			Delete(&models.Cart{}).Error
	})
}

func (s *CartService) Clear(ctx context.Context, userID int) error {
	return s.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Cart{}).Error
}

func (s *CartService) Contains(ctx context.Context, userID, movieID int) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Cart{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Count(&count).Error
	return count > 0, err
}

func (s *CartService) checkUserAndMovie(ctx context.Context, userID, movieID int) error {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User not found with ID: %d", userID)
		}
		return err
	}
	var movie models.Movie
	if err := s.DB.WithContext(ctx).First(&movie, movieID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Movie not found with ID: %d", movieID)
		}
		return err
	}
	return nil
}
