package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gxmovies/backend/internal/apperr"
	"github.com/gxmovies/backend/internal/models"
)

type ReviewService struct {
	DB *gorm.DB
}

func (s *ReviewService) Create(ctx context.Context, userID, movieID int, text string) (models.Review, error) {
	if text == "" {
		return models.Review{}, apperr.InvalidArgument("Review text cannot be null or empty.")
	}
	var movie models.Movie
	if err := s.DB.WithContext(ctx).First(&movie, movieID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Review{}, apperr.NotFound("Movie not found with ID: %d", movieID)
		}
		return models.Review{}, err
	}

	review := models.Review{UserID: userID, MovieID: movieID, ReviewText: text}
	if err := s.DB.WithContext(ctx).Create(&review).Error; err != nil {
		return models.Review{}, err
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, reviewID int) error {
	res := s.DB.WithContext(ctx).Delete(&models.Review{}, reviewID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Review not found with ID: %d", reviewID)
	}
	return nil
}

// ByMovie lists a movie's reviews, newest first.
func (s *ReviewService) ByMovie(ctx context.Context, movieID int) ([]models.Review, error) {
	var reviews []models.Review
	err := s.DB.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Order("id DESC").
		Find(&reviews).Error
	return reviews, err
}

// Report flags a review for moderation. Reporting an already reported review
// is not an error, the message just says so.
func (s *ReviewService) Report(ctx context.Context, reviewID int) (string, error) {
	var review models.Review
	if err := s.DB.WithContext(ctx).First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.NotFound("Review not found with ID: %d", reviewID)
		}
		return "", err
	}
	if review.Reported {
		return "Review is already reported.", nil
	}
	review.Reported = true
	if err := s.DB.WithContext(ctx).Save(&review).Error; err != nil {
		return "", err
	}
	return "Review reported successfully.", nil
}

func (s *ReviewService) Reported(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	err := s.DB.WithContext(ctx).Where("reported = ?", true).Find(&reviews).Error
	return reviews, err
}
