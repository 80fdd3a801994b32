package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/gxmovies/backend/internal/apperr"
	"github.com/gxmovies/backend/internal/models"
)

type AdminService struct {
	DB *gorm.DB
}

type Summary struct {
	NumberOfUsers  int64   `json:"numberOfUsers"`
	NumberOfMovies int64   `json:"numberOfMovies"`
	TotalRevenue   float64 `json:"totalRevenue"`
}

type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

func (s *AdminService) Summary(ctx context.Context) (Summary, error) {
	var sum Summary
	db := s.DB.WithContext(ctx)

	if err := db.Model(&models.User{}).
		Where("role = ?", models.RoleUser).
		Count(&sum.NumberOfUsers).Error; err != nil {
		return Summary{}, err
	}
	if err := db.Model(&models.Movie{}).Count(&sum.NumberOfMovies).Error; err != nil {
		return Summary{}, err
	}
	if err := db.Model(&models.Purchase{}).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&sum.TotalRevenue).Error; err != nil {
		return Summary{}, err
	}
	return sum, nil
}

// ChartData returns one aggregate series keyed by the requested chart type.
func (s *AdminService) ChartData(ctx context.Context, chartType string) (map[string]any, error) {
	var (
		points []ChartPoint
		err    error
	)
	switch chartType {
	case "moviesByGenre":
		err = s.DB.WithContext(ctx).Model(&models.Movie{}).
			Select("genre AS label, COUNT(*) AS value").
			Group("genre").
			Scan(&points).Error
	case "revenueByGenre":
		err = s.DB.WithContext(ctx).Model(&models.PurchaseDetail{}).
			Select("movies.genre AS label, SUM(movies.price) AS value").
			Joins("JOIN movies ON movies.id = purchase_details.movie_id").
			Group("movies.genre").
			Scan(&points).Error
	case "topUsers":
		err = s.DB.WithContext(ctx).Model(&models.Purchase{}).
			Select("users.full_name AS label, SUM(purchases.total_price) AS value").
			Joins("JOIN users ON users.id = purchases.user_id").
			Group("users.full_name").
			Order("value DESC").
			Limit(5).
			Scan(&points).Error
	default:
		return nil, apperr.InvalidArgument("Unknown chart type: %s", chartType)
	}
	if err != nil {
		return nil, err
	}
	if points == nil {
		points = []ChartPoint{}
	}
	return map[string]any{"series": points}, nil
}
