package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/gxmovies/backend/internal/apperr"
	"github.com/gxmovies/backend/internal/email"
	"github.com/gxmovies/backend/internal/invoice"
	"github.com/gxmovies/backend/internal/logging"
	"github.com/gxmovies/backend/internal/models"
	"github.com/gxmovies/backend/internal/mykafka"
	"github.com/gxmovies/backend/internal/payment"
)

// PurchaseService orchestrates the purchase workflow: payment, atomic
// persistence of the purchase with its line items, the fire-and-forget
// confirmation email, and invoice rendering.
type PurchaseService struct {
	DB       *gorm.DB
	Gateway  payment.Gateway
	Mail     *email.Dispatcher
	Invoices *invoice.Renderer
	Producer *mykafka.Producer
	Now      func() time.Time
}

type PurchasedMovie struct {
	MovieID    int    `gorm:"column:movie_id"   json:"movieId"`
	UserID     int    `gorm:"-"                 json:"userId"`
	Title      string `gorm:"column:title"      json:"title"`
	PosterURL  string `gorm:"column:poster_url" json:"posterURL"`
	TrailerURL string `gorm:"column:trailer_url" json:"trailerURL"`
	Status     string `gorm:"column:status"     json:"status"`
}

func (s *PurchaseService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreatePurchase runs the full checkout. Validation and existence checks come
// first, the payment charge gates everything, and only then does one
// transaction persist the purchase and exactly one line item per movie. The
// confirmation email is queued after commit and cannot fail the purchase.
func (s *PurchaseService) CreatePurchase(ctx context.Context, userID int, movieIDs []int, paymentMethod string) (models.Purchase, error) {
	l := logging.FromContext(ctx).With("service", "purchase")

	if len(movieIDs) == 0 {
		return models.Purchase{}, apperr.InvalidArgument("At least one movie id is required.")
	}

	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Purchase{}, apperr.NotFound("User not found with ID: %d", userID)
		}
		return models.Purchase{}, err
	}

	var movies []models.Movie
	if err := s.DB.WithContext(ctx).Where("id IN ?", movieIDs).Find(&movies).Error; err != nil {
		return models.Purchase{}, err
	}
	if len(movies) != len(movieIDs) {
		return models.Purchase{}, apperr.NotFound("Some movies not found.")
	}

	// price is captured now, decoupled from future catalog changes
	var totalPrice float64
	for _, m := range movies {
		totalPrice += m.Price
	}

	transactionID, err := s.Gateway.Charge(ctx, userID, totalPrice)
	if err != nil {
		l.Warn("payment_declined", "userID", userID, "total", totalPrice)
		return models.Purchase{}, apperr.PaymentFailed("Payment failed. No purchase record created.")
	}

	purchase := models.Purchase{
		TransactionID: transactionID,
		UserID:        user.ID,
		PaymentMethod: paymentMethod,
		TotalPrice:    totalPrice,
		PurchaseDate:  s.now(),
	}
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}
		for _, m := range movies {
			detail := models.PurchaseDetail{PurchaseID: purchase.ID, MovieID: m.ID}
			if err := tx.Create(&detail).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return models.Purchase{}, txErr
	}

	if s.Mail != nil {
		s.Mail.Enqueue(
			user.Email,
			"Confirmation Mail for Transaction Id : "+transactionID,
			"Thanks for purchasing the movie from GXMovies.",
		)
	}

	if err := s.Producer.PublishEvent(ctx, "purchase_events", transactionID, map[string]any{
		"type":       "purchase_created",
		"purchaseID": purchase.ID,
		"userID":     user.ID,
		"total":      totalPrice,
	}); err != nil {
		l.Error("kafka_publish_failed", "error", err)
	}

	l.Info("purchase_created", "purchaseID", purchase.ID, "transactionID", transactionID, "items", len(movies))
	return purchase, nil
}

// GetPurchasesByUser returns the user's purchases, most recent first. An empty
// history is not an error.
func (s *PurchaseService) GetPurchasesByUser(ctx context.Context, userID int) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&purchases).Error
	return purchases, err
}

// GetPurchasedMoviesByUser lists every movie the user bought, ordered by the
// parent purchase id descending.
func (s *PurchaseService) GetPurchasedMoviesByUser(ctx context.Context, userID int) ([]PurchasedMovie, error) {
	var rows []PurchasedMovie
	err := s.DB.WithContext(ctx).
		Model(&models.PurchaseDetail{}).
		Select("movies.id AS movie_id, movies.title, movies.poster_url, movies.trailer_url, movies.status").
		Joins("JOIN purchases ON purchases.id = purchase_details.purchase_id").
		Joins("JOIN movies ON movies.id = purchase_details.movie_id").
		Where("purchases.user_id = ?", userID).
		Order("purchase_details.purchase_id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].UserID = userID
	}
	return rows, nil
}

func (s *PurchaseService) IsMoviePurchased(ctx context.Context, userID, movieID int) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&models.PurchaseDetail{}).
		Joins("JOIN purchases ON purchases.id = purchase_details.purchase_id").
		Where("purchases.user_id = ? AND purchase_details.movie_id = ?", userID, movieID).
		Count(&count).Error
	return count > 0, err
}

// DetailsByPurchase returns the line items of one purchase.
func (s *PurchaseService) DetailsByPurchase(ctx context.Context, purchaseID int) ([]models.PurchaseDetail, error) {
	if purchaseID <= 0 {
		return nil, apperr.InvalidArgument("Invalid purchase ID: %d", purchaseID)
	}
	if err := s.findPurchase(ctx, purchaseID); err != nil {
		return nil, err
	}
	var details []models.PurchaseDetail
	err := s.DB.WithContext(ctx).Where("purchase_id = ?", purchaseID).Find(&details).Error
	return details, err
}

// InvoicePDF renders the invoice for a purchase and returns the document
// bytes together with the transaction id for the download filename.
func (s *PurchaseService) InvoicePDF(ctx context.Context, purchaseID int) ([]byte, string, error) {
	var purchase models.Purchase
	if err := s.DB.WithContext(ctx).First(&purchase, purchaseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.NotFound("No Purchase Record for this id.")
		}
		return nil, "", err
	}

	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, purchase.UserID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	var lines []invoice.Line
	err := s.DB.WithContext(ctx).
		Model(&models.PurchaseDetail{}).
		Select("movies.title, movies.price, movies.genre").
		Joins("JOIN movies ON movies.id = purchase_details.movie_id").
		Where("purchase_details.purchase_id = ?", purchaseID).
		Scan(&lines).Error
	if err != nil {
		return nil, "", err
	}

	data := invoice.Data{
		FullName:      user.FullName,
		PurchaseID:    purchase.ID,
		TransactionID: purchase.TransactionID,
		PurchaseDate:  purchase.PurchaseDate,
		PaymentMethod: purchase.PaymentMethod,
		TotalPrice:    purchase.TotalPrice,
		Lines:         lines,
	}
	out, err := s.Invoices.Render(data)
	if err != nil {
		return nil, "", apperr.Internal("Error generating invoice PDF", err)
	}
	return out, purchase.TransactionID, nil
}

func (s *PurchaseService) findPurchase(ctx context.Context, purchaseID int) error {
	var purchase models.Purchase
	if err := s.DB.WithContext(ctx).First(&purchase, purchaseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Purchase not found with ID: %d", purchaseID)
		}
		return err
	}
	return nil
}
