package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gxmovies/backend/internal/apperr"
	"github.com/gxmovies/backend/internal/invoice"
	"github.com/gxmovies/backend/internal/models"
	"github.com/gxmovies/backend/internal/payment"
)

func TestCreatePurchase(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, models.User{FullName: "Asha Rao", Email: "asha@example.com"})
	m1 := seedMovie(t, db, models.Movie{Title: "Inception", Genre: "SciFi", Price: 100.0})
	m2 := seedMovie(t, db, models.Movie{Title: "Arrival", Genre: "SciFi", Price: 200.0})

	gw := &stubGateway{txn: "TXN-42"}
	svc := &PurchaseService{DB: db, Gateway: gw, Now: func() time.Time { return fixedTime }}

	p, err := svc.CreatePurchase(context.Background(), user.ID, []int{m1.ID, m2.ID}, "UPI")
	require.NoError(t, err)
	require.Equal(t, "TXN-42", p.TransactionID)
	require.Equal(t, 300.0, p.TotalPrice)
	require.Equal(t, user.ID, p.UserID)
	require.Equal(t, "UPI", p.PaymentMethod)

	var details []models.PurchaseDetail
	require.NoError(t, db.Where("purchase_id = ?", p.ID).Find(&details).Error)
	require.Len(t, details, 2)
}

func TestCreatePurchaseUnknownMovie(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, models.User{FullName: "Asha Rao", Email: "asha@example.com"})
	m1 := seedMovie(t, db, models.Movie{Title: "Inception", Price: 100.0})

	gw := &stubGateway{txn: "TXN-42"}
	svc := &PurchaseService{DB: db, Gateway: gw}

	_, err := svc.CreatePurchase(context.Background(), user.ID, []int{m1.ID, 999}, "UPI")
	require.Error(t, err)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	require.Contains(t, err.Error(), "Some movies not found.")
	require.Zero(t, gw.calls)

	var count int64
	require.NoError(t, db.Model(&models.Purchase{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCreatePurchaseUnknownUser(t *testing.T) {
	db := newTestDB(t)
	m1 := seedMovie(t, db, models.Movie{Title: "Inception", Price: 100.0})

	svc := &PurchaseService{DB: db, Gateway: &stubGateway{txn: "TXN-1"}}
	_, err := svc.CreatePurchase(context.Background(), 7, []int{m1.ID}, "UPI")
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	require.Contains(t, err.Error(), "User not found with ID: 7")
}

func TestCreatePurchaseEmptyMovieList(t *testing.T) {
	db := newTestDB(t)
	svc := &PurchaseService{DB: db, Gateway: &stubGateway{txn: "TXN-1"}}
	_, err := svc.CreatePurchase(context.Background(), 1, nil, "UPI")
	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestCreatePurchasePaymentDeclined(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, models.User{FullName: "Asha Rao", Email: "asha@example.com"})
	m1 := seedMovie(t, db, models.Movie{Title: "Inception", Price: 100.0})

	gw := &stubGateway{err: payment.ErrDeclined}
	svc := &PurchaseService{DB: db, Gateway: gw}

	_, err := svc.CreatePurchase(context.Background(), user.ID, []int{m1.ID}, "CARD")
	require.Equal(t, apperr.KindPaymentFailed, apperr.KindOf(err))
	require.Contains(t, err.Error(), "Payment failed. No purchase record created.")

	var purchases, details int64
	require.NoError(t, db.Model(&models.Purchase{}).Count(&purchases).Error)
	require.NoError(t, db.Model(&models.PurchaseDetail{}).Count(&details).Error)
	require.Zero(t, purchases)
	require.Zero(t, details)
}

func TestGetPurchasesByUserNewestFirst(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, models.User{FullName: "Asha Rao", Email: "asha@example.com"})
	m1 := seedMovie(t, db, models.Movie{Title: "Inception", Price: 100.0})
	other := seedUser(t, db, models.User{FullName: "Ravi", Email: "ravi@example.com"})

	svc := &PurchaseService{DB: db, Gateway: &stubGateway{txn: "TXN-1"}}
	first, err := svc.CreatePurchase(context.Background(), user.ID, []int{m1.ID}, "UPI")
	require.NoError(t, err)
	second, err := svc.CreatePurchase(context.Background(), user.ID, []int{m1.ID}, "UPI")
	require.NoError(t, err)
	_, err = svc.CreatePurchase(context.Background(), other.ID, []int{m1.ID}, "UPI")
	require.NoError(t, err)

	got, err := svc.GetPurchasesByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, second.ID, got[0].ID)
	require.Equal(t, first.ID, got[1].ID)
}

func TestIsMoviePurchased(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, models.User{FullName: "Asha Rao", Email: "asha@example.com"})
	m1 := seedMovie(t, db, models.Movie{Title: "Inception", Price: 100.0})
	m2 := seedMovie(t, db, models.Movie{Title: "Arrival", Price: 200.0})

	svc := &PurchaseService{DB: db, Gateway: &stubGateway{txn: "TXN-1"}}
	_, err := svc.CreatePurchase(context.Background(), user.ID, []int{m1.ID}, "UPI")
	require.NoError(t, err)

	owned, err := svc.IsMoviePurchased(context.Background(), user.ID, m1.ID)
	require.NoError(t, err)
	require.True(t, owned)

	owned, err = svc.IsMoviePurchased(context.Background(), user.ID, m2.ID)
	require.NoError(t, err)
	require.False(t, owned)
}

func TestGetPurchasedMoviesByUser(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, models.User{FullName: "Asha Rao", Email: "asha@example.com"})
	m1 := seedMovie(t, db, models.Movie{Title: "Inception", Price: 100.0})
	m2 := seedMovie(t, db, models.Movie{Title: "Arrival", Price: 200.0})

	svc := &PurchaseService{DB: db, Gateway: &stubGateway{txn: "TXN-1"}}
	_, err := svc.CreatePurchase(context.Background(), user.ID, []int{m1.ID, m2.ID}, "UPI")
	require.NoError(t, err)

	got, err := svc.GetPurchasedMoviesByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	titles := []string{got[0].Title, got[1].Title}
	require.ElementsMatch(t, []string{"Inception", "Arrival"}, titles)
	for _, pm := range got {
		require.Equal(t, user.ID, pm.UserID)
	}
}

func TestDetailsByPurchase(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, models.User{FullName: "Asha Rao", Email: "asha@example.com"})
	m1 := seedMovie(t, db, models.Movie{Title: "Inception", Price: 100.0})

	svc := &PurchaseService{DB: db, Gateway: &stubGateway{txn: "TXN-1"}}
	p, err := svc.CreatePurchase(context.Background(), user.ID, []int{m1.ID}, "UPI")
	require.NoError(t, err)

	details, err := svc.DetailsByPurchase(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.Equal(t, m1.ID, details[0].MovieID)

	_, err = svc.DetailsByPurchase(context.Background(), -1)
	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	_, err = svc.DetailsByPurchase(context.Background(), p.ID+100)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestInvoicePDF(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, models.User{FullName: "Asha Rao", Email: "asha@example.com"})
	m1 := seedMovie(t, db, models.Movie{Title: "Inception", Genre: "SciFi", Price: 100.0})

	svc := &PurchaseService{
		DB:       db,
		Gateway:  &stubGateway{txn: "TXN-42"},
		Invoices: &invoice.Renderer{},
	}
	p, err := svc.CreatePurchase(context.Background(), user.ID, []int{m1.ID}, "UPI")
	require.NoError(t, err)

	pdf, txn, err := svc.InvoicePDF(context.Background(), p.ID)
	require.NoError(t, err)
	require.Equal(t, "TXN-42", txn)
	require.True(t, strings.HasPrefix(string(pdf), "%PDF"))

	_, _, err = svc.InvoicePDF(context.Background(), p.ID+5)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	require.Contains(t, err.Error(), "No Purchase Record for this id.")
}
