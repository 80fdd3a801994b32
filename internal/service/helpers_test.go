package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gxmovies/backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Movie{},
		&models.Purchase{},
		&models.PurchaseDetail{},
		&models.Cart{},
		&models.Favorite{},
		&models.Review{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, u models.User) models.User {
	t.Helper()
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if u.Status == "" {
		u.Status = models.StatusActive
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedMovie(t *testing.T, db *gorm.DB, m models.Movie) models.Movie {
	t.Helper()
	if m.Status == "" {
		m.Status = models.MovieAvailable
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

// stubGateway charges with a fixed outcome.
type stubGateway struct {
	txn string
	err error

	mu    sync.Mutex
	calls int
}

func (g *stubGateway) Charge(_ context.Context, _ int, _ float64) (string, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	if g.err != nil {
		return "", g.err
	}
	return g.txn, nil
}

// stubSender records outgoing mail.
type stubSender struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (s *stubSender) Send(to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

var fixedTime = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
