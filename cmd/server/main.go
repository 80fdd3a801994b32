package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/gxmovies/backend/internal/config"
	"github.com/gxmovies/backend/internal/email"
	"github.com/gxmovies/backend/internal/es"
	"github.com/gxmovies/backend/internal/handlers"
	"github.com/gxmovies/backend/internal/invoice"
	"github.com/gxmovies/backend/internal/logging"
	"github.com/gxmovies/backend/internal/middleware/auth"
	"github.com/gxmovies/backend/internal/mykafka"
	"github.com/gxmovies/backend/internal/notify"
	"github.com/gxmovies/backend/internal/otp"
	"github.com/gxmovies/backend/internal/payment"
	"github.com/gxmovies/backend/internal/ratelimit"
	"github.com/gxmovies/backend/internal/service"
	"github.com/gxmovies/backend/internal/token"
	httpserver "github.com/gxmovies/backend/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	prod := mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})

	esClient, err := es.NewClient(configuration)
	if err != nil {
		logger.Warn("elasticsearch unavailable, search disabled", "error", err)
		esClient = nil
	}

	smtpPort, _ := strconv.Atoi(configuration.SMTP_PORT)
	sender := email.NewSMTPSender(
		configuration.SMTP_HOST,
		smtpPort,
		configuration.SMTP_USER,
		configuration.SMTP_PASSWORD,
		configuration.SMTP_FROM,
	)
	dispatcher := email.NewDispatcher(sender, 2, 64, logger)

	tokens := &token.Service{Secret: []byte(configuration.JWT_SECRET)}
	limiter := ratelimit.NewLimiter()
	filter := &auth.Filter{DB: db, Tokens: tokens}
	broadcaster := notify.NewBroadcaster()
	renderer := &invoice.Renderer{
		LogoPath:   configuration.INVOICE_LOGO,
		FooterPath: configuration.INVOICE_FOOTER,
	}

	users := &service.UserService{DB: db, Tokens: tokens, OTPs: otp.NewStore(), Mail: sender, Producer: prod}
	movies := &service.MovieService{
		DB:          db,
		Broadcaster: broadcaster,
		ES:          esClient,
		Index:       "movies",
		Producer:    prod,
	}
	purchases := &service.PurchaseService{
		DB:       db,
		Gateway:  &payment.Simulator{},
		Mail:     dispatcher,
		Invoices: renderer,
		Producer: prod,
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := logging.IntoContext(c.Request().Context(), logger)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})
	e.Use(filter.Middleware)
	e.Use(ratelimit.Middleware(limiter, ratelimit.DefaultExemptPrefixes))
	e.HTTPErrorHandler = httpserver.ErrorHandler

	deps := httpserver.Deps{
		UserHandler:         &handlers.UserHandler{Users: users},
		MovieHandler:        &handlers.MovieHandler{Movies: movies},
		CartHandler:         &handlers.CartHandler{Carts: &service.CartService{DB: db}},
		FavoriteHandler:     &handlers.FavoriteHandler{Favorites: &service.FavoriteService{DB: db}},
		ReviewHandler:       &handlers.ReviewHandler{Reviews: &service.ReviewService{DB: db}},
		PurchaseHandler:     &handlers.PurchaseHandler{Purchases: purchases},
		AdminHandler:        &handlers.AdminHandler{Admin: &service.AdminService{DB: db}},
		SearchHandler:       &handlers.SearchHandler{ES: esClient, Index: "movies"},
		NotificationHandler: &handlers.NotificationHandler{Broadcaster: broadcaster},
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.SERVER_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	dispatcher.Close()

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
