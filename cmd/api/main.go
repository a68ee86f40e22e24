package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/medinova/medinova-api/internal/cache"
	"github.com/medinova/medinova-api/internal/http/handlers"
	"github.com/medinova/medinova-api/internal/mailer"
	"github.com/medinova/medinova-api/internal/payments"
	"github.com/medinova/medinova-api/internal/repository"
	"github.com/medinova/medinova-api/internal/service"
	"github.com/medinova/medinova-api/pkg/config"
	"github.com/medinova/medinova-api/pkg/database"
	"github.com/medinova/medinova-api/pkg/events"
	"github.com/medinova/medinova-api/pkg/logger"
	mw "github.com/medinova/medinova-api/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, cfg.Database.URL); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	bus, err := events.NewNATSPublisher(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer bus.Close()

	// Idempotency caching is best effort; the API runs without Redis.
	var idem mw.IdempotencyStore
	if store, err := cache.NewStore(ctx, cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, idempotency caching disabled", "error", err)
	} else {
		defer store.Close()
		idem = store
	}

	var mail mailer.Service
	if cfg.Email.DevMode || cfg.Email.MailerSendKey == "" {
		mail = mailer.NewDevMailer()
	} else {
		mail = mailer.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}

	userRepo := repository.NewUserRepository(pool)
	testRepo := repository.NewLabTestRepository(pool)
	bannerRepo := repository.NewBannerRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	recRepo := repository.NewRecommendationRepository(pool)

	userSvc := service.NewUserService(userRepo, bus)
	bookingSvc := service.NewBookingService(bookingRepo, testRepo, userRepo, bus, mail)
	bannerSvc := service.NewBannerService(bannerRepo, bus)
	paymentSvc := service.NewPaymentService(
		payments.NewStripeClient(cfg.Stripe.SecretKey), bus, cfg.Stripe.Currency,
	)

	h := handlers.New(userSvc, testRepo, recRepo, bookingSvc, bannerSvc, paymentSvc, idem, cfg)

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(mw.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Mount("/", h.Routes())

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("MediNova API listening", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}
