package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"consultingoffice/config"
	"consultingoffice/internal/adapters/auth"
	"consultingoffice/internal/adapters/email"
	httpdelivery "consultingoffice/internal/delivery/http"
	"consultingoffice/internal/delivery/http/controllers"
	"consultingoffice/internal/delivery/http/middleware"
	"consultingoffice/internal/repository/postgres"
	"consultingoffice/internal/services"
	"consultingoffice/migrations"

	"golang.org/x/crypto/bcrypt"
)

const contextTimeout = 10 * time.Second
const shutdownTimeout = 10 * time.Second

// @title Consulting Office API
// @version 1.0
// @description Back office and public API for the consultancy site: events, sessions, bookings, contact forms, and site settings.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(startupCtx); err != nil {
		logger.Error("database ping", "err", err)
		os.Exit(1)
	}
	if err := migrations.Apply(startupCtx, db); err != nil {
		logger.Error("apply migrations", "err", err)
		os.Exit(1)
	}

	tokens := auth.NewJWT(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("configure mailer", "err", err)
		os.Exit(1)
	}
	renderer := email.NewTemplateRenderer()

	eventRepo := postgres.NewEventRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	delegateRepo := postgres.NewDelegateRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	contactRepo := postgres.NewContactRepository(db)
	settingRepo := postgres.NewSettingRepository(db)
	userRepo := postgres.NewUserRepository(db)

	eventSvc := services.NewEventService(eventRepo, contextTimeout)
	sessionSvc := services.NewSessionService(sessionRepo, delegateRepo, eventRepo, logger, contextTimeout)
	bookingSvc := services.NewBookingService(bookingRepo, contextTimeout)
	contactSvc := services.NewContactService(contactRepo, mailer, renderer, cfg.ContactNotifyEmail, logger, contextTimeout)
	settingSvc := services.NewSettingService(settingRepo, contextTimeout)
	authSvc := services.NewAuthService(userRepo, hasher, tokens, cfg.JWTExpiry, contextTimeout)

	mux := httpdelivery.NewRouter(httpdelivery.RouterDeps{
		Logger:   logger,
		Verifier: tokens,
		Auth:     controllers.NewAuthController(logger, authSvc),
		Events:   controllers.NewEventController(logger, eventSvc),
		Sessions: controllers.NewSessionController(logger, sessionSvc),
		Bookings: controllers.NewBookingController(logger, bookingSvc),
		Contacts: controllers.NewContactController(logger, contactSvc),
		Settings: controllers.NewSettingController(logger, settingSvc),
		Public:   controllers.NewPublicController(logger, eventSvc, sessionSvc, contactSvc),
	})

	handler := middleware.RequestID(
		middleware.LoggingMiddleware(logger,
			middleware.CORS(cfg.CORSOrigins, mux)))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", "err", err)
	}
	logger.Info("server stopped")
}
