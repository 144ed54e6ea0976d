package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reeverband/config"
	"reeverband/internal/adapters/email"
	"reeverband/internal/adapters/ratelimit"
	httpdelivery "reeverband/internal/delivery/http"
	"reeverband/internal/delivery/http/controllers"
	"reeverband/internal/delivery/http/middleware"
	"reeverband/internal/domain"
	"reeverband/internal/services"
	"reeverband/internal/spam"
)

// @title Reever Website API
// @version 1.0
// @description Booking-enquiry contact API for the Reever band website.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	limiter, err := newLimiter(cfg)
	if err != nil {
		logger.Error("failed to initialize rate limiter", "err", err)
		os.Exit(1)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Service,
		APIKey:      cfg.Email.SendGridAPIKey,
		FromAddress: cfg.Email.FromEmail,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.SESRegion,
			AccessKeyID:     cfg.Email.SESAccessKeyID,
			SecretAccessKey: cfg.Email.SESSecretAccessKey,
		},
		SMTP: email.SMTPConfig{
			Host:   cfg.Email.SMTPHost,
			Port:   cfg.Email.SMTPPort,
			Secure: cfg.Email.SMTPSecure,
			User:   cfg.Email.SMTPUser,
			Pass:   cfg.Email.SMTPPass,
		},
	})
	if err != nil {
		logger.Error("failed to initialize mailer", "err", err)
		os.Exit(1)
	}

	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer(), cfg.Email.ContactEmail)
	enquirySvc := services.NewEnquiryService(logger, emailSvc, spam.NewDetector())
	contactController := controllers.NewContactController(logger, enquirySvc, limiter)

	mux := httpdelivery.NewRouter(contactController, cfg.StaticDir)
	handler := middleware.LoggingMiddleware(logger,
		middleware.CORS(cfg.AllowedOrigins,
			middleware.ClientID(mux)))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening",
			"port", cfg.Port,
			"env", cfg.Environment,
			"email_service", cfg.Email.Service,
			"rate_limit_store", cfg.RateLimit.Store,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

// newLimiter builds the rate limiter from config: Redis when configured,
// otherwise the process-local memory store.
func newLimiter(cfg *config.Config) (domain.RateLimiter, error) {
	if cfg.RateLimit.Store == "redis" && cfg.RateLimit.RedisURL != "" {
		return ratelimit.NewRedisLimiter(cfg.RateLimit.RedisURL, cfg.RateLimit.Max, cfg.RateLimit.Window)
	}
	return ratelimit.NewMemoryLimiter(cfg.RateLimit.Max, cfg.RateLimit.Window), nil
}
