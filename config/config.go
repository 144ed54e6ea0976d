package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// RateLimitConfig holds settings for the contact-form rate limiter.
type RateLimitConfig struct {
	// Max is the number of submissions allowed per client within one window.
	Max int
	// Window is the fixed-window duration.
	Window time.Duration
	// Store selects the limiter backend: "memory" or "redis".
	Store string
	// RedisURL is the connection URL used when Store is "redis".
	RedisURL string
}

// EmailConfig holds settings for outbound booking-enquiry notifications.
type EmailConfig struct {
	// Service selects the mail backend: "sendgrid", "ses", "smtp" or "console".
	Service        string
	SendGridAPIKey string
	FromEmail      string
	FromName       string
	// ContactEmail is the address booking enquiries are delivered to.
	ContactEmail string

	SMTPHost   string
	SMTPPort   int
	SMTPSecure bool
	SMTPUser   string
	SMTPPass   string

	SESRegion          string
	SESAccessKeyID     string
	SESSecretAccessKey string
}

// Config holds all configuration for the application
type Config struct {
	Environment    string
	Port           string
	StaticDir      string
	AllowedOrigins []string
	RateLimit      RateLimitConfig
	Email          EmailConfig
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file if not in production
	// We don't return error here because in production .env might not exist
	// and we rely on system environment variables
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment: env,
		Port:        getEnv("PORT", "8080"),
		StaticDir:   getEnv("STATIC_DIR", "public"),
		RateLimit: RateLimitConfig{
			Max:      getEnvInt("RATE_LIMIT_MAX", 5),
			Window:   getEnvDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
			Store:    getEnv("RATE_LIMIT_STORE", "memory"),
			RedisURL: os.Getenv("REDIS_URL"),
		},
		Email: EmailConfig{
			Service:            getEnv("EMAIL_SERVICE", "console"),
			SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
			FromEmail:          getEnv("FROM_EMAIL", "noreply@reever.band"),
			FromName:           getEnv("FROM_NAME", "Reever Website"),
			ContactEmail:       getEnv("CONTACT_EMAIL", "bookings@reever.band"),
			SMTPHost:           os.Getenv("SMTP_HOST"),
			SMTPPort:           getEnvInt("SMTP_PORT", 587),
			SMTPSecure:         os.Getenv("SMTP_SECURE") == "true",
			SMTPUser:           os.Getenv("SMTP_USER"),
			SMTPPass:           os.Getenv("SMTP_PASS"),
			SESRegion:          getEnv("AWS_SES_REGION", "eu-west-1"),
			SESAccessKeyID:     os.Getenv("AWS_SES_ACCESS_KEY_ID"),
			SESSecretAccessKey: os.Getenv("AWS_SES_SECRET_ACCESS_KEY"),
		},
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Warning: invalid value %q for %s, using default %d", s, key, fallback)
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Warning: invalid value %q for %s, using default %s", s, key, fallback)
		return fallback
	}
	return v
}
