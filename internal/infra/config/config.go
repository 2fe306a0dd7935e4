package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Config is built once in main and passed down by parameter. Nothing else
// in the codebase reads the environment.
type Config struct {
	Port        string
	DatabaseURL string
	CompanyName string
	BaseURL     string

	// Shared secrets gating admin and cron endpoints.
	AdminSecret string
	CronSecret  string

	Twilio TwilioConfig
	SMTP   SMTPConfig

	// Optional. When empty the message-event publisher is not wired.
	AMQPURL string
}

func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Port:        getenv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		CompanyName: getenv("COMPANY_NAME", "Summit View Partners"),
		BaseURL:     getenv("BASE_URL", "http://localhost:8080"),
		AdminSecret: os.Getenv("ADMIN_SECRET"),
		CronSecret:  os.Getenv("CRON_SECRET"),
		Twilio: TwilioConfig{
			AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
			FromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
		},
		SMTP: SMTPConfig{
			Host:     getenv("SMTP_HOST", "smtp.sendgrid.net"),
			Port:     getenvInt("SMTP_PORT", 587),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
			From:     getenv("SMTP_FROM", "no-reply@summitview.example"),
		},
		AMQPURL: os.Getenv("AMQP_URL"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
