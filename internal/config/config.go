// Package config reads the service settings from the environment. A .env file
// in the working directory is picked up by godotenv/autoload in main.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
)

type Config struct {
	Port    string
	GinMode string
	DBPath  string

	SMTP    SMTP
	ToEmail string

	AdminUsername string
	AdminPassword string

	ContactDelay   time.Duration
	ContactReset   time.Duration
	CarouselPeriod time.Duration

	OTelEnabled bool
	LogLevel    string
}

type SMTP struct {
	Host string
	Port string
	User string
	Pass string
}

// Configured reports whether enough SMTP settings are present to send mail.
func (s SMTP) Configured() bool {
	return s.Host != "" && s.Port != "" && s.User != "" && s.Pass != ""
}

func Load() (Config, error) {
	cfg := Config{
		Port:    envDefault("PORT", "8080"),
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBPath:  envDefault("DB_PATH", "portfolio.db"),
		SMTP: SMTP{
			Host: strings.TrimSpace(os.Getenv("SMTP_HOST")),
			Port: strings.TrimSpace(os.Getenv("SMTP_PORT")),
			User: strings.TrimSpace(os.Getenv("SMTP_USER")),
			Pass: os.Getenv("SMTP_PASS"),
		},
		ToEmail:       strings.TrimSpace(os.Getenv("TO_EMAIL")),
		AdminUsername: strings.TrimSpace(os.Getenv("ADMIN_USERNAME")),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		OTelEnabled:   isTruthy(os.Getenv("OTEL_ENABLED")),
		LogLevel:      strings.ToLower(envDefault("LOG_LEVEL", "info")),
	}

	var err error
	if cfg.ContactDelay, err = envMillis("CONTACT_DELAY_MS", 2000); err != nil {
		return Config{}, err
	}
	if cfg.ContactReset, err = envMillis("CONTACT_RESET_MS", 3000); err != nil {
		return Config{}, err
	}
	if cfg.CarouselPeriod, err = envMillis("CAROUSEL_PERIOD_MS", 5000); err != nil {
		return Config{}, err
	}
	if cfg.CarouselPeriod == 0 {
		return Config{}, fmt.Errorf("CAROUSEL_PERIOD_MS must be a positive integer")
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if cfg.ToEmail == "" {
		cfg.ToEmail = cfg.SMTP.User
	}
	return cfg, nil
}

// Level is LogLevel as a zap level. Load has already rejected bad values.
func (c Config) Level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

// envMillis reads a non-negative millisecond count.
func envMillis(key string, fallback int) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return time.Duration(fallback) * time.Millisecond, nil
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", key)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
