package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Config holds all configuration for the application
type Config struct {
	ListsEndpoint   string
	PayloadShape    string
	Port            string
	PrometheusPort  string
	LogLevel        string
	FetchTimeout    time.Duration
	RefreshInterval time.Duration
	Currency        string
	CollationLocale string
	UserAgent       string
	TelegramToken   string
}

// Load loads configuration from environment variables, reading a .env file
// first when one exists
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	cfg := &Config{
		ListsEndpoint:   getEnvOrDefault("LISTS_ENDPOINT", "https://plaisiroffrir.onrender.com/api/listes"),
		PayloadShape:    getEnvOrDefault("PAYLOAD_SHAPE", "lists"),
		Port:            getEnvOrDefault("PORT", "8080"),
		PrometheusPort:  getEnvOrDefault("PROMETHEUS_PORT", "9090"),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		Currency:        getEnvOrDefault("CURRENCY", "€"),
		CollationLocale: getEnvOrDefault("COLLATION_LOCALE", "fr"),
		UserAgent:       getEnvOrDefault("USER_AGENT", "giftlists/1.0"),
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
	}

	var err error
	if cfg.FetchTimeout, err = parseDuration("FETCH_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout <= 0 {
		return nil, fmt.Errorf("FETCH_TIMEOUT must be positive")
	}
	if cfg.RefreshInterval, err = parseDuration("REFRESH_INTERVAL", "0"); err != nil {
		return nil, err
	}

	if cfg.ListsEndpoint == "" {
		return nil, fmt.Errorf("LISTS_ENDPOINT must not be empty")
	}
	if cfg.PayloadShape != "lists" && cfg.PayloadShape != "families" {
		return nil, fmt.Errorf("PAYLOAD_SHAPE must be \"lists\" or \"families\", got %q", cfg.PayloadShape)
	}

	if _, err := language.Parse(cfg.CollationLocale); err != nil {
		return nil, fmt.Errorf("COLLATION_LOCALE %q is not a valid locale: %w", cfg.CollationLocale, err)
	}

	return cfg, nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(key, defaultValue string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnvOrDefault(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid duration: %w", key, err)
	}
	return d, nil
}
