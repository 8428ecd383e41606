// Package config содержит загрузку и валидацию конфигурации.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config представляет конфигурацию приложения
type Config struct {
	// Database
	DatabaseURL string

	// Telegram
	BotToken     string
	SuperadminID int64

	// Logging
	LogLevel string

	// App Data Directory
	AppDataDir string

	// Poll
	PollTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// .env опционален: в контейнере конфигурация приходит из окружения
	_ = godotenv.Load()

	config := &Config{
		DatabaseURL:  getEnv("DB_DSN", ""),
		BotToken:     getEnv("BOT_TOKEN", ""),
		SuperadminID: getEnvInt64("SUPERADMIN_ID", 0),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		AppDataDir:   getEnv("APP_DATA_DIR", "./data"),
		PollTimeout:  getEnvDuration("POLL_TIMEOUT", 60*time.Second),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DB_DSN is required")
	}

	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}

	if c.SuperadminID == 0 {
		return fmt.Errorf("SUPERADMIN_ID is required")
	}

	return nil
}

// GetAppDataDir возвращает директорию данных приложения
func (c *Config) GetAppDataDir() string {
	return c.AppDataDir
}

// getEnv получает переменную окружения с значением по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt64 получает переменную окружения как int64
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как time.Duration
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
