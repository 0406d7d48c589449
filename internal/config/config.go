// Package config loads settings from the environment, with an optional .env
// file for local runs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramBotToken string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiTimeout time.Duration

	Environment string
	LogFilePath string

	SessionTTL         time.Duration
	HistoryLimit       int
	RateLimitPerMinute int
}

// Load reads the environment (after godotenv, if a .env file exists) and
// validates the required keys.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TelegramBotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiTimeout:      time.Duration(getEnvAsInt("GEMINI_TIMEOUT_SECONDS", 30)) * time.Second,
		Environment:        getEnv("GO_ENV", "development"),
		LogFilePath:        os.Getenv("LOG_FILE_PATH"),
		SessionTTL:         time.Duration(getEnvAsInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		HistoryLimit:       getEnvAsInt("HISTORY_LIMIT", 20),
		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 10),
	}

	if cfg.TelegramBotToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
