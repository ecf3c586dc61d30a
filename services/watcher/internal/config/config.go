package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAPIURL         = "https://api.telegram.org"
	defaultDatabasePath   = "data/telegram_group_stats.db"
	defaultMinInterval    = 5 * time.Minute
	defaultRequestTimeout = 30 * time.Second
)

// Config holds runtime configuration for the watcher service.
type Config struct {
	DatabaseURL    string
	APIURL         string
	BotToken       string
	TargetChatID   string
	MinInterval    time.Duration
	RequestTimeout time.Duration
	DryRun         bool
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.BotToken = strings.TrimSpace(os.Getenv("BOT_TOKEN"))
	if cfg.BotToken == "" {
		return cfg, errors.New("BOT_TOKEN is required")
	}

	cfg.TargetChatID = strings.TrimSpace(os.Getenv("TARGET_CHAT_ID"))
	if cfg.TargetChatID == "" {
		return cfg, errors.New("TARGET_CHAT_ID is required")
	}

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = defaultDatabasePath
	}

	cfg.APIURL = strings.TrimSpace(os.Getenv("TELEGRAM_API_URL"))
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}

	cfg.MinInterval = defaultMinInterval
	if v := strings.TrimSpace(os.Getenv("WATCHER_MIN_INTERVAL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid WATCHER_MIN_INTERVAL: %w", err)
		}
		cfg.MinInterval = d
	}

	cfg.RequestTimeout = defaultRequestTimeout
	if v := strings.TrimSpace(os.Getenv("WATCHER_REQUEST_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid WATCHER_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}

	dryRun := strings.TrimSpace(os.Getenv("DRY_RUN"))
	cfg.DryRun = dryRun == "1" || strings.EqualFold(dryRun, "true")

	return cfg, nil
}
