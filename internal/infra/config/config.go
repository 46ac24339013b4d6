package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"rider_slip_service/internal/domain/dedup"
)

// AppConfig holds all configuration for the application.
type AppConfig struct {
	HTTPPort    string
	DatabaseURL string
	AdminSecret string
	ArtifactDir string

	// Commission rates in minor currency units per slip.
	RateCashMinor   int64
	RateOnlineMinor int64

	DedupScope dedup.ScopePolicy
	WeekWindow int // how many recent weeks are open for submission

	LogLevel    string
	Environment string

	// Telegram notifications are optional; both values must be set to
	// enable them.
	TelegramToken string
	AdminChatID   int64

	CronSpecWeekOpen string
	CronSpecDigest   string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.HTTPPort = os.Getenv("HTTP_PORT")
	if cfg.HTTPPort == "" {
		cfg.HTTPPort = "8080"
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.AdminSecret = os.Getenv("ADMIN_SECRET")
	if cfg.AdminSecret == "" {
		return nil, fmt.Errorf("ADMIN_SECRET is not set")
	}

	cfg.ArtifactDir = os.Getenv("ARTIFACT_DIR")
	if cfg.ArtifactDir == "" {
		cfg.ArtifactDir = "data/artifacts"
	}

	cfg.RateCashMinor, err = parseRate(os.Getenv("COMMISSION_RATE_CASH"), 10)
	if err != nil {
		return nil, fmt.Errorf("invalid COMMISSION_RATE_CASH: %w", err)
	}
	cfg.RateOnlineMinor, err = parseRate(os.Getenv("COMMISSION_RATE_ONLINE"), 12)
	if err != nil {
		return nil, fmt.Errorf("invalid COMMISSION_RATE_ONLINE: %w", err)
	}

	scope := os.Getenv("DEDUP_SCOPE")
	if scope == "" {
		scope = string(dedup.ScopeBranchRider)
	}
	cfg.DedupScope = dedup.ScopePolicy(scope)
	if !cfg.DedupScope.Valid() {
		return nil, fmt.Errorf("invalid DEDUP_SCOPE: %q", scope)
	}

	weekWindowStr := os.Getenv("WEEK_WINDOW")
	if weekWindowStr == "" {
		cfg.WeekWindow = 4
	} else {
		cfg.WeekWindow, err = strconv.Atoi(weekWindowStr)
		if err != nil || cfg.WeekWindow < 1 {
			return nil, fmt.Errorf("invalid WEEK_WINDOW: %q", weekWindowStr)
		}
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	adminChatStr := os.Getenv("ADMIN_CHAT_ID")
	if adminChatStr != "" {
		cfg.AdminChatID, err = strconv.ParseInt(adminChatStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_CHAT_ID: %w", err)
		}
	}

	cfg.CronSpecWeekOpen = os.Getenv("CRON_SPEC_WEEK_OPEN")
	if cfg.CronSpecWeekOpen == "" {
		cfg.CronSpecWeekOpen = "0 9 * * 1" // Monday 09:00
	}
	cfg.CronSpecDigest = os.Getenv("CRON_SPEC_CR_DIGEST")
	if cfg.CronSpecDigest == "" {
		cfg.CronSpecDigest = "0 18 * * *" // 18:00 daily
	}

	return cfg, nil
}

// parseRate converts a commission rate expressed in major currency units
// (possibly fractional, e.g. "12.5") into minor units, rounding half-up.
func parseRate(s string, defaultMajor int64) (int64, error) {
	if s == "" {
		return defaultMajor * 100, nil
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, fmt.Errorf("rate must be non-negative")
	}
	return int64(value*100 + 0.5), nil
}
