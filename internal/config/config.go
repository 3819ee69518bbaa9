package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/park285/chess-session/internal/clock"
)

type AppConfig struct {
	ListenAddr string

	RedisURL    string
	DatabaseURL string

	WebhookURL  string
	WebhookRoom string

	ClockBudget time.Duration
	SessionTTL  time.Duration
	MaxSessions int

	MessagesDir string
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		ListenAddr:  ":8080",
		ClockBudget: clock.DefaultBudget,
		SessionTTL:  24 * time.Hour,
		MaxSessions: 200,
	}

	if v := strings.TrimSpace(os.Getenv("LISTEN_ADDR")); v != "" {
		cfg.ListenAddr = v
	}
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.WebhookURL = strings.TrimRight(strings.TrimSpace(os.Getenv("WEBHOOK_URL")), "/")
	cfg.WebhookRoom = strings.TrimSpace(os.Getenv("WEBHOOK_ROOM"))
	cfg.MessagesDir = strings.TrimSpace(os.Getenv("MESSAGES_DIR"))

	if v := strings.TrimSpace(os.Getenv("CLOCK_BUDGET")); v != "" {
		d, err := clock.ParseBudget(v)
		if err != nil {
			return nil, fmt.Errorf("CLOCK_BUDGET: %w", err)
		}
		cfg.ClockBudget = d
	}
	if v := strings.TrimSpace(os.Getenv("SESSION_TTL")); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = d
	}
	if v := strings.TrimSpace(os.Getenv("MAX_SESSIONS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxSessions = n
		}
	}

	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}
	if cfg.WebhookURL != "" && cfg.WebhookRoom == "" {
		return nil, errors.New("WEBHOOK_ROOM is required when WEBHOOK_URL is set")
	}
	return cfg, nil
}

// parseDuration accepts a Go duration or whole seconds.
func parseDuration(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive: %q", v)
	}
	return d, nil
}
