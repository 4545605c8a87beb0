// Package config assembles the application configuration from defaults and
// environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/anupamd/studiq/internal/llm"
	"github.com/anupamd/studiq/internal/syncq"
)

// Config is the top-level application configuration.
type Config struct {
	// UserID identifies the acting student.
	UserID string

	// DBPath is the SQLite database file. Empty means the default XDG path.
	DBPath string

	// LLM configures the generative backend for AI recommendations and
	// plans. An unconfigured backend disables those tiers, not the app.
	LLM llm.Config

	// YouTubeAPIKey enables video recommendations; empty disables them.
	YouTubeAPIKey string

	// VideoLimit caps videos fetched per recommendation request.
	VideoLimit int

	// ResultCap caps items in one recommendation response (0 = uncapped).
	ResultCap int

	// Sync bounds the offline queue's retry and retention behavior.
	Sync syncq.Config

	// Debug switches logging to verbose development output.
	Debug bool
}

// Default returns the configuration defaults.
func Default() Config {
	return Config{
		VideoLimit: 4,
		LLM:        llm.DefaultConfig(),
		Sync:       syncq.DefaultConfig(),
	}
}

// FromEnv builds a Config from defaults overlaid with environment
// variables.
func FromEnv() Config {
	cfg := Default()
	cfg.LLM = llm.ConfigFromEnv()

	if v := os.Getenv("STUDIQ_USER"); v != "" {
		cfg.UserID = v
	}
	if v := os.Getenv("STUDIQ_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("STUDIQ_YOUTUBE_API_KEY"); v != "" {
		cfg.YouTubeAPIKey = v
	}
	if v := os.Getenv("STUDIQ_VIDEO_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.VideoLimit = n
		}
	}
	if v := os.Getenv("STUDIQ_RESULT_CAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.ResultCap = n
		}
	}
	if v := os.Getenv("STUDIQ_SYNC_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Sync.MaxAttempts = n
		}
	}
	if v := os.Getenv("STUDIQ_SYNC_RETENTION"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Sync.Retention = d
		}
	}
	if v := os.Getenv("STUDIQ_DEBUG"); v == "1" || v == "true" {
		cfg.Debug = true
	}

	return cfg
}

// Validate checks the configuration for inconsistencies.
func (c Config) Validate() error {
	if c.VideoLimit < 0 {
		return fmt.Errorf("video limit must not be negative, got %d", c.VideoLimit)
	}
	if c.ResultCap < 0 {
		return fmt.Errorf("result cap must not be negative, got %d", c.ResultCap)
	}
	if c.Sync.MaxAttempts < 1 {
		return fmt.Errorf("sync max attempts must be at least 1, got %d", c.Sync.MaxAttempts)
	}
	if c.LLM.Configured() {
		if err := c.LLM.Validate(); err != nil {
			return fmt.Errorf("llm: %w", err)
		}
	}
	return nil
}
