package config

import (
	"testing"
	"time"
)

func TestDefaultValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("STUDIQ_USER", "u1")
	t.Setenv("STUDIQ_DB", "/tmp/studiq-test.db")
	t.Setenv("STUDIQ_YOUTUBE_API_KEY", "yt-key")
	t.Setenv("STUDIQ_VIDEO_LIMIT", "7")
	t.Setenv("STUDIQ_SYNC_MAX_ATTEMPTS", "3")
	t.Setenv("STUDIQ_SYNC_RETENTION", "48h")
	t.Setenv("STUDIQ_DEBUG", "1")

	cfg := FromEnv()
	if cfg.UserID != "u1" || cfg.DBPath != "/tmp/studiq-test.db" {
		t.Errorf("user/db = %q/%q", cfg.UserID, cfg.DBPath)
	}
	if cfg.YouTubeAPIKey != "yt-key" || cfg.VideoLimit != 7 {
		t.Errorf("video = %q/%d", cfg.YouTubeAPIKey, cfg.VideoLimit)
	}
	if cfg.Sync.MaxAttempts != 3 || cfg.Sync.Retention != 48*time.Hour {
		t.Errorf("sync = %+v", cfg.Sync)
	}
	if !cfg.Debug {
		t.Error("debug not set")
	}
}

func TestFromEnvIgnoresBadNumbers(t *testing.T) {
	t.Setenv("STUDIQ_VIDEO_LIMIT", "not-a-number")
	t.Setenv("STUDIQ_SYNC_RETENTION", "soon")

	cfg := FromEnv()
	if cfg.VideoLimit != Default().VideoLimit {
		t.Errorf("video limit = %d, want default", cfg.VideoLimit)
	}
	if cfg.Sync.Retention != Default().Sync.Retention {
		t.Errorf("retention = %v, want default", cfg.Sync.Retention)
	}
}

func TestValidateRejections(t *testing.T) {
	cfg := Default()
	cfg.VideoLimit = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative video limit accepted")
	}

	cfg = Default()
	cfg.Sync.MaxAttempts = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero max attempts accepted")
	}
}
