package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "skill-matrix")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("CONFIG_FILE", "")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Matching.DefaultThreshold != 70 || cfg.Matching.DefaultLimit != 20 {
		t.Fatalf("unexpected matching defaults: %+v", cfg.Matching)
	}
	if cfg.Matching.AutoAssignWorkers != 4 || cfg.Matching.AutoAssignDueDays != 30 {
		t.Fatalf("unexpected auto-assign defaults: %+v", cfg.Matching)
	}
	if cfg.Matching.SearchCacheTTL != 5*time.Minute {
		t.Fatalf("unexpected cache ttl: %s", cfg.Matching.SearchCacheTTL)
	}
	if cfg.Log.Format != "json" || cfg.Database.DBSSLMode != "disable" {
		t.Fatalf("unexpected defaults: %+v %+v", cfg.Log, cfg.Database)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	setRequired(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	body := "MATCH_DEFAULT_THRESHOLD: 85\nLOG_LEVEL: debug\n"
	if err := os.WriteFile(file, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("CONFIG_FILE", file)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Matching.DefaultThreshold != 85 {
		t.Fatalf("expected threshold from file, got %v", cfg.Matching.DefaultThreshold)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("expected env to win, got %s", cfg.Log.Level)
	}
}

func TestLoad_RejectsBadThreshold(t *testing.T) {
	setRequired(t)
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("MATCH_DEFAULT_THRESHOLD", "120")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for out-of-range threshold")
	}
}
