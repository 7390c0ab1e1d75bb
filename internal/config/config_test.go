package config

import (
	"testing"
	"time"
)

func TestLoadReadsAPIKeyFromEnv(t *testing.T) {
	t.Setenv("ALPHAVANTAGE_API_KEY", "SECRETKEY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "SECRETKEY" {
		t.Fatalf("APIKey = %q, want SECRETKEY", cfg.APIKey)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ALPHAVANTAGE_API_KEY", "SECRETKEY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AppName != "vantage-fetcher" {
		t.Fatalf("AppName = %q", cfg.AppName)
	}
	if cfg.BaseURL != "https://www.alphavantage.co/query" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if cfg.ValidateInputs {
		t.Fatalf("ValidateInputs should default to false")
	}
	if cfg.PublishersFile != "" {
		t.Fatalf("PublishersFile = %q, want empty (log-only)", cfg.PublishersFile)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ALPHAVANTAGE_API_KEY", "SECRETKEY")
	t.Setenv("ALPHAVANTAGE_BASE_URL", "http://localhost:9999/query")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "5")
	t.Setenv("VALIDATE_INPUTS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "http://localhost:9999/query" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Fatalf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if !cfg.ValidateInputs {
		t.Fatalf("ValidateInputs not overridden")
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	// Empty env vars count as unset for viper, so this both clears any
	// ambient key and restores it after the test.
	t.Setenv("ALPHAVANTAGE_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when api key is missing")
	}
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("ALPHAVANTAGE_API_KEY", "SECRETKEY")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "-5")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-positive timeout")
	}
}
