package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.DataDir != "./data" {
		t.Errorf("DataDir = %q, want ./data", cfg.DataDir)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.APITimeout != DefaultAPITimeout {
		t.Errorf("APITimeout = %v, want %v", cfg.APITimeout, DefaultAPITimeout)
	}
	if cfg.ExtractTimeout != DefaultExtractTimeout {
		t.Errorf("ExtractTimeout = %v, want %v", cfg.ExtractTimeout, DefaultExtractTimeout)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TOURWATCH_DATA_DIR", "/tmp/tw")
	t.Setenv("TICKETMASTER_API_KEY", "tm-key")
	t.Setenv("TOURWATCH_API_TIMEOUT", "3s")
	t.Setenv("TOURWATCH_EXTRACT_TIMEOUT", "not-a-duration")

	cfg := Load()

	if cfg.DataDir != "/tmp/tw" {
		t.Errorf("DataDir = %q, want /tmp/tw", cfg.DataDir)
	}
	if cfg.TicketmasterAPIKey != "tm-key" {
		t.Errorf("TicketmasterAPIKey = %q, want tm-key", cfg.TicketmasterAPIKey)
	}
	if cfg.APITimeout != 3*time.Second {
		t.Errorf("APITimeout = %v, want 3s", cfg.APITimeout)
	}
	// Invalid durations fall back to the default
	if cfg.ExtractTimeout != DefaultExtractTimeout {
		t.Errorf("ExtractTimeout = %v, want %v", cfg.ExtractTimeout, DefaultExtractTimeout)
	}
}
