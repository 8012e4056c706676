package config

import (
	"strings"
	"testing"
)

func TestLoadEnv(t *testing.T) {
	t.Setenv("RELAY_ADDRESS", ":9999")
	t.Setenv("RELAY_MINIMAX_MODEL", "abab6.5s-chat")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Address != ":9999" {
		t.Fatalf("expected :9999 got %s", cfg.Address)
	}
	if cfg.MiniMax.Model != "abab6.5s-chat" {
		t.Fatalf("expected model override, got %s", cfg.MiniMax.Model)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(APIKeyEnv, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.MiniMax.APIKey != "" {
		t.Fatalf("expected empty key, got %q", cfg.MiniMax.APIKey)
	}
	if cfg.MiniMax.URL != "https://api.minimax.chat/v1/chat/completions" {
		t.Fatalf("unexpected url %s", cfg.MiniMax.URL)
	}
	if cfg.MiniMax.Model != "m2-her" {
		t.Fatalf("unexpected model %s", cfg.MiniMax.Model)
	}
	if cfg.MiniMax.Temperature != 1.0 || cfg.MiniMax.TopP != 0.95 {
		t.Fatalf("unexpected sampling %v/%v", cfg.MiniMax.Temperature, cfg.MiniMax.TopP)
	}
	if cfg.Address != ":3000" {
		t.Fatalf("unexpected address %s", cfg.Address)
	}
}

func TestLoadAPIKeyFromBareEnv(t *testing.T) {
	t.Setenv(APIKeyEnv, "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.MiniMax.APIKey != "sk-test" {
		t.Fatalf("expected key from %s, got %q", APIKeyEnv, cfg.MiniMax.APIKey)
	}
}

func TestRedactedHidesKey(t *testing.T) {
	cfg := &Config{Address: ":1", MiniMax: MiniMax{APIKey: "sk-secret", Model: "m2-her"}}

	out, err := cfg.Redacted()
	if err != nil {
		t.Fatalf("redact failed: %v", err)
	}
	if strings.Contains(out, "sk-secret") {
		t.Fatalf("key leaked: %s", out)
	}
	if !strings.Contains(out, "[REDACTED]") || !strings.Contains(out, "m2-her") {
		t.Fatalf("unexpected output: %s", out)
	}
	if cfg.MiniMax.APIKey != "sk-secret" {
		t.Fatalf("original config mutated")
	}
}

func TestLoadTelemetryEndpoint(t *testing.T) {
	t.Setenv("RELAY_TELEMETRY_ENDPOINT", "collector:4318")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.TelemetryEndpoint != "collector:4318" {
		t.Fatalf("expected collector:4318 got %q", cfg.TelemetryEndpoint)
	}
}
