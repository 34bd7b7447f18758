package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.HTTPPort != 8080 {
		t.Fatalf("unexpected default port: %d", cfg.HTTPPort)
	}
	if cfg.CompletionModel != "gpt-3.5-turbo" {
		t.Fatalf("unexpected default model: %s", cfg.CompletionModel)
	}
	if cfg.TerminalPhrase != DefaultTerminalPhrase {
		t.Fatalf("unexpected terminal phrase: %q", cfg.TerminalPhrase)
	}
	if cfg.GatewayTimeout != 30*time.Second {
		t.Fatalf("unexpected gateway timeout: %v", cfg.GatewayTimeout)
	}
	if cfg.PersonaMaxTokens != 150 || cfg.PersonaTemperature != 0.7 {
		t.Fatalf("unexpected persona defaults: %d / %v", cfg.PersonaMaxTokens, cfg.PersonaTemperature)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("TERMINAL_PHRASE", "the twin is ready")
	t.Setenv("PERSONA_TEMPERATURE", "0.3")
	t.Setenv("GATEWAY_TIMEOUT_MS", "5000")

	cfg := Load()

	if cfg.HTTPPort != 9090 {
		t.Fatalf("port override ignored: %d", cfg.HTTPPort)
	}
	if cfg.TerminalPhrase != "the twin is ready" {
		t.Fatalf("terminal phrase override ignored: %q", cfg.TerminalPhrase)
	}
	if cfg.PersonaTemperature != 0.3 {
		t.Fatalf("temperature override ignored: %v", cfg.PersonaTemperature)
	}
	if cfg.GatewayTimeout != 5*time.Second {
		t.Fatalf("timeout override ignored: %v", cfg.GatewayTimeout)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-number")
	t.Setenv("PERSONA_TEMPERATURE", "warm")

	cfg := Load()

	if cfg.HTTPPort != 8080 {
		t.Fatalf("malformed int must fall back to default, got %d", cfg.HTTPPort)
	}
	if cfg.PersonaTemperature != 0.7 {
		t.Fatalf("malformed float must fall back to default, got %v", cfg.PersonaTemperature)
	}
}
