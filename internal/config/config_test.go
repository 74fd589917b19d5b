package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.Timezone != "Asia/Jakarta" {
		t.Errorf("expected default timezone Asia/Jakarta, got %q", cfg.Timezone)
	}
	if cfg.AssetsDir != "assets" {
		t.Errorf("expected default assets dir 'assets', got %q", cfg.AssetsDir)
	}
	if cfg.RequestTimeoutSeconds != 30 {
		t.Errorf("expected default timeout 30s, got %d", cfg.RequestTimeoutSeconds)
	}
	if cfg.AllowSelfMessage {
		t.Error("self-messages should be suppressed by default")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.wabridge.yml")

	original := DefaultConfig()
	original.GatewayURL = "http://gateway:3000"
	original.GatewayUsername = "admin"
	original.GatewayPassword = "secret"
	original.WebhookSecret = "hook-secret"
	original.Port = 9090
	original.Timezone = "UTC"
	original.AllowSelfMessage = true

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.GatewayURL != original.GatewayURL {
		t.Errorf("gateway_url: got %q, want %q", loaded.GatewayURL, original.GatewayURL)
	}
	if loaded.WebhookSecret != original.WebhookSecret {
		t.Errorf("webhook_secret: got %q, want %q", loaded.WebhookSecret, original.WebhookSecret)
	}
	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.Timezone != original.Timezone {
		t.Errorf("timezone: got %q, want %q", loaded.Timezone, original.Timezone)
	}
	if !loaded.AllowSelfMessage {
		t.Error("allow_self_message not round-tripped")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load of missing file should fall back to defaults: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
}

func TestEnvOverride(t *testing.T) {
	os.Setenv("WABRIDGE_WEBHOOK_SECRET", "from-env")
	os.Setenv("WABRIDGE_PORT", "7070")
	defer os.Unsetenv("WABRIDGE_WEBHOOK_SECRET")
	defer os.Unsetenv("WABRIDGE_PORT")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.WebhookSecret != "from-env" {
		t.Errorf("env override not applied, got %q", cfg.WebhookSecret)
	}
	if cfg.Port != 7070 {
		t.Errorf("env port override not applied, got %d", cfg.Port)
	}
}

func TestValidate(t *testing.T) {
	valid := DefaultConfig()
	valid.GatewayURL = "http://gateway:3000"
	valid.WebhookSecret = "s"
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing gateway url", func(c *Config) { c.GatewayURL = "" }},
		{"missing secret", func(c *Config) { c.WebhookSecret = "" }},
		{"bad port", func(c *Config) { c.Port = -1 }},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }},
		{"negative timeout", func(c *Config) { c.RequestTimeoutSeconds = -5 }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		cfg.GatewayURL = "http://gateway:3000"
		cfg.WebhookSecret = "s"
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestLocationFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timezone = ""
	if cfg.Location().String() != "UTC" {
		t.Errorf("empty timezone should resolve to UTC, got %s", cfg.Location())
	}
	cfg.Timezone = "Asia/Jakarta"
	if cfg.Location().String() != "Asia/Jakarta" {
		t.Errorf("got %s", cfg.Location())
	}
}
