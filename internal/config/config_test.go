package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PIXABAY_API_KEY", "test-key")
	path := writeConfig(t, "server:\n  mode: test\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.Mode != "test" {
		t.Errorf("expected mode test, got %q", cfg.Server.Mode)
	}
	if cfg.Pixabay.APIKey != "test-key" {
		t.Errorf("expected api key from env, got %q", cfg.Pixabay.APIKey)
	}
	if cfg.Gallery.LoadMoreInterval != 500*time.Millisecond {
		t.Errorf("expected 500ms interval, got %s", cfg.Gallery.LoadMoreInterval)
	}
	if cfg.Session.IdleTTL != 30*time.Minute {
		t.Errorf("expected 30m idle ttl, got %s", cfg.Session.IdleTTL)
	}
	if cfg.Session.CookieName != "pixgallery_session" {
		t.Errorf("unexpected cookie name %q", cfg.Session.CookieName)
	}
}

func TestLoad_FileOverrides(t *testing.T) {
	t.Setenv("PIXABAY_API_KEY", "test-key")
	path := writeConfig(t, `
server:
  port: 9090
pixabay:
  timeout: 3s
gallery:
  load_more_interval: 1s
  scroll_cards: 3
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 || cfg.Pixabay.Timeout != 3*time.Second {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Gallery.LoadMoreInterval != time.Second || cfg.Gallery.ScrollCards != 3 {
		t.Errorf("gallery values not applied: %+v", cfg.Gallery)
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("PIXABAY_API_KEY", "")
	path := writeConfig(t, "server:\n  port: 8080\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error without api key")
	}
}
