// ABOUTME: Tests for forum client configuration
// ABOUTME: Verifies config load, save, and server precedence

package config

import (
	"path/filepath"
	"testing"
)

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()
	if path == "" {
		t.Error("GetConfigPath returned empty string")
	}
	if !filepath.IsAbs(path) {
		t.Errorf("GetConfigPath returned non-absolute path: %s", path)
	}
}

func TestLoadNonExistent(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed on non-existent config: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg := &Config{
		Server: "https://test.example.com",
		Locale: "fr_CA",
		UserID: 42,
	}

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Server != cfg.Server {
		t.Errorf("Server mismatch: got %s, want %s", loaded.Server, cfg.Server)
	}
	if loaded.Locale != cfg.Locale {
		t.Errorf("Locale mismatch: got %s, want %s", loaded.Locale, cfg.Locale)
	}
	if loaded.UserID != cfg.UserID {
		t.Errorf("UserID mismatch: got %d, want %d", loaded.UserID, cfg.UserID)
	}
}

func TestGetServerPrecedence(t *testing.T) {
	t.Setenv("CLDRFORUM_SERVER", "")

	cfg := &Config{}
	if got := cfg.GetServer(); got != DefaultServer {
		t.Errorf("expected default server, got %s", got)
	}

	cfg.Server = "https://from-config.example.com"
	if got := cfg.GetServer(); got != cfg.Server {
		t.Errorf("expected config server, got %s", got)
	}

	t.Setenv("CLDRFORUM_SERVER", "https://from-env.example.com")
	if got := cfg.GetServer(); got != "https://from-env.example.com" {
		t.Errorf("expected env server to win, got %s", got)
	}
}
