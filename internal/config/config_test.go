package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_RoundTrip(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "contactdesk-config")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	cfg := &Config{Version: "1.0", UserID: "USR-001", APIAddr: "127.0.0.1:9000", PageSize: 50}
	if err := SaveConfig(tmpDir, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.UserID != "USR-001" || loaded.APIAddr != "127.0.0.1:9000" || loaded.PageSize != 50 {
		t.Errorf("unexpected config: %+v", loaded)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "contactdesk-config")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	if _, err := LoadConfig(tmpDir); err == nil {
		t.Fatal("expected error for missing config")
	}
}

func TestLoadConfig_MinimalFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "contactdesk-config")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	deskDir := filepath.Join(tmpDir, ".contactdesk")
	if err := os.MkdirAll(deskDir, 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	raw := `{"version":"1.0","user_id":"USR-002"}`
	if err := os.WriteFile(filepath.Join(deskDir, "config.json"), []byte(raw), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.UserID != "USR-002" {
		t.Errorf("UserID = %q, want USR-002", cfg.UserID)
	}
	if cfg.APIAddrOrDefault() != "127.0.0.1:8470" {
		t.Errorf("unexpected default addr: %s", cfg.APIAddrOrDefault())
	}
	if cfg.PageSizeOrDefault() != 25 {
		t.Errorf("unexpected default page size: %d", cfg.PageSizeOrDefault())
	}
}
