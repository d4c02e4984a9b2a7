package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the flat contactdesk configuration
type Config struct {
	Version  string `json:"version"`
	UserID   string `json:"user_id"`             // acting agent for CLI sessions
	APIAddr  string `json:"api_addr,omitempty"`  // listen address for the HTTP server
	PageSize int    `json:"page_size,omitempty"` // default contact list page size
}

// LoadConfig reads .contactdesk/config.json from the specified directory.
// Resolution order: cwd only (no home fallback).
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".contactdesk", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	deskDir := filepath.Join(dir, ".contactdesk")
	if err := os.MkdirAll(deskDir, 0755); err != nil {
		return fmt.Errorf("failed to create .contactdesk dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(deskDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// APIAddrOrDefault returns the configured listen address or the default.
func (c *Config) APIAddrOrDefault() string {
	if c.APIAddr != "" {
		return c.APIAddr
	}
	return "127.0.0.1:8470"
}

// PageSizeOrDefault returns the configured page size or the default.
func (c *Config) PageSizeOrDefault() int {
	if c.PageSize > 0 {
		return c.PageSize
	}
	return 25
}
