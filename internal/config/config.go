// ABOUTME: Forum client configuration management
// ABOUTME: Handles review-server settings and reviewer preferences

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// DefaultServer is the default review-server base URL.
const DefaultServer = "https://st.unicode.org/cldr-apps"

// Config stores forum client configuration.
type Config struct {
	// Server is the review-server base URL.
	Server string `json:"server,omitempty"`
	// Locale is the default locale to load.
	Locale string `json:"locale,omitempty"`
	// UserID is the numeric reviewer id, used by the "mine" filter.
	UserID int64 `json:"user_id,omitempty"`
	// UserName is the display name used when composing.
	UserName string `json:"user_name,omitempty"`
	// AutoFlush sends queued posts on the next successful load.
	AutoFlush bool `json:"auto_flush,omitempty"`
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "cldrforum", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// GetServer returns the server URL, preferring the environment variable.
func (c *Config) GetServer() string {
	if server := os.Getenv("CLDRFORUM_SERVER"); server != "" {
		return server
	}
	if c.Server != "" {
		return c.Server
	}
	return DefaultServer
}
