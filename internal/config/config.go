// Package config loads and saves the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Server configuration
	Server ServerConfig `toml:"server"`

	// Card catalog configuration
	Catalog CatalogConfig `toml:"catalog"`

	// Storage configuration
	Storage StorageConfig `toml:"storage"`

	// Recommendation service configuration
	Recommend RecommendConfig `toml:"recommend"`

	// Event configuration
	Events EventsConfig `toml:"events"`
}

// ServerConfig contains REST API server settings.
type ServerConfig struct {
	Port int `toml:"port"` // API server port
}

// CatalogConfig contains card catalog settings.
type CatalogConfig struct {
	BaseURL      string `toml:"base_url"`      // Catalog API root ("" = default)
	ArchetypeURL string `toml:"archetype_url"` // Archetype list URL ("" = default)
	CardFile     string `toml:"card_file"`     // Local catalog file override ("" = fetch from API)
	WatchFile    bool   `toml:"watch_file"`    // Reload CardFile on change
}

// StorageConfig contains snapshot persistence settings.
type StorageConfig struct {
	Path               string `toml:"path"`                // SQLite path ("" = ~/.ygo-companion/data.db)
	EncryptionPassword string `toml:"encryption_password"` // Snapshot encryption passphrase ("" = plaintext)
}

// RecommendConfig contains auto-complete settings.
type RecommendConfig struct {
	URL string `toml:"url"` // Recommendation endpoint ("" = feature disabled)
}

// EventsConfig contains event observer settings.
type EventsConfig struct {
	RecomputeDelay string `toml:"recompute_delay"` // Archetype recompute debounce (e.g. "250ms")
	VerboseLogging bool   `toml:"verbose_logging"` // Log every dispatched event
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Catalog: CatalogConfig{
			BaseURL:      "",
			ArchetypeURL: "",
			CardFile:     "",
			WatchFile:    false,
		},
		Storage: StorageConfig{
			Path:               "",
			EncryptionPassword: "",
		},
		Recommend: RecommendConfig{
			URL: "",
		},
		Events: EventsConfig{
			RecomputeDelay: "250ms",
			VerboseLogging: false,
		},
	}
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".ygo-companion")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from disk. Returns default config if the
// file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &config, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if _, err := time.ParseDuration(c.Events.RecomputeDelay); err != nil {
		return fmt.Errorf("invalid recompute delay %q: %w", c.Events.RecomputeDelay, err)
	}

	if c.Catalog.WatchFile && c.Catalog.CardFile == "" {
		return fmt.Errorf("watch_file requires card_file to be set")
	}

	return nil
}

// GetRecomputeDelay returns the recompute debounce as a duration.
func (c *Config) GetRecomputeDelay() (time.Duration, error) {
	return time.ParseDuration(c.Events.RecomputeDelay)
}

// DatabasePath resolves the storage path, defaulting to the data file
// under the user's config directory.
func (c *Config) DatabasePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".ygo-companion", "data.db"), nil
}
