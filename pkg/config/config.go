/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the rowlog configuration
type Config struct {
	DataDir string  `yaml:"data_dir"`
	Table   string  `yaml:"table"`
	Segment Segment `yaml:"segment"`
	Logging Logging `yaml:"logging"`
}

// Segment contains segment file tuning
type Segment struct {
	MaxRecordSize int    `yaml:"max_record_size"`
	BufferSize    int    `yaml:"buffer_size"`
	FsyncInterval string `yaml:"fsync_interval"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data",
		Table:   "default",
		Segment: Segment{
			MaxRecordSize: 1 << 20,
			BufferSize:    64 * 1024,
			FsyncInterval: "0s",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// FsyncEvery parses the configured fsync interval. An empty or zero interval
// means fsync on every append.
func (c *Config) FsyncEvery() (time.Duration, error) {
	if c.Segment.FsyncInterval == "" {
		return 0, nil
	}
	interval, err := time.ParseDuration(c.Segment.FsyncInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid fsync_interval: %w", err)
	}
	if interval < 0 {
		return 0, fmt.Errorf("invalid fsync_interval: %s is negative", c.Segment.FsyncInterval)
	}
	return interval, nil
}

// LoadConfig loads configuration from the specified path
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	// Validate path to prevent directory traversal
	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write with secure permissions (0600)
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// BootstrapConfig creates a new configuration file if it doesn't exist
func BootstrapConfig(configPath string, dataDir string) (*Config, error) {
	config := DefaultConfig()
	if dataDir != "" {
		config.DataDir = dataDir
	}

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	// Use OS-specific default locations
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./rowlog.yaml"
	}

	// For Linux/macOS, use ~/.config/rowlog/config.yaml
	configDir := filepath.Join(homeDir, ".config", "rowlog")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
