package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultDataDir is created under the user's home directory.
	DefaultDataDir = ".updatekit"

	// ConfigFileName is the config file looked up inside the data dir.
	ConfigFileName = "updatekit.json"
)

// Load loads configuration from a file (explicit path, or the default
// location), then applies environment and flag overrides through viper.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	setupViper()

	if configPath == "" {
		configPath = viper.GetString("config")
	}
	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if defaultPath, ok := defaultConfigPath(); ok {
		if err := loadConfigFile(defaultPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", defaultPath, err)
		}
	}

	// Environment variables and CLI flags override file values.
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(homeDir, DefaultDataDir)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", cfg.DataDir, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViper binds the UPDATEKIT_* environment namespace.
func setupViper() {
	viper.SetEnvPrefix("UPDATEKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadConfigFile merges a JSON config file into cfg.
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

// defaultConfigPath returns ~/.updatekit/updatekit.json if it exists.
func defaultConfigPath() (string, bool) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	path := filepath.Join(homeDir, DefaultDataDir, ConfigFileName)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}
