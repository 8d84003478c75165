// Package config holds the updatekit client configuration: which channel to
// query, how the app identifies itself, and where local state lives.
package config

import (
	"fmt"
	"net/url"
)

const (
	// DefaultEndpoint is the hosted config endpoint.
	DefaultEndpoint = "https://api.updatekit.io/v1/config"

	// DefaultChannel is the store distribution track.
	DefaultChannel = "appstore"
)

// Config represents the main configuration structure.
type Config struct {
	// Endpoint is the config endpoint URL.
	Endpoint string `json:"endpoint" mapstructure:"endpoint"`
	// APIKey is the key or a reference to it ("env:NAME", "keyring:NAME").
	APIKey  string `json:"api_key" mapstructure:"api-key"`
	Channel string `json:"channel" mapstructure:"channel"`

	// App identity reported to the server.
	AppID          string `json:"app_id" mapstructure:"app-id"`
	AppVersionCode string `json:"app_version_code" mapstructure:"app-version-code"`
	AppVersionName string `json:"app_version_name" mapstructure:"app-version-name"`

	// Device and locale fields reported to the server.
	LocaleCountry      string `json:"phone_locale_country" mapstructure:"locale-country"`
	LocaleLanguage     string `json:"phone_locale_language" mapstructure:"locale-language"`
	OSVersionCode      string `json:"os_version_code" mapstructure:"os-version-code"`
	DeviceManufacturer string `json:"device_manufacturer" mapstructure:"device-manufacturer"`
	DeviceBrand        string `json:"device_brand" mapstructure:"device-brand"`
	DeviceModel        string `json:"device_model" mapstructure:"device-model"`

	// DataDir holds the local settings database.
	DataDir string `json:"data_dir" mapstructure:"data-dir"`

	// Logging configuration
	Logging *LogConfig `json:"logging,omitempty" mapstructure:"logging"`
}

// LogConfig represents logging configuration.
type LogConfig struct {
	Level         string `json:"level" mapstructure:"level"`
	EnableFile    bool   `json:"enable_file" mapstructure:"enable-file"`
	EnableConsole bool   `json:"enable_console" mapstructure:"enable-console"`
	Filename      string `json:"filename" mapstructure:"filename"`
	MaxSize       int    `json:"max_size" mapstructure:"max-size"`       // MB
	MaxBackups    int    `json:"max_backups" mapstructure:"max-backups"` // number of backup files
	MaxAge        int    `json:"max_age" mapstructure:"max-age"`         // days
	Compress      bool   `json:"compress" mapstructure:"compress"`
	JSONFormat    bool   `json:"json_format" mapstructure:"json-format"`
}

// DefaultConfig returns a configuration with sane defaults. App identity
// fields are empty and must come from the config file or flags.
func DefaultConfig() *Config {
	return &Config{
		Endpoint: DefaultEndpoint,
		Channel:  DefaultChannel,
		Logging: &LogConfig{
			Level:         "info",
			EnableConsole: true,
			Filename:      "updatekit.log",
			MaxSize:       10,
			MaxBackups:    5,
			MaxAge:        30,
			Compress:      true,
		},
	}
}

// Validate checks the configuration for missing or malformed fields.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	if u, err := url.Parse(c.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("endpoint %q is not a valid URL", c.Endpoint)
	}
	if c.Channel == "" {
		return fmt.Errorf("channel is required")
	}
	if c.AppID == "" {
		return fmt.Errorf("app-id is required")
	}
	if c.AppVersionCode == "" {
		return fmt.Errorf("app-version-code is required")
	}
	return nil
}
