package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.AppID = "com.example.app"
	cfg.AppVersionCode = "229"
	cfg.AppVersionName = "2.5.1"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, DefaultChannel, cfg.Channel)
	require.NotNil(t, cfg.Logging)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Logging.EnableConsole)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing_endpoint", func(c *Config) { c.Endpoint = "" }},
		{"malformed_endpoint", func(c *Config) { c.Endpoint = "not a url" }},
		{"missing_channel", func(c *Config) { c.Channel = "" }},
		{"missing_app_id", func(c *Config) { c.AppID = "" }},
		{"missing_version_code", func(c *Config) { c.AppVersionCode = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "updatekit.json")

	content := `{
		"api_key": "env:UPDATEKIT_TEST_API_KEY",
		"channel": "beta",
		"app_id": "com.example.app",
		"app_version_code": "229",
		"app_version_name": "2.5.1",
		"data_dir": "` + filepath.ToSlash(filepath.Join(dir, "data")) + `"
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "beta", cfg.Channel)
	assert.Equal(t, "com.example.app", cfg.AppID)
	assert.Equal(t, "229", cfg.AppVersionCode)
	assert.Equal(t, DefaultEndpoint, cfg.Endpoint, "defaults survive partial files")
	assert.DirExists(t, cfg.DataDir)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
