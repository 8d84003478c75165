package logs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/updatekit/updatekit-go/internal/config"
)

func TestSetup_ConsoleOnly(t *testing.T) {
	logger, err := Setup(&config.LogConfig{
		Level:         "debug",
		EnableConsole: true,
	}, t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Debug("console logger works")
	// Syncing a stderr-backed core returns EINVAL on Linux; the error is
	// meaningless here.
	_ = logger.Sync()
}

func TestSetup_FileOutput(t *testing.T) {
	dir := t.TempDir()

	logger, err := Setup(&config.LogConfig{
		Level:      "info",
		EnableFile: true,
		Filename:   "test.log",
		MaxSize:    1,
		JSONFormat: true,
	}, dir)
	require.NoError(t, err)

	logger.Info("file logger works")
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, "test.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "file logger works")
}

func TestSetup_NilConfig(t *testing.T) {
	logger, err := Setup(nil, t.TempDir())
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestSetup_UnknownLevel(t *testing.T) {
	_, err := Setup(&config.LogConfig{Level: "shout", EnableConsole: true}, t.TempDir())
	assert.Error(t, err)
}
