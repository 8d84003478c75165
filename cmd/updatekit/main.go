package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/updatekit/updatekit-go/internal/appctx"
	"github.com/updatekit/updatekit-go/internal/config"
	"github.com/updatekit/updatekit-go/internal/logs"
)

var (
	configFile string
	dataDir    string
	logLevel   string
	logToFile  bool

	version = "v0.1.0" // This will be injected by -ldflags during build
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "updatekit",
		Short:         "Update notification client - queries a channel config endpoint and decides what to show",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "Data directory path (default: ~/.updatekit)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logToFile, "log-to-file", false, "Enable logging to a rotated file in the data directory")

	rootCmd.AddCommand(checkCmd(), openCmd(), shownCmd(), skipCmd(), authCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newApp loads configuration, builds the logger, and wires the application
// handle. The caller owns Close.
func newApp() (*appctx.App, error) {
	if dataDir != "" {
		viper.Set("data-dir", dataDir)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	if cfg.Logging == nil {
		cfg.Logging = config.DefaultConfig().Logging
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logToFile {
		cfg.Logging.EnableFile = true
	}

	logger, err := logs.Setup(cfg.Logging, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	return appctx.New(cfg, logger)
}
