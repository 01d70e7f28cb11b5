// Package cli implements the world-dashboard command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"world-dashboard/config"
)

var (
	cfgFile  string
	locale   string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "world-dashboard",
	Short: "World clocks, sun windows and weather for a fixed set of cities",
	Long: `world-dashboard keeps live clocks, sunrise/sunset windows and weather
for a fixed list of cities and serves them as JSON or in the terminal.

Usage:
  world-dashboard serve             Run the refresh cycles and the JSON API
  world-dashboard watch             Live terminal dashboard
  world-dashboard delta FROM TO     Hour difference between two cities
  world-dashboard cities            List the configured cities`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "", "label language: en or zh (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if locale != "" {
		cfg.Locale = locale
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}
