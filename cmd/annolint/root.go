package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"annolint/internal/config"
	"annolint/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	logLevel   string
	logFormat  string
	configPath string
}

// cfg is the effective configuration, loaded before any subcommand runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "annolint",
	Short: "Quality audit for crowd-sourced image annotations",
	Long: "Annolint fetches bounding-box annotation tasks from the Scale platform\n" +
		"and flags quality defects: contradictory occlusion attributes, stray\n" +
		"clicks, and background colors inconsistent with the image pixels.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, err := logging.ParseLevel(rootFlags.logLevel)
		if err != nil {
			return err
		}
		logging.Init(level, rootFlags.logFormat)

		cfg, err = config.LoadFromPath(rootFlags.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format (text, json)")
	pf.StringVar(&rootFlags.configPath, "config", ".annolint.yaml", "Config file path (missing file uses defaults)")

	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}
