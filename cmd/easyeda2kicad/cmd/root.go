package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/OpenTraceLab/easyeda2kicad/internal/config"
	"github.com/OpenTraceLab/easyeda2kicad/internal/logging"
)

var (
	// Global flags
	verbose    bool
	logFormat  string
	configPath string

	// Set up by the root pre-run hook
	appConfig = config.Default()
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "easyeda2kicad",
	Short: "Convert EasyEDA footprints to KiCad",
	Long: `easyeda2kicad converts EasyEDA component footprints into KiCad 6
footprint files (.kicad_mod).

Examples:
  easyeda2kicad convert C2040.json                 # Write <package>.kicad_mod
  easyeda2kicad convert C2040.json -o lib/U1.kicad_mod --assembly tht
  easyeda2kicad info lib/U1.kicad_mod              # Summarise a footprint
  easyeda2kicad view C2040.json                    # Preview the conversion`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) { _ = logger.Sync() },
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: console or json (default from config)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $"+config.EnvPath+" or the user config dir)")
}

// setup loads persisted defaults and builds the logger
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if configPath != "" {
		appConfig, err = config.LoadFrom(configPath)
	} else {
		appConfig, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logCfg := appConfig.Logging
	if verbose {
		logCfg.Level = "debug"
	}
	if logFormat != "" {
		logCfg.Format = logFormat
	}

	l, err := logging.New(logCfg)
	if err != nil {
		return err
	}
	logger = l
	return nil
}
