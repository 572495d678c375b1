// oxy-rts is an RTS camera view over a ground grid: free-look camera, WASD and
// mouse navigation, and click-to-select grid cells with restricted zones.
//
// Usage:
//
//	oxy-rts run                      - Open the window and start the view
//	oxy-rts pick --x 640 --y 360     - Resolve a screen position to a grid cell headlessly
//	oxy-rts coverage                 - Print a screen map of pickable cells
//	oxy-rts config                   - Print the effective configuration
//
// Global flags:
//
//	--config <path>      - Path to a config YAML (default: search ~/.oxy-rts, ./configs)
//	--log-level <level>  - debug, info, warn or error (default: from config)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Carmen-Shannon/oxy-rts/engine/config"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string

	// cfg is loaded once before any subcommand runs.
	cfg    config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "oxy-rts",
	Short: "oxy-rts - RTS camera and grid picking",
	Long: `oxy-rts renders a ground grid under a free-look RTS camera and
selects the grid cell under the cursor on left click.

Controls:
  W/A/S/D          - Move forward/left/back/right
  Space/LeftShift  - Move up/down
  Arrow keys       - Look
  Right mouse drag - Rotate
  Middle drag      - Pan
  Wheel            - Raise/lower the camera
  Left click       - Select the cell under the cursor
  R                - Reset the camera
  Esc              - Quit

Examples:
  oxy-rts run
  oxy-rts run --config ./my-rts.yaml
  oxy-rts pick --x 640 --y 360
  oxy-rts config > oxy-rts.yaml`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(coverageCmd)
	rootCmd.AddCommand(configCmd)
}

// setup builds the logger shared by every subcommand and loads the configuration.
// The logger starts at info (or --log-level) so skipped config files are reported,
// then takes the configured level.
func setup(cmd *cobra.Command, args []string) error {
	logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		ReportTimestamp: true,
		Prefix:          "oxy-rts",
		Level:           log.InfoLevel,
	})
	if flagLogLevel != "" {
		lvl, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
		}
		logger.SetLevel(lvl)
	}

	loaded, err := config.Load(flagConfig, logger)
	if err != nil {
		return err
	}
	cfg = loaded

	level := cfg.Engine.LogLevel
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger.SetLevel(lvl)
	log.SetDefault(logger)
	return nil
}
