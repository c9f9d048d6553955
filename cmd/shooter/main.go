// shooter is a terminal arcade shooter built on a small fixed-tick simulation.
//
// Usage:
//
//	shooter list                        - List available games
//	shooter play [game]                 - Play a game (picker when omitted)
//	shooter simulate <game> --script S  - Run the simulation headless
//	shooter config [game]               - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--log-level <level>   - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-shooter/internal/games/shooter"
)

var (
	// Global flags
	flagFPS      int
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shooter",
	Short: "TUI Shooter - a tiny arcade shooter in your terminal",
	Long: `TUI Shooter moves a ship along the bottom of a fixed arena and fires
projectiles at the enemies above it.

Available commands:
  list      - Show all available games
  play      - Play a game
  simulate  - Drive the simulation with a scripted command stream
  config    - Print the effective YAML configuration

Examples:
  shooter list
  shooter play shooter_swarm
  shooter simulate shooter --script "LLLLF" --ticks 120
  shooter config > ~/.shooter/configs/shooter.yaml`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the CLI logger writing to w at the --log-level level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "shooter",
	})
	logger.SetLevel(level)
	return logger, nil
}

// fail prints an error in the CLI format and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
