package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/games/shooter"
	"github.com/vovakirdan/tui-shooter/internal/registry"
)

var flagConfigPath string

var configCmd = &cobra.Command{
	Use:   "config [game]",
	Short: "Print the effective configuration",
	Long: `Loads the configuration the way 'play' does and prints it as YAML.

Search order:
  --config path
  ~/.shooter/configs/shooter.yaml
  ./configs/shooter.yaml
  built-in defaults`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfigPath, "config", "", "Path to custom game config YAML")
}

func runConfig(cmd *cobra.Command, args []string) {
	gameID := shooter.IDSingle
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		fail("unknown game %q", gameID)
	}

	if flagConfigPath != "" {
		// Report a broken file instead of silently printing defaults.
		if _, err := config.LoadShooter(flagConfigPath); err != nil {
			fail("%v", err)
		}
	}

	logger, err := newLogger(os.Stderr)
	if err != nil {
		fail("%v", err)
	}
	shooter.SetConfigPath(flagConfigPath)
	shooter.SetLogger(logger)

	data, err := config.Marshal(shooter.LoadConfig(gameID))
	if err != nil {
		fail("%v", err)
	}
	fmt.Print(string(data))
}
