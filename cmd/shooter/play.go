package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/games/shooter"
	"github.com/vovakirdan/tui-shooter/internal/platform/tui"
	"github.com/vovakirdan/tui-shooter/internal/registry"
)

var flagConfig string

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game, or pick one from a menu.

Controls:
  Left/A/H       - Move left
  Right/D/L      - Move right
  Space/Up/K     - Fire
  P/Esc          - Pause
  R              - Restart
  ?              - Toggle full help
  Q/Ctrl+C       - Quit

Logs are written to ~/.shooter/shooter.log while the game owns the terminal.

Examples:
  shooter play
  shooter play shooter
  shooter play shooter_swarm --config ./my-shooter.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runPlay(cmd *cobra.Command, args []string) {
	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	var gameID string
	if len(args) == 1 {
		gameID = args[0]
	} else {
		id, updatedCfg, err := tui.RunMenu(cfg)
		if err != nil {
			fail("%v", err)
		}
		if id == "" {
			return
		}
		gameID, cfg = id, updatedCfg
	}

	if !registry.Exists(gameID) {
		fail("unknown game %q\nRun 'shooter list' to see available games.", gameID)
	}

	logFile, err := openLogFile()
	if err != nil {
		fail("%v", err)
	}
	defer logFile.Close()

	logger, err := newLogger(logFile)
	if err != nil {
		fail("%v", err)
	}
	shooter.SetConfigPath(flagConfig)
	shooter.SetLogger(logger)

	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}

	logger.Info("starting", "game", gameID, "fps", cfg.TickRate, "size", [2]int{cfg.ScreenW, cfg.ScreenH})
	opts := tui.Options{
		QueueSize: shooter.LoadConfig(gameID).Controls.QueueSize,
		Logger:    logger,
	}
	if err := tui.Run(game, cfg, opts); err != nil {
		logger.Error("game crashed", "err", err)
		fail("running game: %v", err)
	}
}

// openLogFile opens ~/.shooter/shooter.log for appending.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".shooter")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "shooter.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}
