package main

import (
	"fmt"
	"os"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/games/shooter"
	"github.com/vovakirdan/tui-shooter/internal/games/shooter/sim"
	"github.com/vovakirdan/tui-shooter/internal/registry"
)

var (
	flagTicks     int
	flagScript    string
	flagSimConfig string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <game>",
	Short: "Run the simulation headless with a scripted command stream",
	Long: `Runs the simulation without a terminal UI. Each script character is the
command for one tick:

  L  move left
  R  move right
  F  fire
  .  no command

Whitespace is ignored. When --ticks exceeds the script length the remaining
ticks run without a command. Every event is logged; use --log-level debug
for per-system detail. The final entities are printed as a table.

Examples:
  shooter simulate shooter --script "LLLLLLLLLLF"
  shooter simulate shooter --script "F" --ticks 200
  shooter simulate shooter_swarm --script "F....F....F" --log-level debug`,
	Args: cobra.ExactArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 0, "Ticks to run (default: script length)")
	simulateCmd.Flags().StringVar(&flagScript, "script", "", "Command script, one character per tick")
	simulateCmd.Flags().StringVar(&flagSimConfig, "config", "", "Path to custom game config YAML")
}

// parseScript converts a script into one command per tick.
func parseScript(script string) ([]sim.Command, error) {
	cmds := make([]sim.Command, 0, len(script))
	for i, r := range script {
		if unicode.IsSpace(r) {
			continue
		}
		switch unicode.ToUpper(r) {
		case 'L':
			cmds = append(cmds, sim.CmdMoveLeft)
		case 'R':
			cmds = append(cmds, sim.CmdMoveRight)
		case 'F':
			cmds = append(cmds, sim.CmdFire)
		case '.', '-':
			cmds = append(cmds, sim.CmdNone)
		default:
			return nil, fmt.Errorf("script position %d: unknown command %q", i, r)
		}
	}
	return cmds, nil
}

// runScript ticks st once per command, then with CmdNone until ticks is
// reached, and logs every event.
func runScript(st *sim.State, cmds []sim.Command, ticks int, dt float32, logger *log.Logger) {
	ticks = max(ticks, len(cmds))
	for i := range ticks {
		cmd := sim.CmdNone
		if i < len(cmds) {
			cmd = cmds[i]
		}
		res := st.Tick(cmd, dt)
		if res.Fired {
			logger.Info("fired", "tick", res.Tick, "projectile", res.FiredHandle)
		}
		for _, c := range res.Collisions {
			logger.Info("collision", "tick", res.Tick, "projectile", c.Projectile,
				"target", c.Target, "kind", c.TargetKind, "at", formatPos(c.At))
		}
		for _, d := range res.Despawned {
			if d.Reason == sim.ReasonCollision {
				continue
			}
			logger.Info("despawned", "tick", res.Tick, "handle", d.Handle,
				"kind", d.Kind, "reason", d.Reason, "at", formatPos(d.Pos))
		}
	}
}

// entityTable renders the live entities in spawn order.
func entityTable(st *sim.State) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Handle", "Kind", "X", "Y", "Z")
	for _, e := range st.Snapshot() {
		kind := e.Kind.String()
		if e.Marker {
			kind = "boundary"
		}
		t.Row(
			fmt.Sprint(e.Handle),
			kind,
			fmt.Sprintf("%g", e.Pos.X()),
			fmt.Sprintf("%g", e.Pos.Y()),
			fmt.Sprintf("%g", e.Pos.Z()),
		)
	}
	return t.String()
}

func formatPos(p mgl32.Vec3) string {
	return fmt.Sprintf("(%g,%g)", p.X(), p.Y())
}

func runSimulate(cmd *cobra.Command, args []string) {
	gameID := args[0]
	if !registry.Exists(gameID) {
		fail("unknown game %q\nRun 'shooter list' to see available games.", gameID)
	}

	cmds, err := parseScript(flagScript)
	if err != nil {
		fail("%v", err)
	}

	logger, err := newLogger(os.Stderr)
	if err != nil {
		fail("%v", err)
	}
	shooter.SetConfigPath(flagSimConfig)
	shooter.SetLogger(logger)

	st, _, err := shooter.NewState(gameID)
	if err != nil {
		fail("%v", err)
	}

	dt := float32(core.RuntimeConfig{TickRate: flagFPS}.DeltaSeconds())
	runScript(st, cmds, flagTicks, dt, logger)

	fmt.Printf("%s after %d ticks, player at %s\n",
		gameID, st.TickCount(), formatPos(st.Anchor()))
	fmt.Println(entityTable(st))
}
