// Package shooter adapts the shooter simulation to the arcade platform.
// It decodes input frames into simulation commands, keeps the session
// state (pause, waves) and renders the world into a screen buffer.
package shooter

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/games/shooter/sim"
	"github.com/vovakirdan/tui-shooter/internal/registry"
)

// Game IDs for the registered variants.
const (
	IDSingle = "shooter"
	IDSwarm  = "shooter_swarm"
)

// Visual characters for rendering
const (
	PlayerChar     = '▲'
	EnemyChar      = 'W'
	ProjectileChar = '|'
	FlashChar      = '*'
)

// FlashFrames is how many ticks the muzzle flash stays on the HUD.
const FlashFrames = 4

// configPath stores the custom config path set via CLI
var configPath string

// logger receives simulation events; nil keeps the game silent.
var logger *log.Logger

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger sets the logger handed to every new simulation.
func SetLogger(l *log.Logger) {
	logger = l
}

// Game implements registry.Game on top of sim.State.
type Game struct {
	id        string
	formation string

	cfg     config.ShooterConfig
	runtime core.RuntimeConfig
	state   *sim.State
	err     error // set when the simulation could not be built

	wave          int
	paused        bool
	gameOver      bool
	fireHeld      bool // Fire was present in the previous frame
	cooldown      int  // ticks until the next shot is accepted
	cooldownTicks int
	flash         int
	last          sim.TickResult
	palette       palette
}

type palette struct {
	player, enemy, projectile, boundary core.Color
}

// New creates the single-enemy shooter.
func New() *Game {
	return &Game{id: IDSingle, formation: config.FormationSingle}
}

// NewSwarm creates the shooter with the three-enemy swarm formation.
func NewSwarm() *Game {
	return &Game{id: IDSwarm, formation: config.FormationSwarm}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.formation == config.FormationSwarm {
		return "Shooter (Swarm)"
	}
	return "Shooter"
}

// Variant returns the enemy formation this game spawns.
func (g *Game) Variant() string {
	return g.formation
}

// LoadConfig loads the shooter config for a variant, falling back to the
// defaults when the file cannot be used.
func LoadConfig(id string) config.ShooterConfig {
	cfg, err := config.LoadShooter(configPath)
	if err != nil {
		if logger != nil {
			logger.Warn("using default config", "err", err)
		}
		cfg = config.DefaultShooterConfig()
	}
	if id == IDSwarm {
		config.ApplyFormation(&cfg, config.FormationSwarm)
	}
	return cfg
}

// Params converts a config into simulation params.
func Params(cfg config.ShooterConfig) sim.Params {
	offsets := make([]config.Point, len(sim.SwarmOffsets))
	for i, off := range sim.SwarmOffsets {
		offsets[i] = config.Point{X: float64(off.X()), Y: float64(off.Y())}
	}

	enemies := make([]mgl32.Vec3, 0)
	for _, p := range cfg.EnemyPositions(offsets) {
		enemies = append(enemies, vec(p.X, p.Y))
	}

	return sim.Params{
		ArenaWidth:       float32(cfg.Arena.Width),
		ArenaHeight:      float32(cfg.Arena.Height),
		PlayerHalfExtent: float32(cfg.Player.HalfExtent),
		MoveStep:         float32(cfg.Player.MoveStep),
		ProjectileSpeed:  float32(cfg.Projectile.Speed),
		LaunchOffset:     float32(cfg.Projectile.LaunchOffset),
		TravelLimit:      float32(cfg.Projectile.TravelLimit),
		CollisionRadius:  float32(cfg.Collision.Radius),
		PlayerStart:      vec(cfg.Player.StartX, cfg.Player.StartY),
		Enemies:          enemies,
		Marker:           cfg.Arena.Marker,
	}
}

// NewState builds a simulation for the given variant using the configured
// file and logger.
func NewState(id string) (*sim.State, config.ShooterConfig, error) {
	cfg := LoadConfig(id)
	var opts []sim.Option
	if logger != nil {
		opts = append(opts, sim.WithLogger(logger))
	}
	st, err := sim.New(Params(cfg), opts...)
	if err != nil {
		return nil, cfg, fmt.Errorf("failed to build %s: %w", id, err)
	}
	return st, cfg, nil
}

func vec(x, y float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(x), float32(y), 0}
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.state, g.cfg, g.err = NewState(g.id)
	if g.err != nil && logger != nil {
		logger.Error("cannot start game", "game", g.id, "err", g.err)
	}

	g.wave = 1
	g.paused = false
	g.gameOver = g.err != nil
	g.fireHeld = false
	g.cooldown = 0
	g.cooldownTicks = int(math.Ceil(g.cfg.Projectile.FireCooldown * float64(runtime.TickRate)))
	g.flash = 0
	g.last = sim.TickResult{}
	g.palette = palette{
		player:     color(g.cfg.Palette.Player),
		enemy:      color(g.cfg.Palette.Enemy),
		projectile: color(g.cfg.Palette.Projectile),
		boundary:   color(g.cfg.Palette.Boundary),
	}
}

func color(name string) core.Color {
	c, _ := core.ParseColor(name)
	return c
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	cmd := g.decode(in)
	g.last = g.state.Tick(cmd, float32(g.runtime.DeltaSeconds()))

	if g.last.Fired {
		g.cooldown = g.cooldownTicks
		g.flash = FlashFrames
	} else if g.flash > 0 {
		g.flash--
	}

	reg := g.state.Registry()
	switch {
	case !reg.Alive(g.state.Player()):
		g.gameOver = true
	case reg.Count(sim.KindEnemy) == 0:
		// An empty formation has nothing to restock.
		if g.cfg.Enemies.Restock && len(g.state.Params().Enemies) > 0 {
			g.state.SpawnEnemies()
			g.wave++
			if logger != nil {
				logger.Debug("wave cleared", "wave", g.wave)
			}
		} else {
			g.gameOver = true
		}
	}

	return core.StepResult{
		State: g.State(),
		Fired: g.last.Fired,
		Hits:  len(g.last.Collisions),
	}
}

// decode turns a frame into at most one command. Fire is edge-triggered
// and rate-limited by the cooldown so consecutive shots never overlap.
// Fire counts as held while it is present on consecutive ticks, so two
// presses landing on back-to-back ticks fire once; a tick without Fire
// releases it.
func (g *Game) decode(in core.InputFrame) sim.Command {
	firing := in.Has(core.ActionFire)
	pressed := firing && !g.fireHeld
	g.fireHeld = firing
	if g.cooldown > 0 {
		g.cooldown--
	}

	switch {
	case pressed && g.cooldown == 0:
		return sim.CmdFire
	case in.Has(core.ActionLeft):
		return sim.CmdMoveLeft
	case in.Has(core.ActionRight):
		return sim.CmdMoveRight
	default:
		return sim.CmdNone
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.state == nil {
		g.drawCenteredMessage(dst, "CONFIG ERROR", "See the log for details")
		return
	}

	field := core.NewRect(0, 1, dst.Width(), dst.Height()-1)
	p := g.state.Params()
	vp := core.Viewport{
		HalfW: float64(p.ArenaWidth) / 2,
		HalfH: float64(p.ArenaHeight) / 2,
		Cells: field.Inset(1),
	}
	if g.state.Marker() != sim.NoHandle {
		dst.DrawBox(field, g.palette.boundary)
	}

	for e := range g.state.Registry().Iter(sim.Simulated) {
		x, y, ok := vp.Project(float64(e.Pos.X()), float64(e.Pos.Y()))
		if !ok {
			continue
		}
		switch e.Kind {
		case sim.KindPlayer:
			dst.SetColored(x, y, PlayerChar, g.palette.player)
		case sim.KindEnemy:
			dst.SetColored(x, y, EnemyChar, g.palette.enemy)
		case sim.KindProjectile:
			dst.SetColored(x, y, ProjectileChar, g.palette.projectile)
		}
	}

	// Draw HUD
	hud := fmt.Sprintf(" Wave: %d  Enemies: %d  Shots: %d ",
		g.wave, g.state.Registry().Count(sim.KindEnemy), g.state.Registry().Count(sim.KindProjectile))
	dst.DrawText(1, 0, hud)
	if g.flash > 0 {
		x := 1 + len(hud)
		dst.SetColored(x, 0, FlashChar, g.palette.projectile)
		dst.DrawTextColored(x+1, 0, "FIRE", g.palette.projectile)
	}

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.gameOver {
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Wave: %d  |  Press R to restart", g.wave))
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorDefault)
	dst.DrawText(box.X+(boxW-len(title))/2, box.Y+1, title)
	dst.DrawText(box.X+(boxW-len(subtitle))/2, box.Y+3, subtitle)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	live := 0
	if g.state != nil {
		live = len(g.state.Registry().Handles(sim.Simulated))
	}
	return core.GameState{
		Wave:     g.wave,
		Live:     live,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Sim exposes the underlying simulation, nil before Reset.
func (g *Game) Sim() *sim.State {
	return g.state
}

// LastTick returns the result of the most recent simulation tick.
func (g *Game) LastTick() sim.TickResult {
	return g.last
}

// Register the game variants with the registry
func init() {
	registry.Register(IDSingle, func() registry.Game {
		return New()
	})
	registry.Register(IDSwarm, func() registry.Game {
		return NewSwarm()
	})
}
