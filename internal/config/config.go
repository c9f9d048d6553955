// Package config provides YAML-based game configuration loading and
// validation for the shooter.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// ShooterConfig contains all configuration for the shooter game.
type ShooterConfig struct {
	Arena      ArenaConfig      `yaml:"arena"`
	Player     PlayerConfig     `yaml:"player"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Collision  CollisionConfig  `yaml:"collision"`
	Enemies    EnemiesConfig    `yaml:"enemies"`
	Controls   ControlsConfig   `yaml:"controls"`
	Palette    PaletteConfig    `yaml:"palette"`
}

// ArenaConfig defines the play field, centered at the origin.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Marker bool    `yaml:"marker"` // draw the arena outline
}

// PlayerConfig defines the player's footprint and movement.
type PlayerConfig struct {
	StartX     float64 `yaml:"start_x"`
	StartY     float64 `yaml:"start_y"`
	HalfExtent float64 `yaml:"half_extent"`
	MoveStep   float64 `yaml:"move_step"` // units per move command
}

// ProjectileConfig defines projectile motion and the fire policy.
type ProjectileConfig struct {
	Speed        float64 `yaml:"speed"`         // units per second, upwards
	LaunchOffset float64 `yaml:"launch_offset"` // spawn height above the player
	TravelLimit  float64 `yaml:"travel_limit"`
	FireCooldown float64 `yaml:"fire_cooldown"` // seconds between accepted shots
}

// CollisionConfig defines the hit test.
type CollisionConfig struct {
	Radius float64 `yaml:"radius"`
}

// Formation names accepted in enemies.formation.
const (
	FormationSingle = "single"
	FormationSwarm  = "swarm"
	FormationCustom = "custom"
)

// EnemiesConfig defines where enemies spawn.
type EnemiesConfig struct {
	Formation string  `yaml:"formation"`
	Base      Point   `yaml:"base"`      // swarm center
	Positions []Point `yaml:"positions"` // used by single (first entry) and custom
	Restock   bool    `yaml:"restock"`   // respawn the formation once cleared
}

// Point is a 2D world position.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ControlsConfig defines input buffering.
type ControlsConfig struct {
	QueueSize int `yaml:"queue_size"` // pending gameplay actions kept between ticks
}

// PaletteConfig maps entity kinds to color names (see core.ParseColor).
type PaletteConfig struct {
	Player     string `yaml:"player"`
	Enemy      string `yaml:"enemy"`
	Projectile string `yaml:"projectile"`
	Boundary   string `yaml:"boundary"`
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the config for values the simulation cannot run with.
func (c ShooterConfig) Validate() error {
	positive := []struct {
		field string
		v     float64
	}{
		{"arena.width", c.Arena.Width},
		{"arena.height", c.Arena.Height},
		{"player.half_extent", c.Player.HalfExtent},
		{"player.move_step", c.Player.MoveStep},
		{"projectile.speed", c.Projectile.Speed},
		{"projectile.travel_limit", c.Projectile.TravelLimit},
		{"collision.radius", c.Collision.Radius},
	}
	for _, p := range positive {
		if !(p.v > 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, p.field, p.v)
		}
	}
	if c.Player.HalfExtent*2 > c.Arena.Width || c.Player.HalfExtent*2 > c.Arena.Height {
		return fmt.Errorf("%w: player.half_extent %v does not fit in the %vx%v arena",
			ErrInvalidConfig, c.Player.HalfExtent, c.Arena.Width, c.Arena.Height)
	}
	if c.Projectile.LaunchOffset < 0 {
		return fmt.Errorf("%w: projectile.launch_offset must not be negative", ErrInvalidConfig)
	}
	if c.Projectile.LaunchOffset < c.Collision.Radius {
		return fmt.Errorf("%w: projectile.launch_offset %v is inside collision.radius %v",
			ErrInvalidConfig, c.Projectile.LaunchOffset, c.Collision.Radius)
	}
	if c.Projectile.FireCooldown < 0 {
		return fmt.Errorf("%w: projectile.fire_cooldown must not be negative", ErrInvalidConfig)
	}
	if c.Controls.QueueSize < 1 {
		return fmt.Errorf("%w: controls.queue_size must be at least 1, got %d", ErrInvalidConfig, c.Controls.QueueSize)
	}

	switch c.Enemies.Formation {
	case FormationSingle:
		if len(c.Enemies.Positions) == 0 {
			return fmt.Errorf("%w: enemies.positions needs an entry for the single formation", ErrInvalidConfig)
		}
	case FormationSwarm:
	case FormationCustom:
		if len(c.Enemies.Positions) == 0 && c.Enemies.Restock {
			return fmt.Errorf("%w: enemies.positions is empty, nothing to restock", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown enemies.formation %q", ErrInvalidConfig, c.Enemies.Formation)
	}

	for field, name := range map[string]string{
		"palette.player":     c.Palette.Player,
		"palette.enemy":      c.Palette.Enemy,
		"palette.projectile": c.Palette.Projectile,
		"palette.boundary":   c.Palette.Boundary,
	} {
		if _, ok := core.ParseColor(name); !ok {
			return fmt.Errorf("%w: %s: unknown color %q", ErrInvalidConfig, field, name)
		}
	}
	return nil
}

// EnemyPositions resolves the formation into concrete spawn points.
// offsets is the wedge used by the swarm formation.
func (c ShooterConfig) EnemyPositions(offsets []Point) []Point {
	switch c.Enemies.Formation {
	case FormationSingle:
		if len(c.Enemies.Positions) == 0 {
			return nil
		}
		return []Point{c.Enemies.Positions[0]}
	case FormationSwarm:
		out := make([]Point, len(offsets))
		for i, off := range offsets {
			out[i] = Point{X: c.Enemies.Base.X + off.X, Y: c.Enemies.Base.Y + off.Y}
		}
		return out
	default:
		return append([]Point(nil), c.Enemies.Positions...)
	}
}

// ApplyFormation switches the enemy formation, keeping everything else.
func ApplyFormation(cfg *ShooterConfig, formation string) {
	if formation == "" {
		return
	}
	cfg.Enemies.Formation = formation
}
