package config

import (
	_ "embed"
)

//go:embed defaults/shooter.yaml
var defaultShooterYAML []byte

// DefaultShooterConfig returns the default shooter configuration.
func DefaultShooterConfig() ShooterConfig {
	return ShooterConfig{
		Arena: ArenaConfig{
			Width:  1200,
			Height: 800,
			Marker: true,
		},
		Player: PlayerConfig{
			StartX:     0,
			StartY:     -250,
			HalfExtent: 10, // 20x20 footprint
			MoveStep:   10,
		},
		Projectile: ProjectileConfig{
			Speed:        300,
			LaunchOffset: 50,
			TravelLimit:  800,
			FireCooldown: 0.1, // 30 units of spacing at default speed
		},
		Collision: CollisionConfig{
			Radius: 25,
		},
		Enemies: EnemiesConfig{
			Formation: FormationSingle,
			Base:      Point{X: 0, Y: 200},
			Positions: []Point{{X: -300, Y: 100}},
			Restock:   true,
		},
		Controls: ControlsConfig{
			QueueSize: 4,
		},
		Palette: PaletteConfig{
			Player:     "bright_green",
			Enemy:      "bright_red",
			Projectile: "bright_yellow",
			Boundary:   "gray",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "shooter", "shooter_swarm":
		return defaultShooterYAML
	default:
		return nil
	}
}
