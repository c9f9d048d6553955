package sim

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidParams is wrapped by every validation failure from New.
var ErrInvalidParams = errors.New("sim: invalid params")

// Params is the fixed configuration record of a simulation.
// All distances are world units, speeds are units per second.
type Params struct {
	ArenaWidth       float32
	ArenaHeight      float32
	PlayerHalfExtent float32 // half of the square player footprint
	MoveStep         float32 // per MoveLeft/MoveRight command
	ProjectileSpeed  float32
	LaunchOffset     float32 // vertical offset of a new projectile above the shooter
	TravelLimit      float32 // projectiles above this Y are removed
	CollisionRadius  float32

	PlayerStart mgl32.Vec3
	Enemies     []mgl32.Vec3 // initial (and restock) enemy positions
	Marker      bool         // spawn the arena outline marker at the origin
}

// DefaultParams returns the reference tuning: a 1200x800 arena, a 20x20
// player at (0,-250), one enemy at (-300,100).
func DefaultParams() Params {
	return Params{
		ArenaWidth:       1200,
		ArenaHeight:      800,
		PlayerHalfExtent: 10,
		MoveStep:         10,
		ProjectileSpeed:  300,
		LaunchOffset:     50,
		TravelLimit:      800,
		CollisionRadius:  25,
		PlayerStart:      mgl32.Vec3{0, -250, 0},
		Enemies:          []mgl32.Vec3{{-300, 100, 0}},
		Marker:           true,
	}
}

// HalfExtents returns the arena half width and half height.
func (p Params) HalfExtents() (float32, float32) {
	return p.ArenaWidth / 2, p.ArenaHeight / 2
}

// Validate reports the first malformed field.
func (p Params) Validate() error {
	positive := []struct {
		name string
		v    float32
	}{
		{"arena width", p.ArenaWidth},
		{"arena height", p.ArenaHeight},
		{"player half extent", p.PlayerHalfExtent},
		{"move step", p.MoveStep},
		{"projectile speed", p.ProjectileSpeed},
		{"travel limit", p.TravelLimit},
		{"collision radius", p.CollisionRadius},
	}
	for _, f := range positive {
		if !(f.v > 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidParams, f.name, f.v)
		}
	}
	if p.LaunchOffset < 0 {
		return fmt.Errorf("%w: launch offset must not be negative, got %v", ErrInvalidParams, p.LaunchOffset)
	}
	// A shot spawned inside the collision radius would destroy its shooter.
	if p.LaunchOffset < p.CollisionRadius {
		return fmt.Errorf("%w: launch offset %v is inside the collision radius %v",
			ErrInvalidParams, p.LaunchOffset, p.CollisionRadius)
	}

	halfW, halfH := p.HalfExtents()
	if p.PlayerHalfExtent*2 > p.ArenaWidth || p.PlayerHalfExtent*2 > p.ArenaHeight {
		return fmt.Errorf("%w: player footprint %v does not fit in %vx%v arena",
			ErrInvalidParams, p.PlayerHalfExtent*2, p.ArenaWidth, p.ArenaHeight)
	}
	if !inside(p.PlayerStart, halfW, halfH) {
		return fmt.Errorf("%w: player start %v is outside the arena", ErrInvalidParams, p.PlayerStart)
	}
	for i, e := range p.Enemies {
		if !inside(e, halfW, halfH) {
			return fmt.Errorf("%w: enemy %d at %v is outside the arena", ErrInvalidParams, i, e)
		}
	}
	return nil
}
