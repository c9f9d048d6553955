// Package sim contains the per-tick simulation of the shooter game.
// It is UI-agnostic and deterministic: the same commands and time steps
// always produce the same entity set.
package sim

import "github.com/go-gl/mathgl/mgl32"

// Kind is the variant tag of an entity.
type Kind uint8

const (
	KindPlayer Kind = iota + 1
	KindEnemy
	KindProjectile
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "Player"
	case KindEnemy:
		return "Enemy"
	case KindProjectile:
		return "Projectile"
	default:
		return "Unknown"
	}
}

// LegacyID returns the per-kind numeric id the first version of the game
// stamped on every entity of a kind. Debug logs carry it as kind_id.
func (k Kind) LegacyID() int {
	return int(k)
}

// Handle identifies one spawned entity. Handles are never reused within a State.
type Handle uint64

// NoHandle is the zero handle; the registry never hands it out.
const NoHandle Handle = 0

// Entity is a read-only view of a live entity.
type Entity struct {
	Handle Handle
	Kind   Kind
	Pos    mgl32.Vec3 // Z is draw order only
	Marker bool       // Arena outline; ignored by collisions and bounds cleanup
}

// Filter selects entities during iteration.
type Filter func(Entity) bool

// All matches every entity.
func All(Entity) bool { return true }

// OfKind matches entities of the given kind.
func OfKind(k Kind) Filter {
	return func(e Entity) bool { return e.Kind == k }
}

// Simulated matches every entity except boundary markers.
func Simulated(e Entity) bool { return !e.Marker }
