package sim

import (
	"slices"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
)

// DespawnReason tells which rule removed an entity.
type DespawnReason uint8

const (
	ReasonCollision DespawnReason = iota + 1
	ReasonTravelLimit
	ReasonOutOfBounds
)

// String returns a human-readable name for the reason.
func (r DespawnReason) String() string {
	switch r {
	case ReasonCollision:
		return "collision"
	case ReasonTravelLimit:
		return "travel-limit"
	case ReasonOutOfBounds:
		return "out-of-bounds"
	default:
		return "unknown"
	}
}

// Despawn records one removal during a tick.
type Despawn struct {
	Entity
	Reason DespawnReason
}

// TickResult describes what happened during one tick.
type TickResult struct {
	Tick        uint64
	Command     Command
	Moved       bool
	Fired       bool
	FiredHandle Handle
	Collisions  []Collision
	Despawned   []Despawn
}

// State is the whole simulation: the registry, the player anchor and the
// fixed params. It is not safe for concurrent use.
type State struct {
	params Params
	reg    *Registry
	anchor mgl32.Vec3
	player Handle
	marker Handle
	tick   uint64
	logger *log.Logger
}

// Option configures a State.
type Option func(*State)

// WithLogger makes the state log simulation events at debug level.
func WithLogger(l *log.Logger) Option {
	return func(s *State) {
		s.logger = l
	}
}

// New validates p and builds the initial world: the boundary marker (if
// enabled), the player at PlayerStart and one enemy per configured position.
func New(p Params, opts ...Option) (*State, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s := &State{
		params: p,
		reg:    NewRegistry(),
		anchor: p.PlayerStart,
	}
	s.params.Enemies = slices.Clone(p.Enemies)
	for _, opt := range opts {
		opt(s)
	}

	if p.Marker {
		s.marker = s.reg.SpawnMarker(mgl32.Vec3{})
	}
	s.player = s.reg.Spawn(KindPlayer, s.anchor)
	s.SpawnEnemies()
	return s, nil
}

// Tick runs one simulation step in the fixed order
// move, fire, advance, collide, bounds. dt is in seconds.
func (s *State) Tick(cmd Command, dt float32) TickResult {
	s.tick++
	res := TickResult{Tick: s.tick, Command: cmd}

	res.Moved = s.Move(cmd)
	if cmd == CmdFire {
		res.FiredHandle = s.Fire(s.anchor)
		res.Fired = true
	}
	s.Advance(dt, &res)
	s.Collide(&res)
	s.CleanupBounds(&res)

	s.reg.Compact()
	return res
}

// SpawnEnemies spawns one enemy at every configured position.
func (s *State) SpawnEnemies() []Handle {
	out := make([]Handle, 0, len(s.params.Enemies))
	for _, pos := range s.params.Enemies {
		out = append(out, s.reg.Spawn(KindEnemy, pos))
	}
	return out
}

// Snapshot returns all live entities in spawn order.
func (s *State) Snapshot() []Entity {
	return slices.Collect(s.reg.Iter(All))
}

// Registry exposes the entity registry.
func (s *State) Registry() *Registry { return s.reg }

// Params returns the configuration the state was built with.
func (s *State) Params() Params { return s.params }

// Anchor returns the authoritative player position.
func (s *State) Anchor() mgl32.Vec3 { return s.anchor }

// Player returns the player handle.
func (s *State) Player() Handle { return s.player }

// Marker returns the boundary marker handle, or NoHandle.
func (s *State) Marker() Handle { return s.marker }

// TickCount returns the number of ticks run so far.
func (s *State) TickCount() uint64 { return s.tick }

func (s *State) despawn(e Entity, reason DespawnReason, out *TickResult) {
	if !s.reg.Despawn(e.Handle) {
		return
	}
	if out != nil {
		out.Despawned = append(out.Despawned, Despawn{Entity: e, Reason: reason})
	}
}

func (s *State) debug(msg string, keyvals ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Debug(msg, keyvals...)
}
