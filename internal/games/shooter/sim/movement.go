package sim

import "github.com/go-gl/mathgl/mgl32"

// Command is one decoded input for a tick.
type Command uint8

const (
	CmdNone Command = iota
	CmdMoveLeft
	CmdMoveRight
	CmdFire
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CmdNone:
		return "None"
	case CmdMoveLeft:
		return "MoveLeft"
	case CmdMoveRight:
		return "MoveRight"
	case CmdFire:
		return "Fire"
	default:
		return "Unknown"
	}
}

// direction returns the signed X unit for movement commands.
func (c Command) direction() (float32, bool) {
	switch c {
	case CmdMoveLeft:
		return -1, true
	case CmdMoveRight:
		return 1, true
	default:
		return 0, false
	}
}

// Span is a footprint clamped onto one axis of the arena.
type Span struct {
	Lo, Hi float32 // clamped edges
	Center float32 // midpoint of the clamped edges
}

// ClampSpan clamps both edges of a footprint of the given half extent into
// [-limit, limit] and re-centers it. When both edges land on the same wall the
// center sits on that wall.
func ClampSpan(center, half, limit float32) Span {
	lo := mgl32.Clamp(center-half, -limit, limit)
	hi := mgl32.Clamp(center+half, -limit, limit)
	return Span{Lo: lo, Hi: hi, Center: (lo + hi) / 2}
}

// ClampFootprint applies ClampSpan to X and Y. Z passes through.
func ClampFootprint(pos mgl32.Vec3, half, halfW, halfH float32) mgl32.Vec3 {
	return mgl32.Vec3{
		ClampSpan(pos.X(), half, halfW).Center,
		ClampSpan(pos.Y(), half, halfH).Center,
		pos.Z(),
	}
}

// Move shifts the player anchor one step for a directional command and
// mirrors it onto the player entity. Returns false for non-directional commands.
func (s *State) Move(cmd Command) bool {
	dir, ok := cmd.direction()
	if !ok {
		return false
	}

	halfW, halfH := s.params.HalfExtents()
	candidate := s.anchor.Add(mgl32.Vec3{dir * s.params.MoveStep, 0, 0})
	s.anchor = ClampFootprint(candidate, s.params.PlayerHalfExtent, halfW, halfH)
	s.reg.SetPos(s.player, s.anchor)

	s.debug("player moved", "cmd", cmd, "x", s.anchor.X(), "y", s.anchor.Y())
	return true
}
