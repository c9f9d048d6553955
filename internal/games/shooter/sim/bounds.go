package sim

import "github.com/go-gl/mathgl/mgl32"

// inside reports whether pos lies in [-halfW, halfW] x [-halfH, halfH].
// Edges count as inside.
func inside(pos mgl32.Vec3, halfW, halfH float32) bool {
	return mgl32.Abs(pos.X()) <= halfW && mgl32.Abs(pos.Y()) <= halfH
}

// CleanupBounds removes every non-marker entity outside the arena.
func (s *State) CleanupBounds(out *TickResult) {
	halfW, halfH := s.params.HalfExtents()
	for e := range s.reg.Iter(Simulated) {
		if inside(e.Pos, halfW, halfH) {
			continue
		}
		s.despawn(e, ReasonOutOfBounds, out)
		s.debug("despawned out of bounds", "handle", e.Handle, "kind", e.Kind, "kind_id", e.Kind.LegacyID(), "x", e.Pos.X(), "y", e.Pos.Y())
	}
}
