package sim

import "github.com/go-gl/mathgl/mgl32"

// Fire spawns one projectile LaunchOffset above origin.
func (s *State) Fire(origin mgl32.Vec3) Handle {
	pos := origin.Add(mgl32.Vec3{0, s.params.LaunchOffset, 0})
	h := s.reg.Spawn(KindProjectile, pos)
	s.debug("projectile fired", "handle", h, "x", pos.X(), "y", pos.Y())
	return h
}

// Advance moves every projectile up by ProjectileSpeed*dt and removes the
// ones past the travel limit.
func (s *State) Advance(dt float32, out *TickResult) {
	step := s.params.ProjectileSpeed * dt
	for e := range s.reg.Iter(OfKind(KindProjectile)) {
		pos := e.Pos.Add(mgl32.Vec3{0, step, 0})
		if pos.Y() > s.params.TravelLimit {
			s.despawn(Entity{Handle: e.Handle, Kind: e.Kind, Pos: pos}, ReasonTravelLimit, out)
			continue
		}
		s.reg.SetPos(e.Handle, pos)
	}
}
