package sim

import "github.com/go-gl/mathgl/mgl32"

// Collision records a projectile destroying a target.
type Collision struct {
	Projectile Handle
	Target     Handle
	TargetKind Kind
	At         mgl32.Vec3 // target position
}

// Within reports whether a and b are closer than radius on the XY plane.
func Within(a, b mgl32.Vec3, radius float32) bool {
	d := mgl32.Vec2{a.X() - b.X(), a.Y() - b.Y()}
	return d.Len() < radius
}

// Collide resolves projectile hits. Projectiles are processed in spawn
// order; each one removes at most the first target in registry order and is
// removed with it. A projectile already consumed as a target is skipped.
func (s *State) Collide(out *TickResult) {
	radius := s.params.CollisionRadius
	for _, ph := range s.reg.Handles(OfKind(KindProjectile)) {
		p, ok := s.reg.Get(ph)
		if !ok {
			continue
		}
		for target := range s.reg.Iter(Simulated) {
			if target.Handle == ph || !Within(p.Pos, target.Pos, radius) {
				continue
			}
			s.despawn(p, ReasonCollision, out)
			s.despawn(target, ReasonCollision, out)
			if out != nil {
				out.Collisions = append(out.Collisions, Collision{
					Projectile: ph,
					Target:     target.Handle,
					TargetKind: target.Kind,
					At:         target.Pos,
				})
			}
			s.debug("collision", "projectile", ph, "target", target.Handle, "kind", target.Kind, "kind_id", target.Kind.LegacyID())
			break
		}
	}
}
