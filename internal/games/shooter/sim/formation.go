package sim

import "github.com/go-gl/mathgl/mgl32"

// SwarmOffsets is the three-enemy wedge placed around a swarm base.
var SwarmOffsets = []mgl32.Vec3{
	{0, 0, 0},
	{100, 50, 0},
	{-100, -50, 0},
}

// DefaultSwarmBase is where the swarm wedge is centered by default.
var DefaultSwarmBase = mgl32.Vec3{0, 200, 0}

// Swarm returns the wedge positions around base.
func Swarm(base mgl32.Vec3) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(SwarmOffsets))
	for i, off := range SwarmOffsets {
		out[i] = base.Add(off)
	}
	return out
}
