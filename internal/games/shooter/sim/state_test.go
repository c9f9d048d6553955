package sim

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emptyParams is the default tuning without enemies or marker.
func emptyParams() Params {
	p := DefaultParams()
	p.Enemies = nil
	p.Marker = false
	return p
}

func newState(t *testing.T, p Params) *State {
	t.Helper()
	s, err := New(p)
	require.NoError(t, err)
	return s
}

func projectiles(s *State) []Entity {
	var out []Entity
	for e := range s.Registry().Iter(OfKind(KindProjectile)) {
		out = append(out, e)
	}
	return out
}

func TestNewBuildsInitialWorld(t *testing.T) {
	s := newState(t, DefaultParams())

	snap := s.Snapshot()
	require.Len(t, snap, 3)
	assert.True(t, snap[0].Marker)
	assert.Equal(t, KindPlayer, snap[1].Kind)
	assert.Equal(t, mgl32.Vec3{0, -250, 0}, snap[1].Pos)
	assert.Equal(t, KindEnemy, snap[2].Kind)
	assert.Equal(t, mgl32.Vec3{-300, 100, 0}, snap[2].Pos)
	assert.Equal(t, s.Player(), snap[1].Handle)
	assert.Equal(t, s.Marker(), snap[0].Handle)
}

func TestNewRejectsMalformedParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"negative width", func(p *Params) { p.ArenaWidth = -1200 }},
		{"zero height", func(p *Params) { p.ArenaHeight = 0 }},
		{"zero speed", func(p *Params) { p.ProjectileSpeed = 0 }},
		{"zero radius", func(p *Params) { p.CollisionRadius = 0 }},
		{"negative launch offset", func(p *Params) { p.LaunchOffset = -5 }},
		{"launch offset inside radius", func(p *Params) { p.LaunchOffset = 20 }},
		{"radius reaches launch point", func(p *Params) { p.CollisionRadius = 60 }},
		{"footprint too big", func(p *Params) { p.PlayerHalfExtent = 500 }},
		{"player outside", func(p *Params) { p.PlayerStart = mgl32.Vec3{0, -900, 0} }},
		{"enemy outside", func(p *Params) { p.Enemies = []mgl32.Vec3{{700, 0, 0}} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams()
			tc.mutate(&p)
			s, err := New(p)
			assert.Nil(t, s)
			assert.True(t, errors.Is(err, ErrInvalidParams), "got %v", err)
		})
	}
}

func TestClampSpanEdgesStayInArena(t *testing.T) {
	const half, limit = 10, 600
	for x := float32(-700); x <= 700; x += 2.5 {
		span := ClampSpan(x, half, limit)
		assert.GreaterOrEqual(t, span.Lo, float32(-limit))
		assert.LessOrEqual(t, span.Hi, float32(limit))
		assert.GreaterOrEqual(t, span.Center, float32(-limit))
		assert.LessOrEqual(t, span.Center, float32(limit))
	}
}

func TestClampSpanReCentersAgainstWall(t *testing.T) {
	tests := []struct {
		name   string
		center float32
		want   float32
	}{
		{"free", 100, 100},
		{"touching", 590, 590},
		{"one edge clamped", 595, 592.5},
		{"both edges clamped", 650, 600},
		{"left wall", -650, -600},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClampSpan(tc.center, 10, 600).Center)
		})
	}
}

func TestMovementKeepsPlayerInArena(t *testing.T) {
	s := newState(t, emptyParams())
	halfW, halfH := s.Params().HalfExtents()

	for i := 0; i < 200; i++ {
		s.Tick(CmdMoveRight, 1.0/60)
		a := s.Anchor()
		span := ClampSpan(a.X(), s.Params().PlayerHalfExtent, halfW)
		assert.LessOrEqual(t, span.Hi, halfW)
		assert.LessOrEqual(t, a.X(), halfW)
		assert.LessOrEqual(t, mgl32.Abs(a.Y()), halfH)
	}
	assert.True(t, s.Registry().Alive(s.Player()), "player must never leave the arena")

	for i := 0; i < 300; i++ {
		s.Tick(CmdMoveLeft, 1.0/60)
	}
	assert.GreaterOrEqual(t, s.Anchor().X(), -halfW)
}

func TestMovementUpdatesPlayerInPlace(t *testing.T) {
	s := newState(t, emptyParams())
	player := s.Player()

	res := s.Tick(CmdMoveRight, 0)
	assert.True(t, res.Moved)

	e, ok := s.Registry().Get(player)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{10, -250, 0}, e.Pos)
	assert.Equal(t, s.Anchor(), e.Pos)

	res = s.Tick(CmdNone, 0)
	assert.False(t, res.Moved)
	assert.Equal(t, mgl32.Vec3{10, -250, 0}, s.Anchor())
}

func TestFireSpawnsAboveOrigin(t *testing.T) {
	s := newState(t, emptyParams())

	origins := []mgl32.Vec3{{0, 0, 0}, {12, -30, 4}, {-590, 300, 1}}
	for _, o := range origins {
		h := s.Fire(o)
		e, ok := s.Registry().Get(h)
		require.True(t, ok)
		assert.Equal(t, KindProjectile, e.Kind)
		assert.Equal(t, mgl32.Vec3{o.X(), o.Y() + 50, o.Z()}, e.Pos)
	}
}

func TestAdvanceIsLinear(t *testing.T) {
	s := newState(t, emptyParams())
	h := s.Registry().Spawn(KindProjectile, mgl32.Vec3{0, 0, 0})

	s.Advance(1, nil)
	e, _ := s.Registry().Get(h)
	assert.Equal(t, mgl32.Vec3{0, 300, 0}, e.Pos)

	s.Advance(0.25, nil)
	s.Advance(0.25, nil)
	e, _ = s.Registry().Get(h)
	assert.InDelta(t, 450, e.Pos.Y(), 1e-3)
	assert.Equal(t, float32(0), e.Pos.X())
}

func TestAdvanceRemovesPastTravelLimit(t *testing.T) {
	s := newState(t, emptyParams())
	h := s.Registry().Spawn(KindProjectile, mgl32.Vec3{0, 790, 0})

	var res TickResult
	s.Advance(0.1, &res)

	assert.False(t, s.Registry().Alive(h))
	require.Len(t, res.Despawned, 1)
	assert.Equal(t, ReasonTravelLimit, res.Despawned[0].Reason)
}

func TestCollisionRadius(t *testing.T) {
	tests := []struct {
		name    string
		targetY float32
		hit     bool
	}{
		{"inside radius", 24, true},
		{"outside radius", 26, false},
		{"exactly radius", 25, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newState(t, emptyParams())
			reg := s.Registry()
			p := reg.Spawn(KindProjectile, mgl32.Vec3{0, 0, 0})
			e := reg.Spawn(KindEnemy, mgl32.Vec3{0, tc.targetY, 0})

			var res TickResult
			s.Collide(&res)

			assert.Equal(t, !tc.hit, reg.Alive(p))
			assert.Equal(t, !tc.hit, reg.Alive(e))
			if tc.hit {
				require.Len(t, res.Collisions, 1)
				assert.Equal(t, Collision{Projectile: p, Target: e, TargetKind: KindEnemy, At: mgl32.Vec3{0, 24, 0}}, res.Collisions[0])
			} else {
				assert.Empty(t, res.Collisions)
			}
		})
	}
}

func TestCollisionIgnoresZ(t *testing.T) {
	s := newState(t, emptyParams())
	reg := s.Registry()
	p := reg.Spawn(KindProjectile, mgl32.Vec3{0, 0, 0})
	e := reg.Spawn(KindEnemy, mgl32.Vec3{0, 10, 100})

	s.Collide(nil)
	assert.False(t, reg.Alive(p))
	assert.False(t, reg.Alive(e))
}

func TestCollisionOneTargetPerProjectile(t *testing.T) {
	s := newState(t, emptyParams())
	reg := s.Registry()
	first := reg.Spawn(KindEnemy, mgl32.Vec3{0, 10, 0})
	second := reg.Spawn(KindEnemy, mgl32.Vec3{0, -10, 0})
	p := reg.Spawn(KindProjectile, mgl32.Vec3{0, 0, 0})

	var res TickResult
	s.Collide(&res)

	assert.False(t, reg.Alive(p))
	assert.False(t, reg.Alive(first), "earliest target in registry order wins")
	assert.True(t, reg.Alive(second))
	assert.Len(t, res.Collisions, 1)
}

func TestCollisionTargetClaimedOnce(t *testing.T) {
	s := newState(t, emptyParams())
	reg := s.Registry()
	enemy := reg.Spawn(KindEnemy, mgl32.Vec3{0, 0, 0})
	far := reg.Spawn(KindProjectile, mgl32.Vec3{-200, 0, 0})
	a := reg.Spawn(KindProjectile, mgl32.Vec3{5, 0, 0})
	b := reg.Spawn(KindProjectile, mgl32.Vec3{-5, 200, 0})
	c := reg.Spawn(KindProjectile, mgl32.Vec3{-5, 0, 0})

	var res TickResult
	s.Collide(&res)

	// a claims the enemy first; c is then out of range of everything left.
	assert.True(t, reg.Alive(far))
	assert.False(t, reg.Alive(enemy))
	assert.False(t, reg.Alive(a))
	assert.True(t, reg.Alive(b))
	assert.True(t, reg.Alive(c))
	require.Len(t, res.Collisions, 1)
	assert.Equal(t, a, res.Collisions[0].Projectile)
}

func TestCollisionSkipsMarker(t *testing.T) {
	p := emptyParams()
	p.Marker = true
	s := newState(t, p)
	reg := s.Registry()
	proj := reg.Spawn(KindProjectile, mgl32.Vec3{0, 0, 0})

	s.Collide(nil)
	assert.True(t, reg.Alive(proj))
	assert.True(t, reg.Alive(s.Marker()))
}

func TestBoundsCleanup(t *testing.T) {
	p := emptyParams()
	p.Marker = true
	s := newState(t, p)
	reg := s.Registry()

	inEdge := reg.Spawn(KindEnemy, mgl32.Vec3{600, -400, 0})
	outX := reg.Spawn(KindEnemy, mgl32.Vec3{601, 0, 0})
	outY := reg.Spawn(KindProjectile, mgl32.Vec3{0, -401, 0})
	outBoth := reg.Spawn(KindEnemy, mgl32.Vec3{-900, 900, 0})
	outMarker := reg.SpawnMarker(mgl32.Vec3{900, 900, 0})

	var res TickResult
	s.CleanupBounds(&res)

	assert.True(t, reg.Alive(inEdge))
	assert.False(t, reg.Alive(outX))
	assert.False(t, reg.Alive(outY))
	assert.False(t, reg.Alive(outBoth))
	assert.True(t, reg.Alive(outMarker), "boundary markers are never cleaned up")
	assert.True(t, reg.Alive(s.Marker()))
	assert.Len(t, res.Despawned, 3)
	for _, d := range res.Despawned {
		assert.Equal(t, ReasonOutOfBounds, d.Reason)
	}
}

func TestTickCollisionBeforeBounds(t *testing.T) {
	s := newState(t, emptyParams())
	reg := s.Registry()
	// Projectile ends the tick at (610, 0): outside the arena, but in
	// range of an enemy sitting just outside the wall too.
	reg.Spawn(KindProjectile, mgl32.Vec3{610, -30, 0})
	reg.Spawn(KindEnemy, mgl32.Vec3{610, 5, 0})

	res := s.Tick(CmdNone, 0.1)

	require.Len(t, res.Collisions, 1)
	require.Len(t, res.Despawned, 2)
	for _, d := range res.Despawned {
		assert.Equal(t, ReasonCollision, d.Reason, "bounds must not see entities removed by collision")
	}
}

func TestTickFiredSignal(t *testing.T) {
	s := newState(t, emptyParams())

	res := s.Tick(CmdFire, 0)
	assert.True(t, res.Fired)
	assert.True(t, s.Registry().Alive(res.FiredHandle))

	res = s.Tick(CmdMoveLeft, 0)
	assert.False(t, res.Fired)
	assert.Equal(t, NoHandle, res.FiredHandle)
}

func TestEndToEndMoveAndFire(t *testing.T) {
	t.Run("fire from start", func(t *testing.T) {
		s := newState(t, emptyParams())
		s.Tick(CmdFire, 0)

		ps := projectiles(s)
		require.Len(t, ps, 1)
		assert.Equal(t, mgl32.Vec3{0, -200, 0}, ps[0].Pos)
	})

	t.Run("ten moves left then fire", func(t *testing.T) {
		s := newState(t, emptyParams())
		for i := 0; i < 10; i++ {
			s.Tick(CmdMoveLeft, 0)
		}
		player, ok := s.Registry().Get(s.Player())
		require.True(t, ok)
		assert.Equal(t, mgl32.Vec3{-100, -250, 0}, player.Pos)

		s.Tick(CmdFire, 0)
		ps := projectiles(s)
		require.Len(t, ps, 1)
		assert.Equal(t, mgl32.Vec3{-100, -200, 0}, ps[0].Pos)
	})
}

func TestShotDestroysEnemy(t *testing.T) {
	p := emptyParams()
	p.Enemies = []mgl32.Vec3{{0, 100, 0}}
	s := newState(t, p)
	require.Equal(t, 1, s.Registry().Count(KindEnemy))

	s.Tick(CmdFire, 1.0/60)
	var hits int
	for i := 0; i < 120; i++ {
		res := s.Tick(CmdNone, 1.0/60)
		hits += len(res.Collisions)
	}

	assert.Equal(t, 1, hits)
	assert.Equal(t, 0, s.Registry().Count(KindEnemy))
	assert.Equal(t, 0, s.Registry().Count(KindProjectile))
}

func TestMissedShotLeavesArena(t *testing.T) {
	s := newState(t, DefaultParams())
	s.Tick(CmdFire, 1.0/60)

	var reasons []DespawnReason
	for i := 0; i < 200; i++ {
		res := s.Tick(CmdNone, 1.0/60)
		for _, d := range res.Despawned {
			reasons = append(reasons, d.Reason)
		}
	}

	assert.Equal(t, []DespawnReason{ReasonOutOfBounds}, reasons)
	assert.Equal(t, 1, s.Registry().Count(KindEnemy))
}

func TestSwarmFormation(t *testing.T) {
	got := Swarm(DefaultSwarmBase)
	assert.Equal(t, []mgl32.Vec3{{0, 200, 0}, {100, 250, 0}, {-100, 150, 0}}, got)

	p := DefaultParams()
	p.Enemies = got
	s := newState(t, p)
	assert.Equal(t, 3, s.Registry().Count(KindEnemy))

	for _, h := range s.Registry().Handles(OfKind(KindEnemy)) {
		s.Registry().Despawn(h)
	}
	s.SpawnEnemies()
	assert.Equal(t, 3, s.Registry().Count(KindEnemy))
}

func TestDeterminism(t *testing.T) {
	script := []Command{CmdFire, CmdMoveLeft, CmdMoveLeft, CmdFire, CmdNone, CmdMoveRight, CmdFire}
	run := func() []Entity {
		p := DefaultParams()
		p.Enemies = Swarm(DefaultSwarmBase)
		s := newState(t, p)
		for i := 0; i < 300; i++ {
			s.Tick(script[i%len(script)], 1.0/60)
		}
		return s.Snapshot()
	}
	assert.Equal(t, run(), run())
}

func TestLoggerReceivesEvents(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	s, err := New(emptyParams(), WithLogger(logger))
	require.NoError(t, err)
	s.Tick(CmdFire, 0)
	s.Tick(CmdMoveLeft, 0)

	assert.Contains(t, buf.String(), "projectile fired")
	assert.Contains(t, buf.String(), "player moved")
}

func TestLoggerTagsKindIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	s, err := New(emptyParams(), WithLogger(logger))
	require.NoError(t, err)
	reg := s.Registry()
	reg.Spawn(KindProjectile, mgl32.Vec3{0, 0, 0})
	reg.Spawn(KindEnemy, mgl32.Vec3{0, 10, 0})
	reg.Spawn(KindEnemy, mgl32.Vec3{1000, 0, 0})

	var res TickResult
	s.Collide(&res)
	s.CleanupBounds(&res)

	out := buf.String()
	assert.Contains(t, out, "collision")
	assert.Contains(t, out, "kind_id=2")
	assert.Contains(t, out, "despawned out of bounds")
	assert.Equal(t, 2, KindEnemy.LegacyID())
}
