package sim

import (
	"iter"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/kamstrup/intmap"
)

// slot stores one entity in insertion order.
type slot struct {
	Entity
	alive bool
}

// Registry owns the set of live entities.
// Iteration order is spawn order. Despawned slots are tombstoned and
// reclaimed by Compact so that in-flight iterations stay valid.
type Registry struct {
	slots  []slot
	index  *intmap.Map[Handle, int] // handle -> position in slots
	next   Handle
	live   int
	counts map[Kind]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		slots:  make([]slot, 0, 64),
		index:  intmap.New[Handle, int](64),
		next:   1,
		counts: make(map[Kind]int, 3),
	}
}

// Spawn inserts a new live entity and returns its handle.
func (r *Registry) Spawn(kind Kind, pos mgl32.Vec3) Handle {
	return r.insert(Entity{Kind: kind, Pos: pos})
}

// SpawnMarker inserts the arena boundary marker.
func (r *Registry) SpawnMarker(pos mgl32.Vec3) Handle {
	return r.insert(Entity{Kind: KindEnemy, Pos: pos, Marker: true})
}

func (r *Registry) insert(e Entity) Handle {
	e.Handle = r.next
	r.next++
	r.index.Put(e.Handle, len(r.slots))
	r.slots = append(r.slots, slot{Entity: e, alive: true})
	r.live++
	if !e.Marker {
		r.counts[e.Kind]++
	}
	return e.Handle
}

// Despawn removes the entity. Removing an unknown or already removed
// handle is a no-op; the return value reports whether anything changed.
func (r *Registry) Despawn(h Handle) bool {
	i, ok := r.index.Get(h)
	if !ok {
		return false
	}
	s := &r.slots[i]
	s.alive = false
	r.index.Del(h)
	r.live--
	if !s.Marker {
		r.counts[s.Kind]--
	}
	return true
}

// Get returns the live entity for h.
func (r *Registry) Get(h Handle) (Entity, bool) {
	i, ok := r.index.Get(h)
	if !ok {
		return Entity{}, false
	}
	return r.slots[i].Entity, true
}

// Alive reports whether h refers to a live entity.
func (r *Registry) Alive(h Handle) bool {
	_, ok := r.index.Get(h)
	return ok
}

// SetPos moves a live entity in place. Returns false for dead handles.
func (r *Registry) SetPos(h Handle, pos mgl32.Vec3) bool {
	i, ok := r.index.Get(h)
	if !ok {
		return false
	}
	r.slots[i].Pos = pos
	return true
}

// Iter yields live entities matching filter in spawn order.
// Entities despawned mid-iteration are skipped once removed; entities
// spawned mid-iteration are not visited by that iteration.
func (r *Registry) Iter(filter Filter) iter.Seq[Entity] {
	if filter == nil {
		filter = All
	}
	return func(yield func(Entity) bool) {
		n := len(r.slots)
		for i := 0; i < n && i < len(r.slots); i++ {
			s := r.slots[i]
			if !s.alive || !filter(s.Entity) {
				continue
			}
			if !yield(s.Entity) {
				return
			}
		}
	}
}

// Handles collects the handles of live entities matching filter.
func (r *Registry) Handles(filter Filter) []Handle {
	var out []Handle
	for e := range r.Iter(filter) {
		out = append(out, e.Handle)
	}
	return out
}

// Len returns the number of live entities, markers included.
func (r *Registry) Len() int {
	return r.live
}

// Count returns the number of live non-marker entities of a kind.
func (r *Registry) Count(k Kind) int {
	return r.counts[k]
}

// Compact drops tombstoned slots. Must not be called while an Iter is in progress.
func (r *Registry) Compact() {
	if r.live == len(r.slots) {
		return
	}
	kept := r.slots[:0]
	for _, s := range r.slots {
		if !s.alive {
			continue
		}
		r.index.Put(s.Handle, len(kept))
		kept = append(kept, s)
	}
	clear(r.slots[len(kept):])
	r.slots = kept
}
