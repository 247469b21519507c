// Package world holds the abstract scene state the gameplay core reads:
// entities with positions, facings, and tags. It knows nothing about
// rendering or physics; positions are fed in by whatever drives the
// simulation.
package world

import (
	"strings"

	"github.com/quietpond/straycat/internal/geom"
)

// EntityID identifies an entity within a scene.
type EntityID string

// Entity is a tracked object in the scene: the player, the companion, a
// quest target point, a collectible, or anything else the core needs to
// measure distances against.
type Entity struct {
	ID      EntityID
	Name    string
	Tags    []string
	Pos     geom.Vec3
	Forward geom.Vec3
}

// HasTag reports whether the entity carries the given tag (case-insensitive).
func (e *Entity) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// World is the registry of live entities. Accessed only from the game
// loop goroutine; no locks needed.
type World struct {
	entities map[EntityID]*Entity
	order    []EntityID
}

// New creates an empty world.
func New() *World {
	return &World{
		entities: make(map[EntityID]*Entity),
	}
}

// Add registers an entity. Re-adding an existing ID replaces the entity
// in place and keeps its original insertion order.
func (w *World) Add(e *Entity) {
	if e == nil || e.ID == "" {
		return
	}
	if _, exists := w.entities[e.ID]; !exists {
		w.order = append(w.order, e.ID)
	}
	w.entities[e.ID] = e
}

// Remove deletes an entity from the world. Removing an unknown ID is a
// no-op.
func (w *World) Remove(id EntityID) {
	if _, exists := w.entities[id]; !exists {
		return
	}
	delete(w.entities, id)
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// Get returns an entity by ID.
func (w *World) Get(id EntityID) (*Entity, bool) {
	e, exists := w.entities[id]
	return e, exists
}

// ByTag returns all entities carrying the given tag, in insertion order.
// The scan runs over the live entity set each call so late-spawned
// entities are picked up.
func (w *World) ByTag(tag string) []*Entity {
	var result []*Entity
	for _, id := range w.order {
		e := w.entities[id]
		if e != nil && e.HasTag(tag) {
			result = append(result, e)
		}
	}
	return result
}

// All returns every entity in insertion order.
func (w *World) All() []*Entity {
	result := make([]*Entity, 0, len(w.order))
	for _, id := range w.order {
		if e := w.entities[id]; e != nil {
			result = append(result, e)
		}
	}
	return result
}

// Count returns the number of live entities.
func (w *World) Count() int {
	return len(w.entities)
}

// Distance returns the distance between two entities, or -1 if either is
// missing.
func (w *World) Distance(a, b EntityID) float64 {
	ea, okA := w.entities[a]
	eb, okB := w.entities[b]
	if !okA || !okB {
		return -1
	}
	return geom.Distance(ea.Pos, eb.Pos)
}
