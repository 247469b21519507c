package world

import "github.com/quietpond/straycat/internal/geom"

// Mover is the path-following primitive the companion controller drives.
// The real game backs this with the engine's navigation agent; the
// simulation and tests use SimpleMover.
type Mover interface {
	// Position returns the agent's current world position.
	Position() geom.Vec3

	// Facing returns the agent's current facing direction (unit, planar).
	Facing() geom.Vec3

	// Velocity returns the agent's current world-space velocity.
	Velocity() geom.Vec3

	// SetDestination starts or redirects movement toward dest.
	SetDestination(dest geom.Vec3)

	// Stop halts movement and clears any pending destination.
	Stop()

	// FaceToward turns the agent in place to face the given point.
	FaceToward(point geom.Vec3)
}

// SimpleMover is a straight-line Mover implementation: it walks directly
// toward its destination at a fixed speed, facing its direction of
// travel. Good enough for headless simulation; it does not avoid
// obstacles.
type SimpleMover struct {
	Entity *Entity
	Speed  float64

	dest    geom.Vec3
	hasDest bool
	vel     geom.Vec3
}

// NewSimpleMover creates a mover wrapped around an entity. The entity's
// position and forward vector are updated in place as the mover advances.
func NewSimpleMover(e *Entity, speed float64) *SimpleMover {
	if e.Forward.IsZero() {
		e.Forward = geom.Vec3{Z: 1}
	}
	return &SimpleMover{Entity: e, Speed: speed}
}

// Position returns the current position.
func (m *SimpleMover) Position() geom.Vec3 {
	return m.Entity.Pos
}

// Facing returns the current facing direction.
func (m *SimpleMover) Facing() geom.Vec3 {
	return m.Entity.Forward
}

// Velocity returns the velocity from the most recent Advance.
func (m *SimpleMover) Velocity() geom.Vec3 {
	return m.vel
}

// SetDestination starts movement toward dest.
func (m *SimpleMover) SetDestination(dest geom.Vec3) {
	m.dest = dest
	m.hasDest = true
}

// Stop halts movement and clears the destination.
func (m *SimpleMover) Stop() {
	m.hasDest = false
	m.vel = geom.Vec3{}
}

// FaceToward turns the mover in place toward the given point.
func (m *SimpleMover) FaceToward(point geom.Vec3) {
	dir := point.Sub(m.Entity.Pos).Flat().Normalized()
	if !dir.IsZero() {
		m.Entity.Forward = dir
	}
}

// HasDestination reports whether the mover is en route somewhere.
func (m *SimpleMover) HasDestination() bool {
	return m.hasDest
}

// Destination returns the current destination; meaningful only while
// HasDestination is true.
func (m *SimpleMover) Destination() geom.Vec3 {
	return m.dest
}

// Advance moves the agent dt seconds along its path. Called once per
// tick by the simulation loop.
func (m *SimpleMover) Advance(dt float64) {
	if !m.hasDest || dt <= 0 {
		m.vel = geom.Vec3{}
		return
	}

	toDest := m.dest.Sub(m.Entity.Pos).Flat()
	dist := toDest.Length()
	step := m.Speed * dt

	if dist <= step {
		// Arrived this tick.
		m.Entity.Pos.X = m.dest.X
		m.Entity.Pos.Z = m.dest.Z
		m.hasDest = false
		m.vel = geom.Vec3{}
		return
	}

	dir := toDest.Normalized()
	m.Entity.Pos = m.Entity.Pos.Add(dir.Scale(step))
	m.Entity.Forward = dir
	m.vel = dir.Scale(m.Speed)
}
