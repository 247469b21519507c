package effects

import (
	"github.com/google/uuid"

	"github.com/quietpond/straycat/internal/events"
	"github.com/quietpond/straycat/internal/geom"
	"github.com/quietpond/straycat/internal/logger"
	"github.com/quietpond/straycat/internal/quest"
	"github.com/quietpond/straycat/internal/world"
)

// Exploder spawns explosion effects: each call raises an effect event
// with a unique instance ID, kicks the camera shake, and reports itself
// to an optional trigger objective so detonations can drive quest
// progress.
type Exploder struct {
	// Caller identifies this exploder to objective caller filters.
	Caller *world.Entity

	bus    *events.Bus
	shaker *Shaker

	shakeAmplitude float64
	shakeDuration  float64

	objective *quest.Objective
}

// NewExploder creates an exploder. shaker may be nil when no camera
// shake is wanted.
func NewExploder(caller *world.Entity, bus *events.Bus, shaker *Shaker, shakeAmplitude, shakeDuration float64) *Exploder {
	return &Exploder{
		Caller:         caller,
		bus:            bus,
		shaker:         shaker,
		shakeAmplitude: shakeAmplitude,
		shakeDuration:  shakeDuration,
	}
}

// BindObjective routes future explosions into a trigger objective.
// Passing nil unbinds.
func (e *Exploder) BindObjective(obj *quest.Objective) {
	e.objective = obj
}

// Explode spawns an explosion at the given position and time. Returns
// the effect instance ID.
func (e *Exploder) Explode(at geom.Vec3, now float64) string {
	id := uuid.NewString()

	e.bus.Publish(events.Event{
		Type:     events.TypeEffectRequested,
		Source:   "explosion",
		EffectID: id,
		Pos:      at,
	})

	if e.shaker != nil {
		e.shaker.Start(e.shakeAmplitude, e.shakeDuration, now)
	}

	if e.objective != nil {
		e.objective.RecordCall(e.Caller)
	}

	logger.Debug("Explosion spawned", "effect_id", id, "x", at.X, "z", at.Z)
	return id
}
