// Package quest implements the objective variants and the linear
// sequencer that drives them. Objectives are polled once per tick against
// the current world state; the sequencer completes them strictly in
// order.
package quest

import (
	"fmt"

	"github.com/quietpond/straycat/internal/geom"
	"github.com/quietpond/straycat/internal/logger"
	"github.com/quietpond/straycat/internal/world"
)

// ObjectiveKind selects the completion-check strategy of an objective.
type ObjectiveKind string

const (
	// KindProximity completes when the subject gets within Radius of the
	// target entity.
	KindProximity ObjectiveKind = "proximity"

	// KindCollect completes when Required distinct items have been picked
	// up within CaptureRadius of the subject.
	KindCollect ObjectiveKind = "collect"

	// KindTrigger completes after Required accepted RecordCall
	// invocations from external systems.
	KindTrigger ObjectiveKind = "trigger"
)

// Objective is a single trackable goal. The Kind field selects which of
// the per-kind configuration blocks applies; the others are ignored.
// Runtime state lives alongside configuration so a Reset can return the
// objective to its pre-activation state.
type Objective struct {
	Kind        ObjectiveKind
	Name        string
	Description string

	// Subject is the tracked entity whose position drives proximity and
	// collection checks. Usually the player.
	Subject world.EntityID

	// Proximity configuration.
	Target world.EntityID
	Radius float64

	// Collection configuration. Items is an explicit closed set of
	// collectible IDs; when empty, ItemTag selects candidates by tag
	// query instead (re-scanned every tick so late-spawned collectibles
	// still count).
	Items         []world.EntityID
	ItemTag       string
	Required      int
	CaptureRadius float64

	// Trigger configuration. An empty filter accepts any caller;
	// otherwise the caller must match CallerID by identity or carry
	// CallerTag.
	CallerID         world.EntityID
	CallerTag        string
	AllowRepeatCalls bool

	active    bool
	completed bool
	collected map[world.EntityID]bool
	calls     int
}

// Active reports whether the objective is currently being tracked.
func (o *Objective) Active() bool {
	return o.active
}

// Completed reports whether the objective has been completed.
func (o *Objective) Completed() bool {
	return o.completed
}

// Activate begins tracking the objective. Activating a completed or
// already-active objective is a no-op.
func (o *Objective) Activate() {
	if o.active || o.completed {
		return
	}
	if err := o.Validate(); err != nil {
		// Misconfigured objectives still activate but can never complete;
		// a stalled quest beats a crashed session.
		logger.Warning("Objective misconfigured", "objective", o.Name, "error", err)
	}
	o.active = true
	if o.Kind == KindCollect && o.collected == nil {
		o.collected = make(map[world.EntityID]bool)
	}
	logger.Info("Objective activated", "objective", o.Name, "kind", o.Kind)
}

// Complete marks the objective done and stops tracking it. Completing an
// inactive or already-completed objective is a no-op.
func (o *Objective) Complete() {
	if !o.active || o.completed {
		return
	}
	o.active = false
	o.completed = true
	logger.Info("Objective completed", "objective", o.Name, "kind", o.Kind)
}

// Reset returns the objective to its pre-activation state, clearing all
// progress.
func (o *Objective) Reset() {
	o.active = false
	o.completed = false
	o.collected = nil
	o.calls = 0
}

// Validate reports configuration errors. A failing objective still runs;
// it just never satisfies its completion predicate.
func (o *Objective) Validate() error {
	switch o.Kind {
	case KindProximity:
		if o.Subject == "" || o.Target == "" {
			return fmt.Errorf("proximity objective %q needs subject and target", o.Name)
		}
		if o.Radius <= 0 {
			return fmt.Errorf("proximity objective %q needs a positive radius", o.Name)
		}
	case KindCollect:
		if o.Subject == "" {
			return fmt.Errorf("collect objective %q needs a subject", o.Name)
		}
		if len(o.Items) == 0 && o.ItemTag == "" {
			return fmt.Errorf("collect objective %q needs items or an item tag", o.Name)
		}
		if o.Required <= 0 {
			return fmt.Errorf("collect objective %q needs a positive required count", o.Name)
		}
		if o.CaptureRadius <= 0 {
			return fmt.Errorf("collect objective %q needs a positive capture radius", o.Name)
		}
	case KindTrigger:
		if o.Required <= 0 {
			return fmt.Errorf("trigger objective %q needs a positive required count", o.Name)
		}
	default:
		return fmt.Errorf("objective %q has unknown kind %q", o.Name, o.Kind)
	}
	return nil
}

// CheckCompletion polls world state and reports whether the objective's
// completion predicate holds. Collection objectives record newly captured
// items as a side effect of the poll.
func (o *Objective) CheckCompletion(w *world.World) bool {
	if !o.active || o.completed {
		return o.completed
	}

	switch o.Kind {
	case KindProximity:
		d := w.Distance(o.Subject, o.Target)
		return d >= 0 && d <= o.Radius && o.Radius > 0
	case KindCollect:
		o.scanCollectibles(w)
		return o.Required > 0 && len(o.collected) >= o.Required
	case KindTrigger:
		return o.Required > 0 && o.calls >= o.Required
	}
	return false
}

// scanCollectibles captures every candidate item within CaptureRadius of
// the subject that hasn't been collected yet. Each item counts once;
// re-entering range after collection is a no-op.
func (o *Objective) scanCollectibles(w *world.World) {
	subject, ok := w.Get(o.Subject)
	if !ok || o.CaptureRadius <= 0 {
		return
	}
	if o.collected == nil {
		o.collected = make(map[world.EntityID]bool)
	}

	for _, item := range o.candidates(w) {
		if o.collected[item.ID] {
			continue
		}
		if geom.Distance(subject.Pos, item.Pos) <= o.CaptureRadius {
			o.collected[item.ID] = true
			logger.Info("Item collected", "objective", o.Name, "item", item.ID,
				"count", len(o.collected), "required", o.Required)
		}
	}
}

// candidates returns the item entities this collection objective watches.
// The tag query runs against the live world each tick.
func (o *Objective) candidates(w *world.World) []*world.Entity {
	if len(o.Items) > 0 {
		result := make([]*world.Entity, 0, len(o.Items))
		for _, id := range o.Items {
			if e, ok := w.Get(id); ok {
				result = append(result, e)
			}
		}
		return result
	}
	if o.ItemTag != "" {
		return w.ByTag(o.ItemTag)
	}
	return nil
}

// RecordCall reports an external trigger invocation. The call is accepted
// only when the objective is active, not already completed (unless repeat
// calls are allowed), and the caller passes the configured filter.
// Rejected calls are logged and ignored. Returns whether the call counted.
func (o *Objective) RecordCall(caller *world.Entity) bool {
	if o.Kind != KindTrigger {
		logger.Debug("Trigger call on non-trigger objective ignored", "objective", o.Name)
		return false
	}
	if !o.active {
		logger.Debug("Trigger call on inactive objective ignored", "objective", o.Name)
		return false
	}
	if o.completed && !o.AllowRepeatCalls {
		logger.Debug("Trigger call on completed objective ignored", "objective", o.Name)
		return false
	}
	if !o.callerAllowed(caller) {
		callerID := world.EntityID("")
		if caller != nil {
			callerID = caller.ID
		}
		logger.Debug("Trigger call from filtered caller ignored",
			"objective", o.Name, "caller", callerID)
		return false
	}

	o.calls++
	logger.Info("Trigger call recorded", "objective", o.Name,
		"calls", o.calls, "required", o.Required)
	return true
}

// callerAllowed checks the optional caller filter: match by identity or
// by tag. No filter configured accepts everyone.
func (o *Objective) callerAllowed(caller *world.Entity) bool {
	if o.CallerID == "" && o.CallerTag == "" {
		return true
	}
	if caller == nil {
		return false
	}
	if o.CallerID != "" && caller.ID == o.CallerID {
		return true
	}
	if o.CallerTag != "" && caller.HasTag(o.CallerTag) {
		return true
	}
	return false
}

// CollectedCount returns how many distinct items have been captured.
func (o *Objective) CollectedCount() int {
	return len(o.collected)
}

// CallCount returns how many trigger calls have been accepted.
func (o *Objective) CallCount() int {
	return o.calls
}

// Progress returns normalized completion in [0, 1]: exactly 1 when
// completed, exactly 0 before first activation, and the variant-specific
// fraction while active.
func (o *Objective) Progress(w *world.World) float64 {
	if o.completed {
		return 1
	}
	if !o.active {
		return 0
	}

	switch o.Kind {
	case KindProximity:
		d := w.Distance(o.Subject, o.Target)
		if d < 0 || o.Radius <= 0 {
			return 0
		}
		// Reaches 1 only inside the radius; fades to 0 at twice the radius.
		return geom.Clamp01(1 - d/(2*o.Radius))
	case KindCollect:
		if o.Required <= 0 {
			return 0
		}
		return geom.Clamp01(float64(len(o.collected)) / float64(o.Required))
	case KindTrigger:
		if o.Required <= 0 {
			return 0
		}
		return geom.Clamp01(float64(o.calls) / float64(o.Required))
	}
	return 0
}
