package quest

import (
	"github.com/quietpond/straycat/internal/events"
	"github.com/quietpond/straycat/internal/logger"
	"github.com/quietpond/straycat/internal/world"
)

// Sequencer drives an ordered list of objectives, exactly one active at a
// time, completing them strictly in index order. current == len(objectives)
// is the terminal all-complete state.
type Sequencer struct {
	ID   string
	Name string

	objectives  []*Objective
	current     int
	autoAdvance bool
	bus         *events.Bus
	started     bool
	announced   bool // quest-completed already emitted
}

// NewSequencer creates a sequencer over the given objectives. When
// autoAdvance is true the next objective activates in the same tick its
// predecessor completes; otherwise StartNext must be called.
func NewSequencer(id, name string, objectives []*Objective, bus *events.Bus, autoAdvance bool) *Sequencer {
	return &Sequencer{
		ID:          id,
		Name:        name,
		objectives:  objectives,
		autoAdvance: autoAdvance,
		bus:         bus,
	}
}

// Len returns the number of objectives.
func (s *Sequencer) Len() int {
	return len(s.objectives)
}

// Current returns the index of the objective being tracked. Equal to Len
// once all objectives are complete.
func (s *Sequencer) Current() int {
	return s.current
}

// Objective returns the objective at the given index, or nil if out of
// range.
func (s *Sequencer) Objective(i int) *Objective {
	if i < 0 || i >= len(s.objectives) {
		return nil
	}
	return s.objectives[i]
}

// AllComplete reports whether every objective has been completed.
func (s *Sequencer) AllComplete() bool {
	return s.current >= len(s.objectives)
}

// Start activates the first objective. An empty quest completes
// immediately. Calling Start twice is a no-op.
func (s *Sequencer) Start() {
	if s.started {
		return
	}
	s.started = true
	if len(s.objectives) == 0 {
		s.announceAllComplete()
		return
	}
	s.activateCurrent()
}

// Tick polls the active objective against world state and advances on
// completion. Safe to call after all objectives are done; it does
// nothing.
func (s *Sequencer) Tick(w *world.World) {
	if !s.started || s.AllComplete() {
		return
	}

	obj := s.objectives[s.current]
	if !obj.Active() || !obj.CheckCompletion(w) {
		return
	}

	obj.Complete()
	s.bus.Publish(events.Event{
		Type:   events.TypeObjectiveCompleted,
		Source: s.ID,
		Index:  s.current,
		Text:   obj.Name,
	})

	s.current++
	if s.AllComplete() {
		s.announceAllComplete()
		return
	}
	if s.autoAdvance {
		s.activateCurrent()
	}
}

// StartNext activates the pending objective when auto-advance is off.
// A no-op if the quest is finished or the current objective is already
// active.
func (s *Sequencer) StartNext() {
	if !s.started || s.AllComplete() {
		return
	}
	if s.objectives[s.current].Active() {
		return
	}
	s.activateCurrent()
}

// JumpTo moves tracking to an arbitrary objective index. Tooling only:
// the currently active objective (if any) is reset, and the target
// objective restarts from scratch. Out-of-range indices are rejected
// without state change. Returns whether the jump happened.
func (s *Sequencer) JumpTo(index int) bool {
	if index < 0 || index >= len(s.objectives) {
		logger.Warning("Quest jump rejected", "quest", s.ID, "index", index, "len", len(s.objectives))
		return false
	}
	if s.current < len(s.objectives) {
		s.objectives[s.current].Reset()
	}
	target := s.objectives[index]
	target.Reset()
	s.current = index
	s.started = true
	s.announced = false
	s.activateCurrent()
	logger.Info("Quest jumped", "quest", s.ID, "index", index)
	return true
}

// ResetAll resets every objective and restarts the quest from the first.
func (s *Sequencer) ResetAll() {
	for _, obj := range s.objectives {
		obj.Reset()
	}
	s.current = 0
	s.started = false
	s.announced = false
	s.Start()
	logger.Info("Quest reset", "quest", s.ID)
}

// ForceComplete completes the current objective out-of-band, bypassing
// its completion predicate. Tooling only.
func (s *Sequencer) ForceComplete() {
	if !s.started || s.AllComplete() {
		return
	}
	obj := s.objectives[s.current]
	if !obj.Active() {
		obj.Activate()
	}
	obj.Complete()
	s.bus.Publish(events.Event{
		Type:   events.TypeObjectiveCompleted,
		Source: s.ID,
		Index:  s.current,
		Text:   obj.Name,
	})
	s.current++
	if s.AllComplete() {
		s.announceAllComplete()
	} else if s.autoAdvance {
		s.activateCurrent()
	}
}

// Progress returns overall quest completion in [0, 1]: completed
// objectives plus the active objective's fractional progress, over the
// objective count.
func (s *Sequencer) Progress(w *world.World) float64 {
	n := len(s.objectives)
	if n == 0 {
		return 1
	}
	completed := float64(s.current)
	if s.AllComplete() {
		return 1
	}
	partial := 0.0
	if obj := s.objectives[s.current]; obj.Active() {
		partial = obj.Progress(w)
	}
	return (completed + partial) / float64(n)
}

// activateCurrent activates the objective at the current index and
// announces it.
func (s *Sequencer) activateCurrent() {
	obj := s.objectives[s.current]
	obj.Activate()
	s.bus.Publish(events.Event{
		Type:   events.TypeObjectiveStarted,
		Source: s.ID,
		Index:  s.current,
		Text:   obj.Name,
	})
}

// announceAllComplete emits the terminal quest-completed notification
// exactly once.
func (s *Sequencer) announceAllComplete() {
	if s.announced {
		return
	}
	s.announced = true
	s.bus.Publish(events.Event{
		Type:   events.TypeQuestCompleted,
		Source: s.ID,
		Text:   s.Name,
	})
	logger.Info("Quest completed", "quest", s.ID)
}
