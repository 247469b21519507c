// Package events carries gameplay notifications from the quest and
// companion subsystems to display-side consumers. Delivery is synchronous
// and happens in the tick that produced the transition, before the next
// tick begins.
package events

import (
	"github.com/quietpond/straycat/internal/geom"
	"github.com/quietpond/straycat/internal/logger"
)

// Type identifies the kind of notification.
type Type string

const (
	TypeObjectiveStarted   Type = "objective.started"
	TypeObjectiveCompleted Type = "objective.completed"
	TypeQuestCompleted     Type = "quest.completed"
	TypeCompanionState     Type = "companion.state_changed"
	TypeChatRequested      Type = "chat.requested"
	TypeEffectRequested    Type = "effect.requested"
)

// Event is a single gameplay notification.
type Event struct {
	Type   Type
	Source string // emitting subsystem: quest ID, companion name, effect kind
	Text   string // display text: objective name, chat line, state name

	// Objective events
	Index int // objective index within its quest

	// Chat events
	Duration float64 // seconds the message should stay visible

	// Effect events
	EffectID string // unique instance ID for spawned effects
	Pos      geom.Vec3
}

// Handler receives published events.
type Handler func(Event)

// Bus is a synchronous fan-out of gameplay events. Accessed only from
// the game loop goroutine; no locks needed.
type Bus struct {
	handlers []Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler. Handlers run in subscription order.
func (b *Bus) Subscribe(h Handler) {
	if h != nil {
		b.handlers = append(b.handlers, h)
	}
}

// Publish delivers an event to every handler. A panicking handler is
// logged and skipped so a faulty listener cannot block the state
// transition that produced the event.
func (b *Bus) Publish(e Event) {
	for _, h := range b.handlers {
		b.deliver(h, e)
	}
}

func (b *Bus) deliver(h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Event handler panicked", "type", e.Type, "source", e.Source, "panic", r)
		}
	}()
	h(e)
}
