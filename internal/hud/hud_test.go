package hud

import (
	"testing"

	"github.com/quietpond/straycat/internal/events"
)

func TestTrackerFollowsQuestEvents(t *testing.T) {
	bus := events.NewBus()
	h := New(bus)

	if got := h.TrackerLine(); got != "" {
		t.Errorf("Tracker before quest start mismatch: got %q, want empty", got)
	}

	bus.Publish(events.Event{Type: events.TypeObjectiveStarted, Index: 0, Text: "Reach the shed door"})
	h.Update(0.05, 0.25)
	if got := h.TrackerLine(); got != "Objective: Reach the shed door (25%)" {
		t.Errorf("Tracker line mismatch: got %q", got)
	}

	bus.Publish(events.Event{Type: events.TypeObjectiveStarted, Index: 1, Text: "Gather the dried fish"})
	h.Update(0.1, 0.5)
	if got := h.TrackerLine(); got != "Objective: Gather the dried fish (50%)" {
		t.Errorf("Tracker line mismatch: got %q", got)
	}

	bus.Publish(events.Event{Type: events.TypeQuestCompleted, Text: "Out of the Garden"})
	if got := h.TrackerLine(); got != "Out of the Garden - complete!" {
		t.Errorf("Completed tracker line mismatch: got %q", got)
	}
}

func TestProgressRecording(t *testing.T) {
	h := New(events.NewBus())
	h.Update(1.0, 0.75)
	if got := h.Progress(); got != 0.75 {
		t.Errorf("Progress mismatch: got %v, want 0.75", got)
	}
}

func TestChatBubbleLifecycle(t *testing.T) {
	bus := events.NewBus()
	h := New(bus)
	h.Update(10, 0)

	bus.Publish(events.Event{Type: events.TypeChatRequested, Text: "Hide here!", Duration: 2})
	if got := h.ChatBubble(); got != "Hide here!" {
		t.Errorf("Chat bubble mismatch: got %q, want Hide here!", got)
	}

	// A new message replaces the current one.
	bus.Publish(events.Event{Type: events.TypeChatRequested, Text: "This way!", Duration: 2})
	if got := h.ChatBubble(); got != "This way!" {
		t.Errorf("Replaced chat bubble mismatch: got %q, want This way!", got)
	}

	h.Update(11.9, 0)
	if got := h.ChatBubble(); got == "" {
		t.Error("Chat bubble expired early")
	}
	h.Update(12.1, 0)
	if got := h.ChatBubble(); got != "" {
		t.Errorf("Chat bubble after expiry mismatch: got %q, want empty", got)
	}
}
