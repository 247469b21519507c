package telemetry

import (
	"path/filepath"
	"testing"

	"github.com/quietpond/straycat/internal/events"
)

func openTestTrace(t *testing.T) *Trace {
	t.Helper()
	trace, err := Open(filepath.Join(t.TempDir(), "trace.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { trace.Close() })
	return trace
}

func TestRecordAndReadBack(t *testing.T) {
	trace := openTestTrace(t)

	if err := trace.Record(10, events.Event{
		Type: events.TypeObjectiveCompleted, Source: "garden", Text: "reach the door", Index: 0,
	}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := trace.Record(42, events.Event{
		Type: events.TypeChatRequested, Source: "Smudge", Text: "Hide here!",
	}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	got, err := trace.Events()
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Event count mismatch: got %d, want 2", len(got))
	}
	if got[0].Tick != 10 || got[0].Type != "objective.completed" || got[0].Detail != "reach the door" {
		t.Errorf("First event mismatch: got %+v", got[0])
	}
	if got[1].Tick != 42 || got[1].Source != "Smudge" {
		t.Errorf("Second event mismatch: got %+v", got[1])
	}
}

func TestCountByType(t *testing.T) {
	trace := openTestTrace(t)

	trace.Record(1, events.Event{Type: events.TypeChatRequested})
	trace.Record(2, events.Event{Type: events.TypeChatRequested})
	trace.Record(3, events.Event{Type: events.TypeQuestCompleted})

	total, err := trace.Count("")
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if total != 3 {
		t.Errorf("Total count mismatch: got %d, want 3", total)
	}

	chats, err := trace.Count(string(events.TypeChatRequested))
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if chats != 2 {
		t.Errorf("Chat count mismatch: got %d, want 2", chats)
	}
}

func TestAttachRecordsPublishedEvents(t *testing.T) {
	trace := openTestTrace(t)
	bus := events.NewBus()

	tick := uint64(7)
	trace.Attach(bus, func() uint64 { return tick })

	bus.Publish(events.Event{Type: events.TypeObjectiveStarted, Source: "garden", Index: 1})
	tick = 8
	bus.Publish(events.Event{Type: events.TypeCompanionState, Source: "Smudge", Text: "follow"})

	got, err := trace.Events()
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Event count mismatch: got %d, want 2", len(got))
	}
	if got[0].Tick != 7 || got[1].Tick != 8 {
		t.Errorf("Tick stamps mismatch: got %d, %d, want 7, 8", got[0].Tick, got[1].Tick)
	}
}
