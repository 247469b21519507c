package quest

import (
	"testing"

	"github.com/quietpond/straycat/internal/events"
	"github.com/quietpond/straycat/internal/geom"
	"github.com/quietpond/straycat/internal/world"
)

func recordEvents(bus *events.Bus) *[]events.Event {
	var got []events.Event
	bus.Subscribe(func(e events.Event) { got = append(got, e) })
	return &got
}

func eventTypes(evs []events.Event) []events.Type {
	types := make([]events.Type, len(evs))
	for i, e := range evs {
		types[i] = e.Type
	}
	return types
}

func gardenObjectives() []*Objective {
	return []*Objective{
		{Kind: KindProximity, Name: "reach the door", Subject: "player", Target: "door", Radius: 3},
		{Kind: KindCollect, Name: "gather fish", Subject: "player", ItemTag: "fish", Required: 2, CaptureRadius: 1.5},
	}
}

func gardenWorld() *world.World {
	w := world.New()
	w.Add(&world.Entity{ID: "player", Pos: geom.Vec3{}})
	w.Add(&world.Entity{ID: "door", Pos: geom.Vec3{Z: 10}})
	w.Add(&world.Entity{ID: "fish_a", Tags: []string{"fish"}, Pos: geom.Vec3{Z: 100}})
	w.Add(&world.Entity{ID: "fish_b", Tags: []string{"fish"}, Pos: geom.Vec3{Z: 100}})
	return w
}

// runGardenScenario walks the player toward the door, then brings the two
// fish into capture range one tick apart.
func runGardenScenario(t *testing.T, s *Sequencer, w *world.World) {
	t.Helper()

	player, _ := w.Get("player")
	fishA, _ := w.Get("fish_a")
	fishB, _ := w.Get("fish_b")

	s.Start()

	// Approach the door: 10 units away, then 6, then 2.
	s.Tick(w)
	player.Pos = geom.Vec3{Z: 4}
	s.Tick(w)
	if s.Current() != 0 {
		t.Fatalf("Current after partial approach mismatch: got %d, want 0", s.Current())
	}
	player.Pos = geom.Vec3{Z: 8}
	s.Tick(w)
	if s.Current() != 1 {
		t.Fatalf("Current after reaching door mismatch: got %d, want 1", s.Current())
	}

	// Fish come into range one tick apart.
	fishA.Pos = geom.Vec3{Z: 8}
	s.Tick(w)
	if s.AllComplete() {
		t.Fatal("Quest must not complete with one of two fish collected")
	}
	if got := s.Objective(1).Progress(w); got != 0.5 {
		t.Fatalf("Collection progress mismatch: got %v, want 0.5", got)
	}
	fishB.Pos = geom.Vec3{Z: 8}
	s.Tick(w)
	if !s.AllComplete() {
		t.Fatal("Expected quest completion after both fish collected")
	}
}

func TestSequencerNotificationOrder(t *testing.T) {
	bus := events.NewBus()
	got := recordEvents(bus)
	w := gardenWorld()
	s := NewSequencer("garden", "Out of the Garden", gardenObjectives(), bus, true)

	runGardenScenario(t, s, w)

	want := []events.Type{
		events.TypeObjectiveStarted,
		events.TypeObjectiveCompleted,
		events.TypeObjectiveStarted,
		events.TypeObjectiveCompleted,
		events.TypeQuestCompleted,
	}
	types := eventTypes(*got)
	if len(types) != len(want) {
		t.Fatalf("Event count mismatch: got %d (%v), want %d", len(types), types, len(want))
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("Event %d mismatch: got %s, want %s", i, types[i], want[i])
		}
	}

	// Index fields track the objective each event is about.
	wantIndexes := []int{0, 0, 1, 1, 0}
	for i, e := range *got {
		if e.Index != wantIndexes[i] {
			t.Errorf("Event %d index mismatch: got %d, want %d", i, e.Index, wantIndexes[i])
		}
	}
}

func TestSequencerStrictOrder(t *testing.T) {
	bus := events.NewBus()
	w := gardenWorld()
	s := NewSequencer("garden", "Out of the Garden", gardenObjectives(), bus, true)
	s.Start()

	// Both fish are already in capture range of the player, but the
	// collection objective is not active yet: nothing may be collected.
	fishA, _ := w.Get("fish_a")
	fishB, _ := w.Get("fish_b")
	fishA.Pos = geom.Vec3{}
	fishB.Pos = geom.Vec3{}

	for i := 0; i < 5; i++ {
		s.Tick(w)
	}
	if s.Current() != 0 {
		t.Errorf("Current mismatch: got %d, want 0 (first objective unmet)", s.Current())
	}
	if got := s.Objective(1).CollectedCount(); got != 0 {
		t.Errorf("Inactive objective collected items: got %d, want 0", got)
	}
}

func TestSequencerManualAdvance(t *testing.T) {
	bus := events.NewBus()
	w := gardenWorld()
	player, _ := w.Get("player")
	s := NewSequencer("garden", "Out of the Garden", gardenObjectives(), bus, false)
	s.Start()

	player.Pos = geom.Vec3{Z: 8}
	s.Tick(w)
	if s.Current() != 1 {
		t.Fatalf("Current mismatch: got %d, want 1", s.Current())
	}
	if s.Objective(1).Active() {
		t.Error("Next objective must stay pending until StartNext with auto-advance off")
	}

	s.StartNext()
	if !s.Objective(1).Active() {
		t.Error("Expected StartNext to activate the pending objective")
	}
}

func TestSequencerEmptyQuest(t *testing.T) {
	bus := events.NewBus()
	got := recordEvents(bus)
	s := NewSequencer("empty", "Empty", nil, bus, true)

	s.Start()
	if !s.AllComplete() {
		t.Error("Empty quest should complete immediately on Start")
	}
	if got := s.Progress(world.New()); got != 1 {
		t.Errorf("Empty quest progress mismatch: got %v, want 1", got)
	}
	types := eventTypes(*got)
	if len(types) != 1 || types[0] != events.TypeQuestCompleted {
		t.Errorf("Empty quest events mismatch: got %v, want [quest.completed]", types)
	}
}

func TestSequencerTerminalTickIsNoop(t *testing.T) {
	bus := events.NewBus()
	got := recordEvents(bus)
	w := gardenWorld()
	s := NewSequencer("garden", "Out of the Garden", gardenObjectives(), bus, true)
	runGardenScenario(t, s, w)

	before := len(*got)
	for i := 0; i < 10; i++ {
		s.Tick(w)
	}
	if len(*got) != before {
		t.Errorf("Terminal ticks emitted events: got %d, want %d", len(*got), before)
	}
	if got := s.Progress(w); got != 1 {
		t.Errorf("Terminal progress mismatch: got %v, want 1", got)
	}
}

func TestSequencerJumpTo(t *testing.T) {
	bus := events.NewBus()
	w := gardenWorld()
	s := NewSequencer("garden", "Out of the Garden", gardenObjectives(), bus, true)
	s.Start()

	if s.JumpTo(5) {
		t.Error("Out-of-range jump should be rejected")
	}
	if s.JumpTo(-1) {
		t.Error("Negative jump should be rejected")
	}
	if s.Current() != 0 {
		t.Errorf("Current after rejected jumps mismatch: got %d, want 0", s.Current())
	}

	if !s.JumpTo(1) {
		t.Fatal("In-range jump should succeed")
	}
	if s.Current() != 1 {
		t.Errorf("Current after jump mismatch: got %d, want 1", s.Current())
	}
	if !s.Objective(1).Active() {
		t.Error("Jump target should be active")
	}
	if s.Objective(0).Active() {
		t.Error("Previous objective should be reset by jump")
	}

	// The jump target starts from scratch: with both fish still far away,
	// ticking does not advance.
	s.Tick(w)
	if s.Current() != 1 {
		t.Errorf("Current after post-jump tick mismatch: got %d, want 1", s.Current())
	}
	if got := s.Objective(1).CollectedCount(); got != 0 {
		t.Errorf("Jump target progress mismatch: got %d collected, want 0", got)
	}
}

func TestSequencerForceComplete(t *testing.T) {
	bus := events.NewBus()
	s := NewSequencer("garden", "Out of the Garden", gardenObjectives(), bus, true)
	s.Start()

	s.ForceComplete()
	if s.Current() != 1 {
		t.Errorf("Current after force-complete mismatch: got %d, want 1", s.Current())
	}
	if !s.Objective(0).Completed() {
		t.Error("Forced objective should be completed despite unmet predicate")
	}

	s.ForceComplete()
	if !s.AllComplete() {
		t.Error("Expected quest completion after forcing both objectives")
	}
}

func TestSequencerResetAllReproducesRun(t *testing.T) {
	bus := events.NewBus()
	got := recordEvents(bus)
	w := gardenWorld()
	s := NewSequencer("garden", "Out of the Garden", gardenObjectives(), bus, true)

	runGardenScenario(t, s, w)
	firstRun := eventTypes(*got)

	// Restore the world and replay: the notification sequence must match
	// the first run exactly.
	*got = nil
	s.ResetAll()
	player, _ := w.Get("player")
	fishA, _ := w.Get("fish_a")
	fishB, _ := w.Get("fish_b")
	player.Pos = geom.Vec3{}
	fishA.Pos = geom.Vec3{Z: 100}
	fishB.Pos = geom.Vec3{Z: 100}

	runGardenScenario(t, s, w)
	secondRun := eventTypes(*got)

	if len(secondRun) != len(firstRun) {
		t.Fatalf("Replay event count mismatch: got %d, want %d", len(secondRun), len(firstRun))
	}
	for i := range firstRun {
		if secondRun[i] != firstRun[i] {
			t.Errorf("Replay event %d mismatch: got %s, want %s", i, secondRun[i], firstRun[i])
		}
	}
}

func TestSequencerProgress(t *testing.T) {
	bus := events.NewBus()
	w := gardenWorld()
	player, _ := w.Get("player")
	s := NewSequencer("garden", "Out of the Garden", gardenObjectives(), bus, true)

	if got := s.Progress(w); got != 0 {
		t.Errorf("Progress before start mismatch: got %v, want 0", got)
	}

	s.Start()
	// Player 10 away from door, radius 3: partial 1 - 10/6 clamps to 0.
	if got := s.Progress(w); got != 0 {
		t.Errorf("Progress at start mismatch: got %v, want 0", got)
	}

	// Complete the proximity objective: 1 of 2 done, collection at 0.
	player.Pos = geom.Vec3{Z: 8}
	s.Tick(w)
	if got := s.Progress(w); got != 0.5 {
		t.Errorf("Progress mid-quest mismatch: got %v, want 0.5", got)
	}
}
