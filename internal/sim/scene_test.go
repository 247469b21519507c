package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/quietpond/straycat/internal/geom"
)

const testSceneYAML = `
scene:
  name: "Test Garden"
  player: player
  quest: escape
  exploder: trap
  companion:
    id: cat
    name: "Smudge"
    pos: [1, 0, 1]
  entities:
    - id: player
      pos: [0, 0, 0]
      forward: [0, 0, 1]
      speed: 4.0
      path:
        - [0, 0, 20]
    - id: door
      pos: [0, 0, 10]
    - id: trap
      tags: [trap]
      pos: [0, 0, 18]
  guides:
    - time: 0.5
      pos: [0, 0, 5]
  explosions:
    - time: 5.0
      pos: [0, 0, 18]
`

func TestLoadScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(testSceneYAML), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	config, err := LoadScene(path)
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}

	scene := config.Scene
	if scene.Name != "Test Garden" || scene.Player != "player" || scene.Quest != "escape" {
		t.Errorf("Scene header mismatch: got %+v", scene)
	}
	if scene.Companion.ID != "cat" || scene.Companion.Name != "Smudge" {
		t.Errorf("Companion mismatch: got %+v", scene.Companion)
	}
	if len(scene.Entities) != 3 {
		t.Fatalf("Entity count mismatch: got %d, want 3", len(scene.Entities))
	}
	if scene.Entities[0].Speed != 4.0 || len(scene.Entities[0].Path) != 1 {
		t.Errorf("Scripted player mismatch: got %+v", scene.Entities[0])
	}
	if len(scene.Explosions) != 1 || scene.Explosions[0].Time != 5.0 {
		t.Errorf("Explosions mismatch: got %+v", scene.Explosions)
	}
	if errs := scene.Validate(); len(errs) != 0 {
		t.Errorf("Expected valid scene, got %v", errs)
	}
}

func TestSceneValidate(t *testing.T) {
	base := func() SceneDefinition {
		return SceneDefinition{
			Name:      "t",
			Player:    "player",
			Quest:     "escape",
			Companion: CompanionYAML{ID: "cat"},
			Entities:  []EntityYAML{{ID: "player"}},
		}
	}

	tests := []struct {
		name     string
		mutate   func(*SceneDefinition)
		wantErrs int
	}{
		{"valid", func(*SceneDefinition) {}, 0},
		{"no player", func(s *SceneDefinition) { s.Player = "" }, 1},
		{"unknown player", func(s *SceneDefinition) { s.Player = "ghost" }, 1},
		{"no companion", func(s *SceneDefinition) { s.Companion.ID = "" }, 1},
		{"companion id collision", func(s *SceneDefinition) { s.Companion.ID = "player" }, 1},
		{"no quest", func(s *SceneDefinition) { s.Quest = "" }, 1},
		{"dangling exploder", func(s *SceneDefinition) { s.Exploder = "ghost" }, 1},
		{"duplicate entity", func(s *SceneDefinition) {
			s.Entities = append(s.Entities, EntityYAML{ID: "player"})
		}, 1},
		{"entity without id", func(s *SceneDefinition) {
			s.Entities = append(s.Entities, EntityYAML{})
		}, 1},
	}

	for _, tt := range tests {
		scene := base()
		tt.mutate(&scene)
		if errs := scene.Validate(); len(errs) != tt.wantErrs {
			t.Errorf("%s: error count mismatch: got %d (%v), want %d", tt.name, len(errs), errs, tt.wantErrs)
		}
	}
}

func TestVec(t *testing.T) {
	tests := []struct {
		coords []float64
		want   geom.Vec3
	}{
		{nil, geom.Vec3{}},
		{[]float64{1}, geom.Vec3{X: 1}},
		{[]float64{1, 2}, geom.Vec3{X: 1, Y: 2}},
		{[]float64{1, 2, 3}, geom.Vec3{X: 1, Y: 2, Z: 3}},
	}

	for _, tt := range tests {
		if got := vec(tt.coords); got != tt.want {
			t.Errorf("vec(%v) mismatch: got %v, want %v", tt.coords, got, tt.want)
		}
	}
}
