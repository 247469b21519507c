// Package sim runs headless gameplay scenes: it owns the world, the
// quest sequencer, the companion, and the effects, and steps them in a
// fixed order once per tick.
package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quietpond/straycat/internal/geom"
)

// EntityYAML is the YAML shape of a scene entity. Speed and Path make
// the entity scripted: it walks its waypoints in order at the given
// speed.
type EntityYAML struct {
	ID      string      `yaml:"id"`
	Name    string      `yaml:"name"`
	Tags    []string    `yaml:"tags"`
	Pos     []float64   `yaml:"pos"`
	Forward []float64   `yaml:"forward"`
	Speed   float64     `yaml:"speed"`
	Path    [][]float64 `yaml:"path"`
}

// CompanionYAML configures the scene's companion.
type CompanionYAML struct {
	ID   string    `yaml:"id"`
	Name string    `yaml:"name"`
	Pos  []float64 `yaml:"pos"`
}

// ExplosionYAML schedules an explosion at a scene time.
type ExplosionYAML struct {
	Time float64   `yaml:"time"`
	Pos  []float64 `yaml:"pos"`
}

// GuideYAML schedules a guide target for the companion.
type GuideYAML struct {
	Time float64   `yaml:"time"`
	Pos  []float64 `yaml:"pos"`
}

// SceneDefinition is the YAML shape of a playable scene.
type SceneDefinition struct {
	Name       string          `yaml:"name"`
	Player     string          `yaml:"player"`
	Quest      string          `yaml:"quest"`
	Exploder   string          `yaml:"exploder"` // entity acting as trigger caller
	Companion  CompanionYAML   `yaml:"companion"`
	Entities   []EntityYAML    `yaml:"entities"`
	Explosions []ExplosionYAML `yaml:"explosions"`
	Guides     []GuideYAML     `yaml:"guides"`
}

// SceneConfig represents the scene.yaml structure.
type SceneConfig struct {
	Scene SceneDefinition `yaml:"scene"`
}

// LoadScene loads a scene definition from a YAML file.
func LoadScene(filename string) (*SceneConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	var config SceneConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse scene YAML: %w", err)
	}

	return &config, nil
}

// Validate reports scene configuration errors: missing player or
// companion, dangling entity references.
func (s *SceneDefinition) Validate() []error {
	var errs []error

	ids := make(map[string]bool, len(s.Entities))
	for i, e := range s.Entities {
		if e.ID == "" {
			errs = append(errs, fmt.Errorf("scene entity %d has no id", i))
			continue
		}
		if ids[e.ID] {
			errs = append(errs, fmt.Errorf("scene entity %q is defined twice", e.ID))
		}
		ids[e.ID] = true
	}

	if s.Player == "" {
		errs = append(errs, fmt.Errorf("scene has no player"))
	} else if !ids[s.Player] {
		errs = append(errs, fmt.Errorf("player %q is not a scene entity", s.Player))
	}

	if s.Companion.ID == "" {
		errs = append(errs, fmt.Errorf("scene has no companion"))
	} else if ids[s.Companion.ID] {
		errs = append(errs, fmt.Errorf("companion %q collides with a scene entity", s.Companion.ID))
	}

	if s.Exploder != "" && !ids[s.Exploder] {
		errs = append(errs, fmt.Errorf("exploder %q is not a scene entity", s.Exploder))
	}

	if s.Quest == "" {
		errs = append(errs, fmt.Errorf("scene has no quest"))
	}

	return errs
}

// vec converts a YAML coordinate list to a Vec3. Short lists leave the
// missing components at zero.
func vec(coords []float64) geom.Vec3 {
	var v geom.Vec3
	if len(coords) > 0 {
		v.X = coords[0]
	}
	if len(coords) > 1 {
		v.Y = coords[1]
	}
	if len(coords) > 2 {
		v.Z = coords[2]
	}
	return v
}
