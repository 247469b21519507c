package quest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/quietpond/straycat/internal/logger"
	"github.com/quietpond/straycat/internal/world"
)

// ObjectiveYAML is the YAML shape of a single objective.
type ObjectiveYAML struct {
	Kind        string `yaml:"kind"` // proximity, collect, trigger
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Subject     string `yaml:"subject"`

	// proximity
	Target string  `yaml:"target"`
	Radius float64 `yaml:"radius"`

	// collect
	Items         []string `yaml:"items"`
	ItemTag       string   `yaml:"item_tag"`
	Required      int      `yaml:"required"`
	CaptureRadius float64  `yaml:"capture_radius"`

	// trigger
	Caller           string `yaml:"caller"`
	CallerTag        string `yaml:"caller_tag"`
	AllowRepeatCalls bool   `yaml:"allow_repeat_calls"`
}

// QuestDefinition is the YAML shape of a quest.
type QuestDefinition struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	AutoAdvance *bool           `yaml:"auto_advance"` // nil defaults to true
	Objectives  []ObjectiveYAML `yaml:"objectives"`
}

// QuestsConfig represents the quests.yaml structure.
type QuestsConfig struct {
	Quests map[string]QuestDefinition `yaml:"quests"`
}

// LoadQuestsFromYAML loads quest definitions from a YAML file.
func LoadQuestsFromYAML(filename string) (*QuestsConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read quests file: %w", err)
	}

	var config QuestsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse quests YAML: %w", err)
	}

	return &config, nil
}

// Merge combines another QuestsConfig into this one.
func (config *QuestsConfig) Merge(other *QuestsConfig) {
	if other == nil {
		return
	}
	for id, def := range other.Quests {
		config.Quests[id] = def
	}
}

// LoadQuestsFromDirectory loads and merges all YAML files from a
// directory.
func LoadQuestsFromDirectory(dir string) (*QuestsConfig, error) {
	merged := &QuestsConfig{
		Quests: make(map[string]QuestDefinition),
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	fileCount := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		filePath := filepath.Join(dir, name)
		config, err := LoadQuestsFromYAML(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", filePath, err)
		}
		merged.Merge(config)
		fileCount++
		logger.Info("Loaded quest file", "path", filePath, "quests", len(config.Quests))
	}

	logger.Info("Loaded quests from directory", "dir", dir, "files", fileCount, "total_quests", len(merged.Quests))
	return merged, nil
}

// buildObjective converts a YAML definition into a runtime objective.
func buildObjective(def *ObjectiveYAML) *Objective {
	obj := &Objective{
		Kind:             parseObjectiveKind(def.Kind),
		Name:             def.Name,
		Description:      def.Description,
		Subject:          world.EntityID(def.Subject),
		Target:           world.EntityID(def.Target),
		Radius:           def.Radius,
		ItemTag:          def.ItemTag,
		Required:         def.Required,
		CaptureRadius:    def.CaptureRadius,
		CallerID:         world.EntityID(def.Caller),
		CallerTag:        def.CallerTag,
		AllowRepeatCalls: def.AllowRepeatCalls,
	}
	for _, id := range def.Items {
		obj.Items = append(obj.Items, world.EntityID(id))
	}
	return obj
}

// parseObjectiveKind converts a string to an ObjectiveKind. Unknown
// strings map to an empty kind, which Validate rejects.
func parseObjectiveKind(s string) ObjectiveKind {
	switch s {
	case "proximity":
		return KindProximity
	case "collect":
		return KindCollect
	case "trigger":
		return KindTrigger
	default:
		return ObjectiveKind(s)
	}
}
