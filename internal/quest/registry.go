package quest

import (
	"fmt"

	"github.com/quietpond/straycat/internal/events"
)

// Registry holds all loaded quest definitions and builds runnable
// sequencers from them. Definitions are immutable after load; every
// Build returns fresh objectives with clean runtime state.
type Registry struct {
	quests map[string]QuestDefinition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		quests: make(map[string]QuestDefinition),
	}
}

// LoadFromConfig replaces the registry contents with the given config.
func (r *Registry) LoadFromConfig(config *QuestsConfig) {
	r.quests = make(map[string]QuestDefinition)
	for id, def := range config.Quests {
		r.quests[id] = def
	}
}

// LoadFromYAML loads quests from a single YAML file.
func (r *Registry) LoadFromYAML(filename string) error {
	config, err := LoadQuestsFromYAML(filename)
	if err != nil {
		return err
	}
	r.LoadFromConfig(config)
	return nil
}

// LoadFromDirectory loads quests from all YAML files in a directory.
func (r *Registry) LoadFromDirectory(dir string) error {
	config, err := LoadQuestsFromDirectory(dir)
	if err != nil {
		return err
	}
	r.LoadFromConfig(config)
	return nil
}

// Get returns a quest definition by ID.
func (r *Registry) Get(id string) (QuestDefinition, bool) {
	def, exists := r.quests[id]
	return def, exists
}

// IDs returns all registered quest IDs.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.quests))
	for id := range r.quests {
		ids = append(ids, id)
	}
	return ids
}

// Count returns the number of registered quests.
func (r *Registry) Count() int {
	return len(r.quests)
}

// Build constructs a runnable sequencer for the given quest ID. The
// sequencer is not started.
func (r *Registry) Build(id string, bus *events.Bus) (*Sequencer, error) {
	def, exists := r.quests[id]
	if !exists {
		return nil, fmt.Errorf("unknown quest %q", id)
	}

	objectives := make([]*Objective, len(def.Objectives))
	for i := range def.Objectives {
		objectives[i] = buildObjective(&def.Objectives[i])
	}

	autoAdvance := true
	if def.AutoAdvance != nil {
		autoAdvance = *def.AutoAdvance
	}

	return NewSequencer(id, def.Name, objectives, bus, autoAdvance), nil
}

// Validate checks every registered quest definition and returns one
// error per misconfigured objective. Used by tooling; the game itself
// degrades gracefully instead of failing.
func (r *Registry) Validate() []error {
	var errs []error
	for id, def := range r.quests {
		if len(def.Objectives) == 0 {
			errs = append(errs, fmt.Errorf("quest %q has no objectives", id))
		}
		for i := range def.Objectives {
			obj := buildObjective(&def.Objectives[i])
			if err := obj.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("quest %q objective %d: %w", id, i, err))
			}
		}
	}
	return errs
}
