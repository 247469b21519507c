package sim

import (
	"fmt"

	"github.com/quietpond/straycat/internal/companion"
	"github.com/quietpond/straycat/internal/config"
	"github.com/quietpond/straycat/internal/effects"
	"github.com/quietpond/straycat/internal/events"
	"github.com/quietpond/straycat/internal/gametime"
	"github.com/quietpond/straycat/internal/geom"
	"github.com/quietpond/straycat/internal/hud"
	"github.com/quietpond/straycat/internal/logger"
	"github.com/quietpond/straycat/internal/quest"
	"github.com/quietpond/straycat/internal/world"
)

// scriptedEntity walks an entity through its configured waypoints.
type scriptedEntity struct {
	mover *world.SimpleMover
	path  []geom.Vec3
	next  int
}

// advance feeds the next waypoint whenever the current leg is done.
func (s *scriptedEntity) advance(dt float64) {
	if !s.mover.HasDestination() && s.next < len(s.path) {
		s.mover.SetDestination(s.path[s.next])
		s.next++
	}
	s.mover.Advance(dt)
}

// scheduled is a timed scene action that fires once.
type scheduled struct {
	at    float64
	fired bool
	run   func()
}

// Runner owns one scene's gameplay state and steps it tick by tick.
// Step order within a tick is fixed: world motion, scheduled scene
// actions, quest sequencer, companion, HUD.
type Runner struct {
	World     *world.World
	Clock     *gametime.Clock
	Bus       *events.Bus
	Quest     *quest.Sequencer
	Companion *companion.Controller
	Shaker    *effects.Shaker
	Exploder  *effects.Exploder
	HUD       *hud.QuestHUD

	scripted  []*scriptedEntity
	compMover *world.SimpleMover
	schedule  []*scheduled
}

// NewRunner builds a runner from configuration, the quest registry, and
// a scene definition. The quest is started; call Step or Run to play.
func NewRunner(cfg *config.GameConfig, registry *quest.Registry, scene *SceneDefinition, seed int64) (*Runner, error) {
	if errs := scene.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid scene %q: %w", scene.Name, errs[0])
	}

	r := &Runner{
		World: world.New(),
		Clock: gametime.NewClock(cfg.Simulation.TickRate),
		Bus:   events.NewBus(),
	}
	r.HUD = hud.New(r.Bus)

	for i := range scene.Entities {
		def := &scene.Entities[i]
		e := &world.Entity{
			ID:      world.EntityID(def.ID),
			Name:    def.Name,
			Tags:    def.Tags,
			Pos:     vec(def.Pos),
			Forward: vec(def.Forward),
		}
		r.World.Add(e)

		if len(def.Path) > 0 && def.Speed > 0 {
			path := make([]geom.Vec3, len(def.Path))
			for j, p := range def.Path {
				path[j] = vec(p)
			}
			r.scripted = append(r.scripted, &scriptedEntity{
				mover: world.NewSimpleMover(e, def.Speed),
				path:  path,
			})
		}
	}

	seq, err := registry.Build(scene.Quest, r.Bus)
	if err != nil {
		return nil, fmt.Errorf("failed to build quest for scene %q: %w", scene.Name, err)
	}
	r.Quest = seq

	cat := &world.Entity{
		ID:   world.EntityID(scene.Companion.ID),
		Name: scene.Companion.Name,
		Pos:  vec(scene.Companion.Pos),
		Tags: []string{"companion"},
	}
	r.World.Add(cat)
	r.compMover = world.NewSimpleMover(cat, cfg.Companion.MoveSpeed)
	r.Companion = companion.New(scene.Companion.Name, cfg.Companion, r.World,
		world.EntityID(scene.Player), r.compMover, r.Bus, seed)

	r.Shaker = effects.NewShaker(seed + 1)
	var caller *world.Entity
	if scene.Exploder != "" {
		caller, _ = r.World.Get(world.EntityID(scene.Exploder))
	}
	r.Exploder = effects.NewExploder(caller, r.Bus, r.Shaker,
		cfg.Effects.ShakeAmplitude, cfg.Effects.ShakeDuration)
	r.bindTriggerObjective()

	for _, ex := range scene.Explosions {
		at := vec(ex.Pos)
		when := ex.Time
		r.schedule = append(r.schedule, &scheduled{at: when, run: func() {
			r.Exploder.Explode(at, r.Clock.Elapsed())
		}})
	}
	for _, g := range scene.Guides {
		target := vec(g.Pos)
		when := g.Time
		r.schedule = append(r.schedule, &scheduled{at: when, run: func() {
			r.Companion.SetGuideTarget(target)
		}})
	}

	r.Quest.Start()
	logger.Info("Scene ready", "scene", scene.Name, "quest", scene.Quest,
		"entities", r.World.Count())
	return r, nil
}

// bindTriggerObjective routes explosions into the quest's first trigger
// objective, if it has one.
func (r *Runner) bindTriggerObjective() {
	for i := 0; i < r.Quest.Len(); i++ {
		obj := r.Quest.Objective(i)
		if obj != nil && obj.Kind == quest.KindTrigger {
			r.Exploder.BindObjective(obj)
			return
		}
	}
}

// Step advances the simulation one tick.
func (r *Runner) Step() {
	r.Clock.Step()
	dt := r.Clock.Delta()
	now := r.Clock.Elapsed()

	for _, s := range r.scripted {
		s.advance(dt)
	}
	r.compMover.Advance(dt)

	for _, action := range r.schedule {
		if !action.fired && now >= action.at {
			action.fired = true
			action.run()
		}
	}

	r.Quest.Tick(r.World)
	r.Companion.Update(dt)
	r.HUD.Update(now, r.Quest.Progress(r.World))
}

// Run advances the simulation by the given number of ticks.
func (r *Runner) Run(ticks int) {
	for i := 0; i < ticks; i++ {
		r.Step()
	}
}

// Done reports whether the scene's quest has fully completed.
func (r *Runner) Done() bool {
	return r.Quest.AllComplete()
}
