// Command sim runs a gameplay scene headlessly: it loads the quest and
// scene content, steps the simulation for a bounded duration, and logs
// every notification the gameplay core produces. With -trace it also
// records events to a SQLite file for later inspection.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/quietpond/straycat/internal/config"
	"github.com/quietpond/straycat/internal/events"
	"github.com/quietpond/straycat/internal/logger"
	"github.com/quietpond/straycat/internal/quest"
	"github.com/quietpond/straycat/internal/sim"
	"github.com/quietpond/straycat/internal/telemetry"
)

func main() {
	configFile := flag.String("config", "data/game.yaml", "Path to game config YAML file")
	loggingFile := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	questsDir := flag.String("quests", "data/quests", "Path to quests YAML directory")
	sceneFile := flag.String("scene", "data/scene.yaml", "Path to scene YAML file")
	seconds := flag.Float64("seconds", 60, "Simulated seconds to run")
	seed := flag.Int64("seed", 0, "Random seed (default: current time)")
	tracePath := flag.String("trace", "", "Path to SQLite telemetry trace (empty disables)")
	flag.Parse()

	logConfig, _ := logger.LoadConfig(*loggingFile)
	logger.Initialize(logConfig)

	logger.Info("Starting straycat scene runner")

	runSeed := *seed
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}
	logger.Info("Run seed selected", "seed", runSeed)

	gameConfig, err := config.LoadConfig(*configFile)
	if err != nil {
		logger.Warning("Game config unreadable, using defaults", "path", *configFile, "error", err)
	}

	registry := quest.NewRegistry()
	if err := registry.LoadFromDirectory(*questsDir); err != nil {
		log.Fatalf("Failed to load quests: %v", err)
	}

	sceneConfig, err := sim.LoadScene(*sceneFile)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}

	runner, err := sim.NewRunner(gameConfig, registry, &sceneConfig.Scene, runSeed)
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}

	// Echo every notification so a run is followable from the console.
	runner.Bus.Subscribe(func(e events.Event) {
		logger.Info("Notification", "type", e.Type, "source", e.Source,
			"text", e.Text, "index", e.Index)
	})

	if *tracePath != "" {
		trace, err := telemetry.Open(*tracePath)
		if err != nil {
			log.Fatalf("Failed to open telemetry trace: %v", err)
		}
		defer trace.Close()
		trace.Attach(runner.Bus, runner.Clock.Tick)
		logger.Info("Telemetry trace enabled", "path", *tracePath)
	}

	ticks := int(*seconds * gameConfig.Simulation.TickRate)
	for i := 0; i < ticks; i++ {
		runner.Step()
		if runner.Done() {
			break
		}
	}

	fmt.Printf("ticks: %d\n", runner.Clock.Tick())
	fmt.Printf("quest progress: %.0f%%\n", runner.Quest.Progress(runner.World)*100)
	fmt.Printf("companion state: %s\n", runner.Companion.State())
	fmt.Printf("tracker: %s\n", runner.HUD.TrackerLine())

	if !runner.Done() {
		logger.Warning("Scene ended before quest completion",
			"progress", runner.Quest.Progress(runner.World))
		os.Exit(1)
	}
}
