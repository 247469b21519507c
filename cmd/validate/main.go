// Command validate checks quest and scene content without running the
// game: it loads every YAML file, validates objective configuration and
// scene references, and exits non-zero when anything is wrong. Meant for
// content authors and CI.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/quietpond/straycat/internal/config"
	"github.com/quietpond/straycat/internal/logger"
	"github.com/quietpond/straycat/internal/quest"
	"github.com/quietpond/straycat/internal/sim"
)

func main() {
	configFile := flag.String("config", "data/game.yaml", "Path to game config YAML file")
	questsDir := flag.String("quests", "data/quests", "Path to quests YAML directory")
	sceneFile := flag.String("scene", "data/scene.yaml", "Path to scene YAML file")
	flag.Parse()

	logger.Initialize(logger.Config{Level: "WARNING", ConsoleEnabled: true, ConsoleFormat: "text"})

	failed := false

	if _, err := config.LoadConfig(*configFile); err != nil {
		fmt.Printf("FAIL  game config %s: %v\n", *configFile, err)
		failed = true
	} else {
		fmt.Printf("ok    game config %s\n", *configFile)
	}

	registry := quest.NewRegistry()
	if err := registry.LoadFromDirectory(*questsDir); err != nil {
		fmt.Printf("FAIL  quests %s: %v\n", *questsDir, err)
		os.Exit(1)
	}
	if errs := registry.Validate(); len(errs) > 0 {
		for _, err := range errs {
			fmt.Printf("FAIL  quest: %v\n", err)
		}
		failed = true
	} else {
		fmt.Printf("ok    %d quests in %s\n", registry.Count(), *questsDir)
	}

	sceneConfig, err := sim.LoadScene(*sceneFile)
	if err != nil {
		fmt.Printf("FAIL  scene %s: %v\n", *sceneFile, err)
		os.Exit(1)
	}
	if errs := sceneConfig.Scene.Validate(); len(errs) > 0 {
		for _, err := range errs {
			fmt.Printf("FAIL  scene: %v\n", err)
		}
		failed = true
	} else {
		fmt.Printf("ok    scene %s\n", sceneConfig.Scene.Name)
	}

	// A scene referencing an unknown quest is the most common authoring
	// mistake; check it explicitly.
	if sceneConfig.Scene.Quest != "" {
		if _, exists := registry.Get(sceneConfig.Scene.Quest); !exists {
			fmt.Printf("FAIL  scene quest %q is not defined in %s\n", sceneConfig.Scene.Quest, *questsDir)
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
	fmt.Println("all content valid")
}
