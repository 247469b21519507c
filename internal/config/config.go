// Package config loads game-wide tuning values from YAML.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// GameConfig holds all tunable gameplay settings.
type GameConfig struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Companion  CompanionConfig  `yaml:"companion"`
	Effects    EffectsConfig    `yaml:"effects"`
}

// SimulationConfig holds tick loop settings.
type SimulationConfig struct {
	// TickRate is the number of simulation steps per second.
	TickRate float64 `yaml:"tick_rate"`
}

// CompanionConfig holds companion behavior tuning.
type CompanionConfig struct {
	// FollowThreshold is the distance beyond which the companion starts
	// following, and the distance it tries to keep while following.
	FollowThreshold float64 `yaml:"follow_threshold"`

	// GuideThreshold is the player distance at which a guiding companion
	// stops and waits for the player to catch up.
	GuideThreshold float64 `yaml:"guide_threshold"`

	// ArriveRadius is how close the companion must get to a guide target
	// to count as arrived.
	ArriveRadius float64 `yaml:"arrive_radius"`

	// WanderInterval is the seconds between follow-offset refreshes.
	WanderInterval float64 `yaml:"wander_interval"`

	// WanderRadius bounds the random follow offset.
	WanderRadius float64 `yaml:"wander_radius"`

	// MaxTurnAngle is the largest course change in degrees the companion
	// will make in a single follow step.
	MaxTurnAngle float64 `yaml:"max_turn_angle"`

	// WaitReminder is the seconds between reminder messages while waiting.
	WaitReminder float64 `yaml:"wait_reminder"`

	// MoveSpeed is the companion's walk speed in units per second.
	MoveSpeed float64 `yaml:"move_speed"`
}

// EffectsConfig holds camera effect tuning.
type EffectsConfig struct {
	// ShakeAmplitude is the initial camera shake offset magnitude.
	ShakeAmplitude float64 `yaml:"shake_amplitude"`

	// ShakeDuration is how long a shake lasts in seconds.
	ShakeDuration float64 `yaml:"shake_duration"`
}

// DefaultConfig returns the built-in gameplay defaults.
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Simulation: SimulationConfig{
			TickRate: 20,
		},
		Companion: CompanionConfig{
			FollowThreshold: 2.0,
			GuideThreshold:  6.0,
			ArriveRadius:    1.0,
			WanderInterval:  4.0,
			WanderRadius:    1.5,
			MaxTurnAngle:    100,
			WaitReminder:    5.0,
			MoveSpeed:       3.5,
		},
		Effects: EffectsConfig{
			ShakeAmplitude: 0.35,
			ShakeDuration:  0.6,
		},
	}
}

// LoadConfig loads gameplay configuration from a YAML file. If the file
// doesn't exist, returns defaults; a parse error also returns defaults
// along with the error.
func LoadConfig(path string) (*GameConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), err
	}

	return config, nil
}
