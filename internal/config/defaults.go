package config

import (
	_ "embed"
)

//go:embed defaults/frogs.yaml
var defaultFrogsYAML []byte

// DefaultFrogsConfig returns the default frog pond configuration.
func DefaultFrogsConfig() FrogsConfig {
	return FrogsConfig{
		Driver: DriverConfig{
			TickRate:   60,
			MaxDeltaMs: 250,
		},
		Autoplay: AutoplayConfig{
			StepMs:   16,
			MaxSteps: 200000,
		},
		Difficulty: DifficultyNormal,
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultFrogsYAML
}
