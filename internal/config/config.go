// Package config provides YAML-based configuration loading and difficulty
// presets for the frog pond.
package config

import "github.com/vovakirdan/frogpond/internal/games/frogs/level"

// FrogsConfig contains all configuration for the frog pond.
type FrogsConfig struct {
	Driver     DriverConfig     `yaml:"driver"`
	Rules      level.Overrides  `yaml:"rules"`
	Autoplay   AutoplayConfig   `yaml:"autoplay"`
	Difficulty DifficultyPreset `yaml:"difficulty"`
}

// DriverConfig defines how the interactive driver pumps time into the engine.
type DriverConfig struct {
	TickRate   int     `yaml:"tick_rate"`    // UI frames per second
	MaxDeltaMs float64 `yaml:"max_delta_ms"` // Larger frame gaps are clamped to this
}

// AutoplayConfig defines headless simulation parameters.
type AutoplayConfig struct {
	StepMs   float64 `yaml:"step_ms"`
	MaxSteps int     `yaml:"max_steps"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset returns the preset named s. The empty string is normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, true
	case DifficultyEasy:
		return DifficultyEasy, true
	case DifficultyHard:
		return DifficultyHard, true
	default:
		return "", false
	}
}

// FrameMs returns the frame interval implied by the tick rate.
func (d DriverConfig) FrameMs() float64 {
	if d.TickRate <= 0 {
		return 1000.0 / 60
	}
	return 1000.0 / float64(d.TickRate)
}

// withDefaults fills zero values left by a partial YAML file.
func (c FrogsConfig) withDefaults() FrogsConfig {
	def := DefaultFrogsConfig()
	if c.Driver.TickRate <= 0 {
		c.Driver.TickRate = def.Driver.TickRate
	}
	if c.Driver.MaxDeltaMs <= 0 {
		c.Driver.MaxDeltaMs = def.Driver.MaxDeltaMs
	}
	if c.Autoplay.StepMs <= 0 {
		c.Autoplay.StepMs = def.Autoplay.StepMs
	}
	if c.Autoplay.MaxSteps <= 0 {
		c.Autoplay.MaxSteps = def.Autoplay.MaxSteps
	}
	if c.Difficulty == "" {
		c.Difficulty = DifficultyNormal
	}
	return c
}
