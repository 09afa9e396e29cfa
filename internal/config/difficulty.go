package config

import "github.com/vovakirdan/frogpond/internal/games/frogs/level"

// PresetOverrides returns the rule changes a difficulty preset makes.
// Normal leaves the level's rules untouched.
func PresetOverrides(preset DifficultyPreset) level.Overrides {
	switch preset {
	case DifficultyEasy:
		return level.Overrides{
			SlotCount:          intPtr(7),
			ConveyorCapacity:   intPtr(6),
			VictoryModeSpeedup: floatPtr(4),
		}
	case DifficultyHard:
		return level.Overrides{
			SlotCount:          intPtr(3),
			ConveyorCapacity:   intPtr(4),
			VictoryModeSpeedup: floatPtr(2),
		}
	default:
		return level.Overrides{}
	}
}

// RuleOverrides returns the overrides to apply to every level: the configured
// rules with the configured preset on top.
func (c FrogsConfig) RuleOverrides() level.Overrides {
	return c.Rules.Merge(PresetOverrides(c.Difficulty))
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
