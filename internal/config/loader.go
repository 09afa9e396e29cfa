package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFrogs loads the frog pond configuration.
// Search order: customPath -> ~/.frogpond/configs/frogs.yaml -> ./configs/frogs.yaml -> embedded default
func LoadFrogs(customPath string) (FrogsConfig, error) {
	var cfg FrogsConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return validate(cfg.withDefaults(), customPath)
	}

	// Try user config directory
	if userCfgPath := userConfigPath("frogs.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return validate(cfg.withDefaults(), userCfgPath)
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/frogs.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return validate(cfg.withDefaults(), "configs/frogs.yaml")
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultFrogsYAML, &cfg); err != nil {
		return DefaultFrogsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg.withDefaults(), nil
}

// HomeDir returns ~/.frogpond, or empty if home is unavailable.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".frogpond")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := HomeDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

func validate(cfg FrogsConfig, source string) (FrogsConfig, error) {
	if _, ok := ParsePreset(string(cfg.Difficulty)); !ok {
		return cfg, fmt.Errorf("config %s: unknown difficulty %q", source, cfg.Difficulty)
	}
	return cfg, nil
}
