package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadRacer loads the racer configuration.
// Search order: customPath -> ~/.racer/configs/racer.yaml -> ./configs/racer.yaml -> embedded default.
// Files only need to name the settings they change; everything else keeps
// its default value.
func LoadRacer(customPath string) (RacerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(ExpandHome(customPath))
		if err != nil {
			return RacerConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseRacer(data)
		if err != nil {
			return RacerConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("racer.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseRacer(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "racer.yaml")); err == nil {
		if cfg, err := parseRacer(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseRacer(defaultRacerYAML)
	if err != nil {
		return DefaultRacerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseRacer overlays YAML onto the defaults and validates the result.
func parseRacer(data []byte) (RacerConfig, error) {
	cfg := DefaultRacerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RacerConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return RacerConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".racer", "configs", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
// The path is returned unchanged when home cannot be resolved.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
