package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalPath is the project-relative config file.
const LocalPath = "configs/snake.yaml"

// Load loads the configuration. Files are decoded over the defaults, so a
// partial file only overrides what it names.
// Search order: customPath -> ~/.snake/config.yaml -> ./configs/snake.yaml -> embedded default
func Load(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := UserConfigPath(); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if loaded, ok := decode(data); ok {
				return loaded, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(LocalPath); err == nil {
		if loaded, ok := decode(data); ok {
			return loaded, nil
		}
	}

	// Use embedded default YAML
	if loaded, ok := decode(defaultSnakeYAML); ok {
		return loaded, nil
	}
	return cfg, nil
}

// decode parses data over the defaults and keeps it only if it validates.
func decode(data []byte) (Config, bool) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, cfg.Validate() == nil
}

// UserConfigPath returns the per-user config file, or empty if home is unavailable.
func UserConfigPath() string {
	return userPath("config.yaml")
}

// DataPath returns a file in the per-user data directory, or filename itself
// if home is unavailable.
func DataPath(filename string) string {
	if p := userPath(filename); p != "" {
		return p
	}
	return filename
}

func userPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake", filename)
}

// Save writes cfg as YAML to path, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
