package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in each config directory.
const ConfigFile = "circlepop.yaml"

// LoadCirclePop loads the CirclePop configuration.
// Search order: customPath -> ~/.circlepop/configs/circlepop.yaml ->
// ./configs/circlepop.yaml -> embedded default.
// A custom path that cannot be read, parsed or validated is an error; the other
// locations are skipped when unusable.
func LoadCirclePop(customPath string) (CirclePopConfig, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return CirclePopConfig{}, err
		}
		if err := cfg.Validate(); err != nil {
			return CirclePopConfig{}, fmt.Errorf("%s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(ConfigFile), filepath.Join("configs", ConfigFile)} {
		if path == "" {
			continue
		}
		if cfg, err := loadFile(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	var cfg CirclePopConfig
	if err := yaml.Unmarshal(defaultCirclePopYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultCirclePopConfig(), nil
	}
	return cfg, nil
}

// loadFile reads and parses a single YAML file.
func loadFile(path string) (CirclePopConfig, error) {
	var cfg CirclePopConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".circlepop", "configs", filename)
}
