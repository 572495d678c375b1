package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

const fileName = "oxy-rts.yaml"

// Load loads the configuration. Keys missing from the chosen file keep their default values.
// Search order: customPath -> ~/.oxy-rts/config.yaml -> ./configs/oxy-rts.yaml -> embedded default
// A searched file that exists but fails to parse or validate is logged and skipped.
//
// Parameters:
//   - customPath: explicit config file, or "" to search
//   - logger: receives a warning for every skipped file; nil uses log.Default()
//
// Returns:
//   - Config: the loaded configuration
//   - error: an error if customPath cannot be read, parsed or validated
func Load(customPath string, logger *log.Logger) (Config, error) {
	if logger == nil {
		logger = log.Default()
	}

	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(), filepath.Join("configs", fileName)} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := loadFile(path)
		if err == nil {
			err = cfg.Validate()
		}
		if err != nil {
			logger.Warn("skipping config file", "path", path, "err", err)
			continue
		}
		logger.Debug("config loaded", "path", path)
		return cfg, nil
	}

	// Use embedded default YAML
	return Default(), nil
}

// Parse decodes a YAML document on top of the defaults.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Config: the decoded configuration
//   - error: an error if the document is malformed
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".oxy-rts", "config.yaml")
}
