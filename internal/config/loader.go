package config

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrConfigMissing is returned when a required configuration file does not exist.
	ErrConfigMissing = errors.New("config file not found")
	// ErrConfigInvalid is returned for malformed or semantically invalid configuration.
	ErrConfigInvalid = errors.New("config file is invalid")
)

// LoadSettings reads the YAML run settings on top of DefaultSettings.
// An empty path or a missing file yields the defaults.
func LoadSettings(filePath string) (*Settings, error) {
	cfg := DefaultSettings()
	if filePath == "" {
		return cfg, nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to open settings file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("Warning: failed to close settings file: %v", closeErr)
		}
	}()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: failed to parse settings: %v", ErrConfigInvalid, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: settings validation error: %v", ErrConfigInvalid, err)
	}

	return cfg, nil
}
