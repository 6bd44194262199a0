package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/shini4i/tmpguard/internal/models"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up at the project root when no explicit path is given.
const DefaultConfigFile = ".tmpguard.yaml"

// LoadFileConfig reads CLI defaults from path. A missing file yields an empty config.
func LoadFileConfig(fs afero.Fs, path string) (models.FileConfig, error) {
	var cfg models.FileConfig

	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read [%s]: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return models.FileConfig{}, fmt.Errorf("failed to parse [%s]: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return models.FileConfig{}, fmt.Errorf("invalid [%s]: %w", path, err)
	}

	return cfg, nil
}
