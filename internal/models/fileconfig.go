package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shini4i/tmpguard/internal/tempres"
)

var (
	UnknownKindError       = errors.New("unknown resource kind")
	UnknownScopeError      = errors.New("unknown resource scope")
	InvalidStaleAfterError = errors.New("invalid stale_after duration")
)

// FileConfig mirrors the optional .tmpguard.yaml file at the project root.
type FileConfig struct {
	Kind       string `yaml:"kind"`
	Prefix     string `yaml:"prefix"`
	Scope      string `yaml:"scope"`
	StaleAfter string `yaml:"stale_after"`
}

// Validate checks that every populated field holds a supported value.
func (c *FileConfig) Validate() error {
	if c.Kind != "" && !tempres.Kind(c.Kind).Valid() {
		return fmt.Errorf("%w: %q", UnknownKindError, c.Kind)
	}
	if c.Scope != "" && !tempres.Scope(c.Scope).Valid() {
		return fmt.Errorf("%w: %q", UnknownScopeError, c.Scope)
	}
	if _, err := c.StaleAfterDuration(); err != nil {
		return err
	}
	return nil
}

// StaleAfterDuration parses StaleAfter, returning zero when it is unset.
func (c *FileConfig) StaleAfterDuration() (time.Duration, error) {
	if c.StaleAfter == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(c.StaleAfter)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %q", InvalidStaleAfterError, c.StaleAfter)
	}

	return d, nil
}
