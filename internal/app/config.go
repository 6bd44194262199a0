package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shini4i/tmpguard/internal/tempres"
)

const (
	defaultPrefix     = "tmpguard"
	defaultStaleAfter = 24 * time.Hour
)

// Config captures runtime parameters for a guarded run or a cleanup sweep.
type Config struct {
	Scope         tempres.Scope
	Kind          tempres.Kind
	Prefix        string
	Suffix        string
	Owner         string
	Command       []string
	Checksum      bool
	StaleAfter    time.Duration
	ProjectDir    string
	SystemTempDir string
	Debug         bool
	Version       string
}

// ConfigOption mutates a Config during construction.
type ConfigOption func(*Config)

// NewConfig creates a Config with defaults and applies provided options.
// The scope has no default and must always be declared by the caller.
func NewConfig(scope tempres.Scope, opts ...ConfigOption) (Config, error) {
	if scope == "" {
		return Config{}, errors.New("scope must be provided (repository or system)")
	}

	cfg := Config{
		Scope:         scope,
		Kind:          tempres.KindFile,
		Prefix:        defaultPrefix,
		StaleAfter:    defaultStaleAfter,
		SystemTempDir: os.TempDir(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	if !cfg.Scope.Valid() {
		return Config{}, fmt.Errorf("unsupported scope %q", cfg.Scope)
	}
	if !cfg.Kind.Valid() {
		return Config{}, fmt.Errorf("unsupported kind %q", cfg.Kind)
	}
	if cfg.StaleAfter < 0 {
		return Config{}, fmt.Errorf("stale age must not be negative, got %s", cfg.StaleAfter)
	}

	return cfg, nil
}

// WithKind selects a file or directory resource.
func WithKind(kind tempres.Kind) ConfigOption {
	return func(cfg *Config) {
		if kind != "" {
			cfg.Kind = kind
		}
	}
}

// WithPrefix sets the name prefix of created resources.
func WithPrefix(prefix string) ConfigOption {
	return func(cfg *Config) {
		if prefix != "" {
			cfg.Prefix = prefix
		}
	}
}

// WithSuffix sets the name suffix of created resources, e.g. ".json".
func WithSuffix(suffix string) ConfigOption {
	return func(cfg *Config) {
		cfg.Suffix = suffix
	}
}

// WithOwner labels resources with the task that requested them.
func WithOwner(owner string) ConfigOption {
	return func(cfg *Config) {
		cfg.Owner = owner
	}
}

// WithCommand sets the command executed inside the guarded resource.
func WithCommand(command []string) ConfigOption {
	return func(cfg *Config) {
		cfg.Command = append([]string{}, command...)
	}
}

// WithChecksum toggles logging the SHA-256 of a file resource after the command.
func WithChecksum(enabled bool) ConfigOption {
	return func(cfg *Config) {
		cfg.Checksum = enabled
	}
}

// WithStaleAfter sets the age after which leftovers are swept by Clean.
// Zero sweeps every leftover regardless of age.
func WithStaleAfter(d time.Duration) ConfigOption {
	return func(cfg *Config) {
		cfg.StaleAfter = d
	}
}

// WithProjectDir sets the directory project root detection starts from.
func WithProjectDir(dir string) ConfigOption {
	return func(cfg *Config) {
		cfg.ProjectDir = dir
	}
}

// WithSystemTempDir overrides the base directory for system scope.
func WithSystemTempDir(path string) ConfigOption {
	return func(cfg *Config) {
		if path != "" {
			cfg.SystemTempDir = path
		}
	}
}

// WithDebug toggles verbose logging.
func WithDebug(enabled bool) ConfigOption {
	return func(cfg *Config) {
		cfg.Debug = enabled
	}
}

// WithVersion sets the application version used in log output.
func WithVersion(version string) ConfigOption {
	return func(cfg *Config) {
		cfg.Version = version
	}
}
