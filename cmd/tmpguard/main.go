package main

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/op/go-logging"
	"github.com/shini4i/tmpguard/cmd/tmpguard/command"
	"github.com/shini4i/tmpguard/internal/app"
	"github.com/shini4i/tmpguard/internal/helpers"
	"github.com/shini4i/tmpguard/internal/models"
	"github.com/shini4i/tmpguard/internal/project"
	"github.com/spf13/afero"
)

const loggerName = "tmpguard"

var (
	version = "local"
	log     = logging.MustGetLogger(loggerName)
	// Plain messages only, the level is conveyed by colors.
	format = logging.MustStringFormatter(
		`%{message}`,
	)
)

func loggingInit(level logging.Level) {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	backendFormatter := logging.NewBackendFormatter(backend, format)
	logging.SetBackend(backendFormatter)
	logging.SetLevel(level, "")
}

// loadDefaults reads the optional config file named by TMPGUARD_CONFIG or
// found at the project root.
func loadDefaults(fs afero.Fs) (models.FileConfig, error) {
	path := helpers.GetEnv("TMPGUARD_CONFIG", "")
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return models.FileConfig{}, nil
		}
		root, err := project.GetGitRepoRoot(cwd)
		if err != nil {
			return models.FileConfig{}, nil
		}
		path = filepath.Join(root, app.DefaultConfigFile)
	}

	return app.LoadFileConfig(fs, path)
}

func runApp(ctx context.Context, cfg app.Config) error {
	appInstance, err := app.New(cfg, app.Dependencies{Logger: log})
	if err != nil {
		return err
	}
	return appInstance.Run(ctx)
}

func cleanApp(ctx context.Context, cfg app.Config) error {
	appInstance, err := app.New(cfg, app.Dependencies{Logger: log})
	if err != nil {
		return err
	}

	result, err := appInstance.Clean(ctx)
	log.Infof("===> Removed %d stale temporary resources", len(result.Removed))
	return err
}

// exitCode mirrors the guarded command's exit status when it failed on its own.
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}

func main() {
	loggingInit(logging.INFO)

	defaults, err := loadDefaults(afero.NewOsFs())
	if err != nil {
		log.Fatal(err)
	}

	opts := command.Options{
		Version:       version,
		SystemTempDir: helpers.GetEnv("TMPGUARD_SYSTEM_DIR", os.TempDir()),
		Defaults:      defaults,
		RunApp:        runApp,
		CleanApp:      cleanApp,
		InitLogging: func(debug bool) {
			if debug {
				loggingInit(logging.DEBUG)
			}
		},
	}

	if err := command.Execute(context.Background(), opts, nil); err != nil {
		os.Exit(exitCode(err))
	}
}
