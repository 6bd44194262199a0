package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/codingsince1985/checksum"
	"github.com/op/go-logging"
	"github.com/shini4i/tmpguard/cmd/tmpguard/utils"
	"github.com/shini4i/tmpguard/internal/helpers"
	"github.com/shini4i/tmpguard/internal/ports"
	"github.com/shini4i/tmpguard/internal/project"
	"github.com/shini4i/tmpguard/internal/tempres"
	"github.com/spf13/afero"
)

const (
	// EnvPath carries the resource path into the guarded command.
	EnvPath = "TMPGUARD_PATH"
	// EnvKind carries the resource kind into the guarded command.
	EnvKind = "TMPGUARD_KIND"
)

// Dependencies aggregates runtime collaborators required by App.
type Dependencies struct {
	FS           afero.Fs
	CmdRunner    ports.CmdRunner
	Globber      ports.Globber
	RootResolver ports.RootResolver
	Logger       *logging.Logger
	Stdout       io.Writer
	Stderr       io.Writer
	Clock        func() time.Time
	GuardOptions []tempres.Option
}

// App runs commands inside guarded temporary resources and sweeps leftovers.
type App struct {
	cfg       Config
	fs        afero.Fs
	cmdRunner ports.CmdRunner
	globber   ports.Globber
	roots     ports.RootResolver
	logger    *logging.Logger
	stdout    io.Writer
	stderr    io.Writer
	now       func() time.Time
	guard     *tempres.Guard
}

// CleanResult lists the leftovers a sweep removed and the ones it could not.
type CleanResult struct {
	Removed []string
	Failed  []string
}

// New constructs an App using the supplied configuration and dependencies.
func New(cfg Config, deps Dependencies) (*App, error) {
	if deps.Logger == nil {
		return nil, errors.New("logger must be provided")
	}

	if deps.FS == nil {
		deps.FS = afero.NewOsFs()
	}
	if deps.CmdRunner == nil {
		deps.CmdRunner = &utils.RealCmdRunner{}
	}
	if deps.Globber == nil {
		deps.Globber = utils.CustomGlobber{}
	}
	if deps.RootResolver == nil {
		deps.RootResolver = project.GitResolver{StartDir: cfg.ProjectDir}
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}

	guardOptions := append([]tempres.Option{
		tempres.WithFs(deps.FS),
		tempres.WithLogger(deps.Logger),
		tempres.WithRootResolver(deps.RootResolver),
		tempres.WithSystemTempDir(cfg.SystemTempDir),
		tempres.WithClock(deps.Clock),
	}, deps.GuardOptions...)

	return &App{
		cfg:       cfg,
		fs:        deps.FS,
		cmdRunner: deps.CmdRunner,
		globber:   deps.Globber,
		roots:     deps.RootResolver,
		logger:    deps.Logger,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
		now:       deps.Clock,
		guard:     tempres.New(guardOptions...),
	}, nil
}

// Run executes the configured command inside a freshly acquired temporary
// resource and releases it afterwards, whatever the outcome.
func (a *App) Run(ctx context.Context) error {
	if len(a.cfg.Command) == 0 {
		return errors.New("command must be provided")
	}

	a.logger.Infof("===> Running tmpguard version [%s]", cyan(a.cfg.Version))

	if a.cfg.Scope == tempres.ScopeRepository {
		a.checkTmpIgnored()
	}

	defer a.guard.Close()

	return tempres.Do(ctx, a.guard, a.request(), a.runCommand)
}

// runCommand is the body executed while the resource is held.
func (a *App) runCommand(ctx context.Context, res *tempres.Resource) error {
	a.logger.Infof("===> Acquired temporary %s [%s]", res.Kind, cyan(res.Path))

	env := helpers.SetEnv(os.Environ(), EnvPath, res.Path)
	env = helpers.SetEnv(env, EnvKind, string(res.Kind))

	name, args := a.cfg.Command[0], a.cfg.Command[1:]
	a.logger.Debugf("▶ %s %v", name, args)

	stdout, stderr, err := a.cmdRunner.Run(ctx, env, name, args...)
	if _, writeErr := io.WriteString(a.stdout, stdout); writeErr != nil {
		a.logger.Errorf("Failed to forward command output: %s", writeErr)
	}
	if _, writeErr := io.WriteString(a.stderr, stderr); writeErr != nil {
		a.logger.Errorf("Failed to forward command errors: %s", writeErr)
	}

	if err != nil {
		if cause := context.Cause(ctx); cause != nil {
			return fmt.Errorf("command [%s] stopped: %w", name, cause)
		}
		return fmt.Errorf("command [%s] failed: %w", name, err)
	}

	if a.cfg.Checksum && res.Kind == tempres.KindFile {
		a.logChecksum(res.Path)
	}

	a.logger.Infof("===> Releasing temporary %s [%s]", res.Kind, cyan(res.Path))
	return nil
}

// Clean removes leftovers with the configured prefix whose embedded
// timestamp is older than the stale age. Names that do not follow the
// naming scheme are never touched.
func (a *App) Clean(ctx context.Context) (CleanResult, error) {
	var result CleanResult

	base, err := a.guard.BaseDir(a.cfg.Scope)
	if err != nil {
		return result, err
	}

	pattern := filepath.Join(base, a.cfg.Prefix+"-*")
	a.logger.Debugf("===> Looking for leftovers matching [%s]", cyan(pattern))

	matches, err := a.globber.Glob(pattern)
	if err != nil {
		return result, fmt.Errorf("failed to list [%s]: %w", pattern, err)
	}

	cutoff := a.now().Add(-a.cfg.StaleAfter)

	for _, match := range matches {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		parsed, ok := tempres.ParseName(filepath.Base(match))
		if !ok || parsed.Prefix != a.cfg.Prefix {
			a.logger.Debugf("Skipping foreign entry [%s]", match)
			continue
		}
		if parsed.CreatedAt.After(cutoff) {
			a.logger.Debugf("Skipping fresh entry [%s]", match)
			continue
		}

		if err := a.fs.RemoveAll(match); err != nil {
			a.logger.Warningf("Failed to remove [%s]: %s", red(match), err)
			result.Failed = append(result.Failed, match)
			continue
		}

		a.logger.Infof("▶ Removed %s", yellow(match))
		result.Removed = append(result.Removed, match)
	}

	if len(result.Removed) == 0 && len(result.Failed) == 0 {
		a.logger.Info("No stale temporary resources found.")
	}

	if len(result.Failed) > 0 {
		return result, fmt.Errorf("failed to remove %d stale temporary resources", len(result.Failed))
	}

	return result, nil
}

func (a *App) request() tempres.Request {
	return tempres.Request{
		Kind:   a.cfg.Kind,
		Prefix: a.cfg.Prefix,
		Suffix: a.cfg.Suffix,
		Scope:  a.cfg.Scope,
		Owner:  a.cfg.Owner,
	}
}

// checkTmpIgnored warns when the repository tmp directory could be committed.
func (a *App) checkTmpIgnored() {
	root, err := a.roots.ProjectRoot()
	if err != nil || root == "" {
		return
	}

	ignored, err := project.DirIgnored(root, tempres.RepoTmpDir)
	if err != nil {
		a.logger.Debugf("Could not check ignore rules for [%s]: %s", root, err)
		return
	}

	if !ignored {
		a.logger.Warningf("%s is not ignored by git, add it to .gitignore", yellow(tempres.RepoTmpDir+"/"))
	}
}

func (a *App) logChecksum(path string) {
	sum, err := checksum.SHA256sum(path)
	if err != nil {
		a.logger.Warningf("Failed to compute checksum of [%s]: %s", path, err)
		return
	}
	a.logger.Infof("▶ sha256 %s", cyan(sum))
}
