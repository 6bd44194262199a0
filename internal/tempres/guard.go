package tempres

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/op/go-logging"
	"github.com/shini4i/tmpguard/internal/ports"
	"github.com/spf13/afero"
)

// RepoTmpDir is the directory under the project root that holds every
// repository-scoped resource.
const RepoTmpDir = "tmp"

const (
	defaultPrefix   = "tmpguard"
	defaultOwner    = "unknown"
	maxNameAttempts = 3

	filePerm   os.FileMode = 0o600
	dirPerm    os.FileMode = 0o700
	tmpDirPerm os.FileMode = 0o755
)

// Guard creates temporary resources and keeps a registry of the ones that
// have not been released yet. A Guard is safe for concurrent use.
type Guard struct {
	fs        afero.Fs
	log       *logging.Logger
	roots     ports.RootResolver
	systemDir string
	now       func() time.Time
	signals   []os.Signal

	mu   sync.Mutex
	seq  uint64
	live map[uint64]*Resource
}

// Option configures a Guard.
type Option func(*Guard)

// WithFs sets the filesystem resources are created on.
func WithFs(fs afero.Fs) Option {
	return func(g *Guard) {
		if fs != nil {
			g.fs = fs
		}
	}
}

// WithLogger overrides the logger used for debug output and cleanup warnings.
func WithLogger(log *logging.Logger) Option {
	return func(g *Guard) {
		if log != nil {
			g.log = log
		}
	}
}

// WithRootResolver supplies the project root used for repository scope.
func WithRootResolver(r ports.RootResolver) Option {
	return func(g *Guard) {
		g.roots = r
	}
}

// WithSystemTempDir overrides the base directory for system scope.
func WithSystemTempDir(dir string) Option {
	return func(g *Guard) {
		if dir != "" {
			g.systemDir = dir
		}
	}
}

// WithClock replaces the time source used for resource names.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) {
		if now != nil {
			g.now = now
		}
	}
}

// WithSignals sets the signals trapped by scoped acquisitions. Passing no
// signals disables trapping.
func WithSignals(sigs ...os.Signal) Option {
	return func(g *Guard) {
		g.signals = append([]os.Signal{}, sigs...)
	}
}

// New returns a Guard on the OS filesystem with SIGINT and SIGTERM trapped.
func New(opts ...Option) *Guard {
	g := &Guard{
		fs:        afero.NewOsFs(),
		log:       logging.MustGetLogger("tmpguard"),
		systemDir: os.TempDir(),
		now:       time.Now,
		signals:   []os.Signal{os.Interrupt, syscall.SIGTERM},
		live:      make(map[uint64]*Resource),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Acquire creates a resource described by req. Validation and scope checks
// happen before any filesystem mutation.
func (g *Guard) Acquire(ctx context.Context, req Request) (*Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req, err := normalizeRequest(req)
	if err != nil {
		return nil, err
	}

	base, err := g.BaseDir(req.Scope)
	if err != nil {
		return nil, err
	}

	if err := g.fs.MkdirAll(base, tmpDirPerm); err != nil {
		return nil, &ResourceCreationError{Path: base, Kind: req.Kind, Err: err}
	}

	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		now := g.now()

		name, err := newName(req.Prefix, req.Suffix, now)
		if err != nil {
			return nil, &ResourceCreationError{Path: base, Kind: req.Kind, Err: err}
		}

		path := filepath.Join(base, name)
		if err := contained(base, path); err != nil {
			return nil, err
		}

		err = g.create(req.Kind, path)
		if errors.Is(err, fs.ErrExist) {
			g.log.Debugf("Name collision on [%s], retrying", path)
			continue
		}
		if err != nil {
			return nil, &ResourceCreationError{Path: path, Kind: req.Kind, Err: err}
		}

		return g.track(req, path, now), nil
	}

	return nil, &ResourceCreationError{
		Path: base,
		Kind: req.Kind,
		Err:  fmt.Errorf("no unused name found after %d attempts", maxNameAttempts),
	}
}

// Release removes r. Releasing an already released resource is a no-op and
// removal failures are only logged.
func (g *Guard) Release(r *Resource) {
	if r == nil {
		return
	}
	if r.guard != nil && r.guard != g {
		r.guard.Release(r)
		return
	}

	if warning := g.release(r); warning != nil {
		g.log.Warningf("%s", warning)
	}
}

// Live returns the resources that have not been released, oldest first.
func (g *Guard) Live() []*Resource {
	g.mu.Lock()
	defer g.mu.Unlock()

	resources := make([]*Resource, 0, len(g.live))
	for _, r := range g.live {
		resources = append(resources, r)
	}
	sort.Slice(resources, func(i, j int) bool {
		return resources[i].seq < resources[j].seq
	})

	return resources
}

// Close releases every live resource, most recently created first.
func (g *Guard) Close() {
	live := g.Live()
	for i := len(live) - 1; i >= 0; i-- {
		g.Release(live[i])
	}
}

func (g *Guard) release(r *Resource) *CleanupWarning {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateReleased {
		return nil
	}
	r.state = StateReleased
	g.forget(r)

	var err error
	if r.Kind == KindDirectory {
		err = g.fs.RemoveAll(r.Path)
	} else {
		err = g.fs.Remove(r.Path)
	}

	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &CleanupWarning{Path: r.Path, Err: err}
	}

	g.log.Debugf("Released temporary %s [%s]", r.Kind, r.Path)
	return nil
}

func (g *Guard) create(kind Kind, path string) error {
	if kind == KindDirectory {
		return g.fs.Mkdir(path, dirPerm)
	}

	f, err := g.fs.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		_ = g.fs.Remove(path)
		return err
	}

	return nil
}

func (g *Guard) track(req Request, path string, now time.Time) *Resource {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.seq++
	r := &Resource{
		Path:      path,
		Kind:      req.Kind,
		Scope:     req.Scope,
		Owner:     req.Owner,
		CreatedAt: now,
		guard:     g,
		seq:       g.seq,
		state:     StateCreated,
	}
	g.live[r.seq] = r

	g.log.Debugf("Created temporary %s [%s] for [%s]", r.Kind, r.Path, r.Owner)

	return r
}

func (g *Guard) forget(r *Resource) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.live, r.seq)
}

// BaseDir returns the absolute directory resources of the given scope are
// created in. It does not touch the filesystem.
func (g *Guard) BaseDir(scope Scope) (string, error) {
	var base string

	switch scope {
	case ScopeRepository:
		if g.roots == nil {
			return "", fmt.Errorf("%w: repository scope requested without a project root", ErrScopeViolation)
		}
		root, err := g.roots.ProjectRoot()
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrScopeViolation, err)
		}
		if root == "" {
			return "", fmt.Errorf("%w: repository scope requested without a project root", ErrScopeViolation)
		}
		base = filepath.Join(root, RepoTmpDir)
	case ScopeSystem:
		base = g.systemDir
	default:
		return "", fmt.Errorf("%w: unknown scope %q", ErrInvalidRequest, scope)
	}

	abs, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("failed to resolve [%s]: %w", base, err)
	}

	return abs, nil
}

func normalizeRequest(req Request) (Request, error) {
	if !req.Kind.Valid() {
		return req, fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, req.Kind)
	}
	if !req.Scope.Valid() {
		return req, fmt.Errorf("%w: unknown scope %q", ErrInvalidRequest, req.Scope)
	}
	if req.Prefix == "" {
		req.Prefix = defaultPrefix
	}
	if req.Owner == "" {
		req.Owner = defaultOwner
	}
	if err := validateNamePart("prefix", req.Prefix); err != nil {
		return req, err
	}
	if err := validateNamePart("suffix", req.Suffix); err != nil {
		return req, err
	}

	return req, nil
}

// contained ensures path is a direct descendant of base.
func contained(base, path string) error {
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == "." || filepath.IsAbs(rel) || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("%w: [%s] resolves outside [%s]", ErrScopeViolation, path, base)
	}
	return nil
}
