package tempres

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// Kind selects between a temporary file and a temporary directory.
type Kind string

const (
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindFile || k == KindDirectory
}

// Scope declares where a resource is allowed to live.
type Scope string

const (
	// ScopeRepository places resources under <project-root>/tmp.
	ScopeRepository Scope = "repository"
	// ScopeSystem places resources in the system temp area.
	ScopeSystem Scope = "system"
)

// Valid reports whether s is a known scope.
func (s Scope) Valid() bool {
	return s == ScopeRepository || s == ScopeSystem
}

// State is the stored lifecycle state of a Resource. The in-use phase is
// implicit between acquisition and release.
type State int

const (
	StateCreated State = iota
	StateReleased
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateReleased:
		return "released"
	default:
		return "unknown"
	}
}

// Request describes a resource to acquire.
type Request struct {
	Kind   Kind
	Prefix string
	// Suffix is appended verbatim after the random part, e.g. ".yaml".
	Suffix string
	Scope  Scope
	Owner  string
}

// Resource is a temporary file or directory created by a Guard. Only
// Release is meaningful on a Resource that a Guard did not return.
type Resource struct {
	Path      string
	Kind      Kind
	Scope     Scope
	Owner     string
	CreatedAt time.Time

	guard *Guard
	seq   uint64

	mu    sync.Mutex
	state State
}

// State returns the current lifecycle state.
func (r *Resource) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Release removes the resource. It is safe to call more than once. A
// Resource that was not created by a Guard has nothing to release.
func (r *Resource) Release() {
	if r == nil || r.guard == nil {
		return
	}
	r.guard.Release(r)
}

// Fs returns the filesystem the resource was created on.
func (r *Resource) Fs() afero.Fs {
	return r.guard.fs
}

// Join returns a path inside a directory resource.
func (r *Resource) Join(elem ...string) string {
	return filepath.Join(append([]string{r.Path}, elem...)...)
}

// WriteFile replaces the contents of a file resource.
func (r *Resource) WriteFile(data []byte) error {
	return afero.WriteFile(r.guard.fs, r.Path, data, filePerm)
}

// ReadFile returns the contents of a file resource.
func (r *Resource) ReadFile() ([]byte, error) {
	return afero.ReadFile(r.guard.fs, r.Path)
}
