package tempres

import (
	"errors"
	"fmt"
)

var (
	// ErrScopeViolation is returned when repository scope is requested but no
	// project root can be resolved, or a path would escape the tmp directory.
	ErrScopeViolation = errors.New("scope violation")
	// ErrInvalidRequest is returned for malformed requests.
	ErrInvalidRequest = errors.New("invalid temporary resource request")
)

// ResourceCreationError reports a filesystem failure while creating a resource.
type ResourceCreationError struct {
	Path string
	Kind Kind
	Err  error
}

func (e *ResourceCreationError) Error() string {
	return fmt.Sprintf("failed to create temporary %s [%s]: %v", e.Kind, e.Path, e.Err)
}

func (e *ResourceCreationError) Unwrap() error {
	return e.Err
}

// CleanupWarning describes a failed removal. It is logged, never returned
// from Release.
type CleanupWarning struct {
	Path string
	Err  error
}

func (w *CleanupWarning) Error() string {
	return fmt.Sprintf("failed to remove temporary resource [%s]: %v", w.Path, w.Err)
}

func (w *CleanupWarning) Unwrap() error {
	return w.Err
}
