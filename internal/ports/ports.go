//go:generate mockgen -source=ports.go -destination=../mocks/ports_mock.go -package=mocks

package ports

import "context"

// CmdRunner executes shell commands and returns captured output.
type CmdRunner interface {
	Run(ctx context.Context, env []string, cmd string, args ...string) (stdout string, stderr string, err error)
}

// Globber expands filesystem patterns into matching paths.
type Globber interface {
	Glob(pattern string) ([]string, error)
}

// RootResolver reports the root of the project the process is working in.
type RootResolver interface {
	ProjectRoot() (string, error)
}
