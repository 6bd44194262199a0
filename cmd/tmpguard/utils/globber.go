package utils

import (
	"errors"
	"os"

	"github.com/mattn/go-zglob"
)

// CustomGlobber resolves glob patterns using mattn/go-zglob.
type CustomGlobber struct{}

// Glob expands pattern and returns the matching paths. A pattern whose base
// directory does not exist yields no matches rather than an error.
func (g CustomGlobber) Glob(pattern string) ([]string, error) {
	matches, err := zglob.Glob(pattern)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return matches, err
}
