// Package project resolves the project root that repository-scoped temporary
// resources are placed under.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// ErrNoProjectRoot is returned when no repository encloses the start directory.
var ErrNoProjectRoot = errors.New("no git repository found")

// StaticRoot is a fixed project root. The empty root means "not in a project".
type StaticRoot string

// ProjectRoot returns the fixed root.
func (s StaticRoot) ProjectRoot() (string, error) {
	if s == "" {
		return "", ErrNoProjectRoot
	}
	return string(s), nil
}

// GitResolver finds the enclosing git repository of StartDir, or of the
// working directory when StartDir is empty.
type GitResolver struct {
	StartDir string
}

// ProjectRoot walks upward from the start directory until a repository opens.
func (r GitResolver) ProjectRoot() (string, error) {
	return GetGitRepoRoot(r.StartDir)
}

// GetGitRepoRoot returns the top-level directory of the repository enclosing dir.
func GetGitRepoRoot(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current working directory: %v", err)
		}
		dir = wd
	}

	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve [%s]: %v", dir, err)
	}

	for {
		if _, err := git.PlainOpen(dir); err == nil {
			return dir, nil
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			break
		}

		dir = parentDir
	}

	return "", ErrNoProjectRoot
}

// DirIgnored reports whether the top-level directory name is excluded by the
// repository's .gitignore files and configured excludes.
func DirIgnored(root, name string) (bool, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return false, fmt.Errorf("failed to open repository: %v", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("failed to get worktree: %v", err)
	}

	patterns, err := gitignore.ReadPatterns(worktree.Filesystem, nil)
	if err != nil {
		return false, fmt.Errorf("failed to read ignore patterns: %v", err)
	}
	patterns = append(patterns, worktree.Excludes...)

	return gitignore.NewMatcher(patterns).Match([]string{name}, true), nil
}
