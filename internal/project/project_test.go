package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	return dir
}

func TestStaticRoot(t *testing.T) {
	root, err := StaticRoot("/srv/project").ProjectRoot()
	require.NoError(t, err)
	assert.Equal(t, "/srv/project", root)

	_, err = StaticRoot("").ProjectRoot()
	assert.ErrorIs(t, err, ErrNoProjectRoot)
}

func TestGetGitRepoRoot(t *testing.T) {
	t.Run("from nested directory", func(t *testing.T) {
		repoDir := initRepo(t)
		nested := filepath.Join(repoDir, "a", "b")
		require.NoError(t, os.MkdirAll(nested, 0o755))

		root, err := GitResolver{StartDir: nested}.ProjectRoot()
		require.NoError(t, err)
		assert.Equal(t, repoDir, root)
	})

	t.Run("from repository root", func(t *testing.T) {
		repoDir := initRepo(t)

		root, err := GetGitRepoRoot(repoDir)
		require.NoError(t, err)
		assert.Equal(t, repoDir, root)
	})

	t.Run("outside any repository", func(t *testing.T) {
		dir := t.TempDir()
		if _, err := GetGitRepoRoot(dir); err == nil {
			t.Skip("temporary directory is itself inside a git repository")
		}

		_, err := GitResolver{StartDir: dir}.ProjectRoot()
		assert.ErrorIs(t, err, ErrNoProjectRoot)
	})
}

func TestDirIgnored(t *testing.T) {
	tests := []struct {
		name      string
		gitignore string
		expected  bool
	}{
		{name: "directory pattern", gitignore: "tmp/\n", expected: true},
		{name: "anchored pattern", gitignore: "/tmp\n", expected: true},
		{name: "unrelated pattern", gitignore: "*.log\n", expected: false},
		{name: "no gitignore", gitignore: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repoDir := initRepo(t)
			if tt.gitignore != "" {
				require.NoError(t, os.WriteFile(filepath.Join(repoDir, ".gitignore"), []byte(tt.gitignore), 0o644))
			}

			ignored, err := DirIgnored(repoDir, "tmp")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ignored)
		})
	}
}

func TestDirIgnoredNotARepository(t *testing.T) {
	_, err := DirIgnored(t.TempDir(), "tmp")
	assert.Error(t, err)
}
