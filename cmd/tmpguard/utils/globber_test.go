package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomGlobber_Glob(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"build-1-aa", "build-2-bb", "other-3-cc"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}

	globber := CustomGlobber{}
	matches, err := globber.Glob(filepath.Join(dir, "build-*"))

	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "build-1-aa"),
		filepath.Join(dir, "build-2-bb"),
	}, matches)
}

func TestCustomGlobber_GlobMissingDirectory(t *testing.T) {
	globber := CustomGlobber{}
	matches, err := globber.Glob(filepath.Join(t.TempDir(), "missing", "build-*"))

	assert.NoError(t, err)
	assert.Empty(t, matches)
}
