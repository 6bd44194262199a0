package utils

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealCmdRunner_Run(t *testing.T) {
	runner := &RealCmdRunner{}

	stdout, stderr, err := runner.Run(context.Background(), nil, "echo", "hello")

	assert.NoError(t, err)
	assert.Equal(t, "hello\n", stdout)
	assert.Equal(t, "", stderr)
}

func TestRealCmdRunner_RunWithEnv(t *testing.T) {
	runner := &RealCmdRunner{}

	stdout, _, err := runner.Run(context.Background(), []string{"TMPGUARD_PATH=/tmp/x"}, "sh", "-c", "printf %s \"$TMPGUARD_PATH\"")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/x", stdout)
}

func TestRealCmdRunner_RunFailure(t *testing.T) {
	runner := &RealCmdRunner{}

	_, stderr, err := runner.Run(context.Background(), nil, "sh", "-c", "echo oops >&2; exit 3")

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode())
	assert.Equal(t, "oops\n", stderr)
}

func TestRealCmdRunner_RunCancelled(t *testing.T) {
	runner := &RealCmdRunner{}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, _, err := runner.Run(ctx, nil, "sleep", "10")

	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}
