package utils

import (
	"bytes"
	"context"
	"os/exec"
)

// RealCmdRunner executes commands using the operating system.
type RealCmdRunner struct{}

// Run executes cmd with args and env, capturing stdout and stderr. The
// process is killed when ctx is cancelled.
func (r *RealCmdRunner) Run(ctx context.Context, env []string, cmd string, args ...string) (string, string, error) {
	command := exec.CommandContext(ctx, cmd, args...)
	command.Env = env

	var stdoutBuffer, stderrBuffer bytes.Buffer
	command.Stdout = &stdoutBuffer
	command.Stderr = &stderrBuffer

	err := command.Run()

	return stdoutBuffer.String(), stderrBuffer.String(), err
}
