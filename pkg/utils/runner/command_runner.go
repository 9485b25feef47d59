// Package runner executes external commands and captures their output.
package runner

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// CommandResult holds the output captured from a completed command.
type CommandResult struct {
	Stdout string
	Stderr string
}

// CommandRunner runs an external command with optional stdin and returns its
// captured output.
type CommandRunner interface {
	Run(ctx context.Context, input io.Reader, name string, args ...string) (CommandResult, error)
}

// ExecCommandRunner is a CommandRunner backed by os/exec. Captured output is
// mirrored to the configured writers when they are set, so callers can stream
// a command's output while still receiving the captured result.
type ExecCommandRunner struct {
	stdout io.Writer
	stderr io.Writer
}

// NewExecCommandRunner creates an ExecCommandRunner that mirrors command
// output to the given writers. Nil writers capture output without echoing it.
func NewExecCommandRunner(stdout, stderr io.Writer) *ExecCommandRunner {
	return &ExecCommandRunner{stdout: stdout, stderr: stderr}
}

// Run executes the named command and waits for it to finish. The input reader
// is connected to the command's stdin when non-nil.
func (r *ExecCommandRunner) Run(
	ctx context.Context,
	input io.Reader,
	name string,
	args ...string,
) (CommandResult, error) {
	var stdout, stderr strings.Builder

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = input
	cmd.Stdout = teeWriter(&stdout, r.stdout)
	cmd.Stderr = teeWriter(&stderr, r.stderr)

	err := cmd.Run()

	result := CommandResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		return result, fmt.Errorf("failed to run %q: %w", name, err)
	}

	return result, nil
}

func teeWriter(capture *strings.Builder, mirror io.Writer) io.Writer {
	if mirror == nil {
		return capture
	}

	return io.MultiWriter(capture, mirror)
}
