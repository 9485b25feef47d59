// Package errorhandler wraps Cobra execution so failures surface as one
// clean message instead of Cobra's raw stderr chatter.
package errorhandler

import (
	"bytes"
	"strings"

	"github.com/spf13/cobra"
)

// Executor runs a Cobra command while intercepting its error stream.
type Executor struct {
	normalizer DefaultNormalizer
}

// NewExecutor constructs an Executor.
func NewExecutor() *Executor {
	return &Executor{normalizer: DefaultNormalizer{}}
}

// Execute runs the command with its error stream captured. On failure it
// returns a *CommandError carrying both the normalized stderr output and the
// original error, so errors.Is/errors.As still reach the cause.
func (e *Executor) Execute(cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	var errBuf bytes.Buffer

	originalErrWriter := cmd.ErrOrStderr()

	cmd.SetErr(&errBuf)
	defer cmd.SetErr(originalErrWriter)

	err := cmd.Execute()
	if err == nil {
		return nil
	}

	return &CommandError{
		message: e.normalizer.Normalize(errBuf.String()),
		cause:   err,
	}
}

// CommandError pairs normalized stderr output with the error Cobra returned.
type CommandError struct {
	message string
	cause   error
}

// Error prefers the normalized message and only appends the cause when the
// message does not already contain it, avoiding "boom: boom" duplication.
func (e *CommandError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.cause == nil:
		return e.message
	case e.message != "":
		if strings.Contains(e.message, e.cause.Error()) {
			return e.message
		}

		return e.message + ": " + e.cause.Error()
	default:
		return e.cause.Error()
	}
}

// Unwrap exposes the underlying cause for errors.Is/errors.As consumers.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// DefaultNormalizer cleans up raw Cobra stderr output for display.
type DefaultNormalizer struct{}

// Normalize trims surrounding whitespace and strips the leading "Error: "
// prefix from the first line while keeping multi-line usage hints intact.
func (DefaultNormalizer) Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	lines := strings.Split(trimmed, "\n")

	first := strings.TrimSpace(lines[0])
	if stripped, ok := strings.CutPrefix(first, "Error: "); ok {
		first = stripped
	}

	lines[0] = first

	return strings.Join(lines, "\n")
}
