package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ErrEmptyPositionalArg indicates a required positional argument was blank.
var ErrEmptyPositionalArg = errors.New("positional argument must not be empty")

// workloadArgNames names the positional arguments of unmanage and manage, in
// order, for error messages.
var workloadArgNames = []string{"namespace", "name"}

// WorkloadArgs validates the <namespace> <name> positional arguments shared
// by the unmanage and manage commands: exactly two, neither blank.
func WorkloadArgs(cmd *cobra.Command, args []string) error {
	err := cobra.ExactArgs(len(workloadArgNames))(cmd, args)
	if err != nil {
		return err
	}

	for i, arg := range args {
		if strings.TrimSpace(arg) == "" {
			return fmt.Errorf("%w: %s", ErrEmptyPositionalArg, workloadArgNames[i])
		}
	}

	return nil
}
