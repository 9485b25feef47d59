package cmd

import (
	"fmt"

	"github.com/cvoctl-io/cvoctl/pkg/cli/helpers"
	"github.com/cvoctl-io/cvoctl/pkg/cli/ui/errorhandler"
	runtime "github.com/cvoctl-io/cvoctl/pkg/di"
	"github.com/spf13/cobra"
)

const rootLongDesc = `cvoctl edits the override list of an OpenShift cluster's ClusterVersion
resource. Marking a workload as unmanaged stops the cluster version operator
from reconciling it, so manual changes and locally built replacements are no
longer overwritten.`

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	runtimeContainer := runtime.NewRuntime()

	cmd := &cobra.Command{
		Use:          "cvoctl",
		Short:        "cvoctl edits the cluster version override list of an OpenShift cluster",
		Long:         rootLongDesc,
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.PersistentFlags().Bool(
		helpers.TimingFlagName,
		false,
		"Show per-activity timing output",
	)

	cmd.AddCommand(NewUnmanageCmd(runtimeContainer))
	cmd.AddCommand(NewManageCmd(runtimeContainer))
	cmd.AddCommand(NewListCmd(runtimeContainer))

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	err := executor.Execute(cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// handleRootRunE handles the root command.
func handleRootRunE(cmd *cobra.Command, _ []string) error {
	// The err can safely be ignored, as it can never fail at runtime.
	_ = cmd.Help()

	return nil
}
