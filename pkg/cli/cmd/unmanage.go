package cmd

import (
	"context"
	"fmt"

	"github.com/cvoctl-io/cvoctl/pkg/cli/lifecycle"
	runtime "github.com/cvoctl-io/cvoctl/pkg/di"
	"github.com/cvoctl-io/cvoctl/pkg/io/configmanager"
	"github.com/cvoctl-io/cvoctl/pkg/svc/override"
	"github.com/spf13/cobra"
)

const unmanageLongDesc = `Mark a workload as unmanaged in the cluster version overrides.

The cluster version operator stops reconciling the workload, so manual
changes and locally built replacements are no longer overwritten. Running
the command against an already-unmanaged workload is a no-op.

Examples:
  # Stop reconciliation of the console operator deployment
  cvoctl unmanage openshift-console console-operator

  # Talk to the API server directly instead of shelling out to oc
  cvoctl unmanage openshift-monitoring prometheus-operator --mode API`

// NewUnmanageCmd creates the unmanage command.
func NewUnmanageCmd(runtimeContainer *runtime.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "unmanage <namespace> <name>",
		Short:        "Mark a workload as unmanaged in the cluster version overrides",
		Long:         unmanageLongDesc,
		Args:         WorkloadArgs,
		SilenceUsage: true,
	}

	cfgManager := configmanager.NewCommandConfigManager(
		cmd,
		configmanager.OverrideFieldSelectors(),
	)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		runE := lifecycle.NewStandardRunE(
			runtimeContainer,
			cfgManager,
			NewUnmanageConfig(args[0], args[1]),
		)

		return runE(cmd, args)
	}

	return cmd
}

// NewUnmanageConfig describes the unmanage workflow for the workload.
// Exported for testing purposes.
func NewUnmanageConfig(namespace, name string) lifecycle.Config {
	return lifecycle.Config{
		TitleEmoji:      "🔓",
		TitleContent:    "Unmanage workload...",
		ActivityContent: fmt.Sprintf("marking %s/%s unmanaged", namespace, name),
		SuccessContent:  fmt.Sprintf("override for %s/%s applied", namespace, name),
		UnchangedContent: fmt.Sprintf(
			"%s/%s is already unmanaged; nothing to apply", namespace, name,
		),
		ErrorMessagePrefix: "failed to unmanage workload",
		Action: func(ctx context.Context, svc *override.Service) (override.Outcome, error) {
			return svc.Unmanage(ctx, namespace, name)
		},
	}
}
