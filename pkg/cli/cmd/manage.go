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

const manageLongDesc = `Hand a workload back to the cluster version operator.

The override entries matching the workload are removed from the cluster
version, so reconciliation resumes and the operator's own manifest wins
again. Running the command against a workload without an override entry is
a no-op.

Examples:
  # Resume reconciliation of the console operator deployment
  cvoctl manage openshift-console console-operator`

// NewManageCmd creates the manage command.
func NewManageCmd(runtimeContainer *runtime.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "manage <namespace> <name>",
		Short:        "Hand a workload back to the cluster version operator",
		Long:         manageLongDesc,
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
			NewManageConfig(args[0], args[1]),
		)

		return runE(cmd, args)
	}

	return cmd
}

// NewManageConfig describes the manage workflow for the workload.
// Exported for testing purposes.
func NewManageConfig(namespace, name string) lifecycle.Config {
	return lifecycle.Config{
		TitleEmoji:      "🔒",
		TitleContent:    "Manage workload...",
		ActivityContent: fmt.Sprintf("removing override for %s/%s", namespace, name),
		SuccessContent:  fmt.Sprintf("override for %s/%s removed", namespace, name),
		UnchangedContent: fmt.Sprintf(
			"no override entry for %s/%s; nothing to apply", namespace, name,
		),
		ErrorMessagePrefix: "failed to manage workload",
		Action: func(ctx context.Context, svc *override.Service) (override.Outcome, error) {
			return svc.Manage(ctx, namespace, name)
		},
	}
}
