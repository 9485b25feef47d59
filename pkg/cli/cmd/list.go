package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cvoctl-io/cvoctl/pkg/cli/lifecycle"
	"github.com/cvoctl-io/cvoctl/pkg/clusterversion"
	runtime "github.com/cvoctl-io/cvoctl/pkg/di"
	"github.com/cvoctl-io/cvoctl/pkg/io/configmanager"
	"github.com/cvoctl-io/cvoctl/pkg/svc/override"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

const outputFlag = "output"

// Output formats accepted by the list command.
const (
	OutputFormatPlain = "plain"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
)

// ErrUnsupportedOutputFormat indicates an unknown --output value.
var ErrUnsupportedOutputFormat = errors.New("unsupported output format")

const listLongDesc = `List the override entries on the cluster's ClusterVersion resource.

Reads never bootstrap the last-applied-configuration annotation; the
resource is fetched and printed as-is.

Examples:
  # Show the current overrides
  cvoctl list

  # Machine-readable output for scripting
  cvoctl list --output json`

// NewListCmd creates the list command.
func NewListCmd(runtimeContainer *runtime.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List cluster version override entries",
		Long:         listLongDesc,
		SilenceUsage: true,
	}

	cfgManager := configmanager.NewCommandConfigManager(
		cmd,
		configmanager.DefaultFieldSelectors(),
	)

	bindOutputFlag(cmd, cfgManager)

	cmd.RunE = runtime.RunEWithRuntime(
		runtimeContainer,
		func(cmd *cobra.Command, injector runtime.Injector) error {
			factory, err := runtime.ResolveClientFactory(injector)
			if err != nil {
				return err
			}

			return HandleListRunE(cmd, cfgManager, ListDeps{Factory: factory})
		},
	)

	return cmd
}

// ListDeps captures dependencies needed for the list command logic.
type ListDeps struct {
	// Factory creates the cluster version client. Replaceable for testing
	// purposes.
	Factory override.Factory
}

// HandleListRunE handles the list command.
// Exported for testing purposes.
func HandleListRunE(
	cmd *cobra.Command,
	cfgManager *configmanager.ConfigManager,
	deps ListDeps,
) error {
	_, err := cfgManager.LoadConfigSilent()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	lifecycle.ConfigureLogging(cfgManager.Config)

	client, err := deps.Factory.Create(cfgManager.Config, lifecycle.CommandStreams(cmd))
	if err != nil {
		return fmt.Errorf("failed to create cluster version client: %w", err)
	}

	// Progress output goes to stderr; stdout carries only the rendered data.
	svc := lifecycle.NewServiceFromConfig(client, cfgManager.Config, cmd.ErrOrStderr())

	ctx, cancel := lifecycle.OperationContext(cmd, cfgManager.Config)
	defer cancel()

	entries, err := svc.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list overrides: %w", err)
	}

	return renderOverrides(cmd.OutOrStdout(), cfgManager.Viper.GetString(outputFlag), entries)
}

// renderOverrides writes the entries in the requested format. An empty
// format falls back to plain output.
func renderOverrides(
	writer io.Writer,
	format string,
	entries []clusterversion.ComponentOverride,
) error {
	switch format {
	case OutputFormatPlain, "":
		renderPlainOverrides(writer, entries)

		return nil
	case OutputFormatJSON:
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("encode overrides as json: %w", err)
		}

		_, _ = fmt.Fprintln(writer, string(data))

		return nil
	case OutputFormatYAML:
		data, err := yaml.Marshal(entries)
		if err != nil {
			return fmt.Errorf("encode overrides as yaml: %w", err)
		}

		_, _ = fmt.Fprint(writer, string(data))

		return nil
	default:
		return fmt.Errorf(
			"%w: %q (valid formats: %s)",
			ErrUnsupportedOutputFormat,
			format,
			strings.Join([]string{OutputFormatPlain, OutputFormatJSON, OutputFormatYAML}, ", "),
		)
	}
}

// renderPlainOverrides prints one line per entry in list order.
func renderPlainOverrides(writer io.Writer, entries []clusterversion.ComponentOverride) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(writer, "No overrides found.")

		return
	}

	for _, entry := range entries {
		state := "managed"
		if entry.Unmanaged {
			state = "unmanaged"
		}

		_, _ = fmt.Fprintf(
			writer,
			"%s/%s: %s (%s %s)\n",
			entry.Namespace, entry.Name, state, entry.Group, entry.Kind,
		)
	}
}

// bindOutputFlag registers the output format flag and exposes it through the
// config manager's viper instance.
func bindOutputFlag(cmd *cobra.Command, cfgManager *configmanager.ConfigManager) {
	cmd.Flags().StringP(
		outputFlag, "o",
		OutputFormatPlain,
		"Output format (plain, json, yaml)",
	)

	flag := cmd.Flags().Lookup(outputFlag)
	_ = cfgManager.Viper.BindPFlag(outputFlag, flag)
}
