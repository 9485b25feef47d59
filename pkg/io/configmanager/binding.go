package configmanager

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/cvoctl-io/cvoctl/pkg/apis/config/v1alpha1"
)

// AddFlagsFromFields registers a CLI flag for every field selector bound to
// this manager. Selectors resolving to nil or unknown fields are skipped.
func (m *ConfigManager) AddFlagsFromFields(cmd *cobra.Command) {
	for _, selector := range m.fieldSelectors {
		m.addFlagFromField(cmd, selector)
	}
}

func (m *ConfigManager) addFlagFromField(
	cmd *cobra.Command,
	selector FieldSelector[v1alpha1.Config],
) {
	fieldPtr := selector.Selector(m.Config)
	if fieldPtr == nil {
		return
	}

	flagName := m.GenerateFlagName(fieldPtr)
	if flagName == "" {
		return
	}

	shorthand := m.GenerateShorthand(flagName)
	flags := cmd.Flags()

	switch ptr := fieldPtr.(type) {
	case pflag.Value:
		flags.VarP(ptr, flagName, shorthand, selector.Description)
	case *string:
		flags.StringVarP(ptr, flagName, shorthand,
			stringDefault(selector.DefaultValue, *ptr), selector.Description)
	case *bool:
		flags.BoolVarP(ptr, flagName, shorthand,
			boolDefault(selector.DefaultValue, *ptr), selector.Description)
	case *int32:
		flags.Int32VarP(ptr, flagName, shorthand,
			int32Default(selector.DefaultValue, *ptr), selector.Description)
	case *metav1.Duration:
		flags.DurationVarP(&ptr.Duration, flagName, shorthand,
			durationDefault(selector.DefaultValue, ptr.Duration), selector.Description)
	}
}

// GenerateFlagName returns the CLI flag name for a pointer into the managed
// config, or an empty string for unknown fields.
func (m *ConfigManager) GenerateFlagName(fieldPtr any) string {
	for _, entry := range m.flagRegistry() {
		if entry.ptr == fieldPtr {
			return entry.name
		}
	}

	return ""
}

// GenerateShorthand returns the single-letter shorthand for a flag name, or
// an empty string when the flag has none.
func (m *ConfigManager) GenerateShorthand(flagName string) string {
	switch flagName {
	case "kubeconfig":
		return "k"
	case "context":
		return "c"
	case "timeout":
		return "t"
	case "mode":
		return "m"
	case "verbose":
		return "v"
	default:
		return ""
	}
}

type flagRegistryEntry struct {
	ptr  any
	name string
}

// flagRegistry maps pointers into the managed config to their flag names.
// Names that do not derive mechanically from the field path (oc-binary,
// override-group) are pinned here.
func (m *ConfigManager) flagRegistry() []flagRegistryEntry {
	return []flagRegistryEntry{
		{&m.Config.Spec.Connection.Kubeconfig, "kubeconfig"},
		{&m.Config.Spec.Connection.Context, "context"},
		{&m.Config.Spec.Connection.Timeout, "timeout"},
		{&m.Config.Spec.Client.Mode, "mode"},
		{&m.Config.Spec.Client.Binary, "oc-binary"},
		{&m.Config.Spec.Override.Group, "override-group"},
		{&m.Config.Spec.Override.Kind, "override-kind"},
		{&m.Config.Spec.Override.Attempts, "attempts"},
		{&m.Config.Spec.Override.RetryDelay, "retry-delay"},
		{&m.Config.Spec.Verbose, "verbose"},
	}
}

func stringDefault(value any, fallback string) string {
	if typed, ok := value.(string); ok {
		return typed
	}

	return fallback
}

func boolDefault(value any, fallback bool) bool {
	if typed, ok := value.(bool); ok {
		return typed
	}

	return fallback
}

func int32Default(value any, fallback int32) int32 {
	if typed, ok := value.(int32); ok {
		return typed
	}

	return fallback
}

func durationDefault(value any, fallback time.Duration) time.Duration {
	switch typed := value.(type) {
	case metav1.Duration:
		return typed.Duration
	case time.Duration:
		return typed
	default:
		return fallback
	}
}
