package configmanager

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/cvoctl-io/cvoctl/pkg/apis/config/v1alpha1"
)

// FieldSelector defines a field and its metadata for configuration management.
type FieldSelector[T any] struct {
	Selector     func(*T) any // Function that returns a pointer to the field
	Description  string       // Human-readable description for CLI flags
	DefaultValue any          // Default value for the field
}

// DefaultKubeconfigFieldSelector creates a standard field selector for the
// kubeconfig path. No default value is set: an empty path defers to the
// client's own resolution (standard loading rules in API mode, oc's own
// defaults in Exec mode).
func DefaultKubeconfigFieldSelector() FieldSelector[v1alpha1.Config] {
	return FieldSelector[v1alpha1.Config]{
		Selector:    func(c *v1alpha1.Config) any { return &c.Spec.Connection.Kubeconfig },
		Description: "Path to kubeconfig file",
	}
}

// DefaultContextFieldSelector creates a standard field selector for the
// kubernetes context.
func DefaultContextFieldSelector() FieldSelector[v1alpha1.Config] {
	return FieldSelector[v1alpha1.Config]{
		Selector:    func(c *v1alpha1.Config) any { return &c.Spec.Connection.Context },
		Description: "Kubernetes context of the cluster",
	}
}

// DefaultTimeoutFieldSelector creates a standard field selector for the
// operation timeout. Zero disables the timeout.
func DefaultTimeoutFieldSelector() FieldSelector[v1alpha1.Config] {
	return FieldSelector[v1alpha1.Config]{
		Selector:    func(c *v1alpha1.Config) any { return &c.Spec.Connection.Timeout },
		Description: "Timeout for cluster version operations (0 disables the timeout)",
	}
}

// DefaultModeFieldSelector creates a standard field selector for the client
// mode.
func DefaultModeFieldSelector() FieldSelector[v1alpha1.Config] {
	return FieldSelector[v1alpha1.Config]{
		Selector: func(c *v1alpha1.Config) any { return &c.Spec.Client.Mode },
		Description: "Client mode (Exec shells out to the oc binary, " +
			"API talks to the API server directly)",
		DefaultValue: v1alpha1.ModeExec,
	}
}

// DefaultBinaryFieldSelector creates a standard field selector for the oc
// binary used in Exec mode.
func DefaultBinaryFieldSelector() FieldSelector[v1alpha1.Config] {
	return FieldSelector[v1alpha1.Config]{
		Selector:     func(c *v1alpha1.Config) any { return &c.Spec.Client.Binary },
		Description:  "Path to the oc binary used in Exec mode",
		DefaultValue: v1alpha1.DefaultBinary,
	}
}

// DefaultVerboseFieldSelector creates a standard field selector for debug
// logging.
func DefaultVerboseFieldSelector() FieldSelector[v1alpha1.Config] {
	return FieldSelector[v1alpha1.Config]{
		Selector:    func(c *v1alpha1.Config) any { return &c.Spec.Verbose },
		Description: "Enable debug logging",
	}
}

// OverrideGroupFieldSelector creates a field selector for the API group
// stamped on appended override entries.
func OverrideGroupFieldSelector() FieldSelector[v1alpha1.Config] {
	return FieldSelector[v1alpha1.Config]{
		Selector:     func(c *v1alpha1.Config) any { return &c.Spec.Override.Group },
		Description:  "API group/version stamped on appended override entries",
		DefaultValue: v1alpha1.DefaultOverrideGroup,
	}
}

// OverrideKindFieldSelector creates a field selector for the resource kind
// stamped on appended override entries.
func OverrideKindFieldSelector() FieldSelector[v1alpha1.Config] {
	return FieldSelector[v1alpha1.Config]{
		Selector:     func(c *v1alpha1.Config) any { return &c.Spec.Override.Kind },
		Description:  "Resource kind stamped on appended override entries",
		DefaultValue: v1alpha1.DefaultOverrideKind,
	}
}

// OverrideAttemptsFieldSelector creates a field selector for the bootstrap
// attempt budget.
func OverrideAttemptsFieldSelector() FieldSelector[v1alpha1.Config] {
	return FieldSelector[v1alpha1.Config]{
		Selector: func(c *v1alpha1.Config) any { return &c.Spec.Override.Attempts },
		Description: "Number of no-op applies attempted while waiting for " +
			"the last-applied-configuration annotation",
		DefaultValue: v1alpha1.DefaultAttempts,
	}
}

// OverrideRetryDelayFieldSelector creates a field selector for the delay
// between bootstrap attempts.
func OverrideRetryDelayFieldSelector() FieldSelector[v1alpha1.Config] {
	return FieldSelector[v1alpha1.Config]{
		Selector:     func(c *v1alpha1.Config) any { return &c.Spec.Override.RetryDelay },
		Description:  "Delay between bootstrap attempts",
		DefaultValue: metav1.Duration{Duration: v1alpha1.DefaultRetryDelay},
	}
}

// DefaultFieldSelectors returns the field selectors shared by every cvoctl
// command: connection, client mode, and verbosity.
func DefaultFieldSelectors() []FieldSelector[v1alpha1.Config] {
	return []FieldSelector[v1alpha1.Config]{
		DefaultKubeconfigFieldSelector(),
		DefaultContextFieldSelector(),
		DefaultTimeoutFieldSelector(),
		DefaultModeFieldSelector(),
		DefaultBinaryFieldSelector(),
		DefaultVerboseFieldSelector(),
	}
}

// OverrideFieldSelectors returns the field selectors for commands that write
// override entries (unmanage and manage).
func OverrideFieldSelectors() []FieldSelector[v1alpha1.Config] {
	return append(DefaultFieldSelectors(),
		OverrideGroupFieldSelector(),
		OverrideKindFieldSelector(),
		OverrideAttemptsFieldSelector(),
		OverrideRetryDelayFieldSelector(),
	)
}
