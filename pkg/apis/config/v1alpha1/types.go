package v1alpha1

import metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

const (
	// Group is the API group for cvoctl.
	Group = "cvoctl.io"
	// Version is the API version for cvoctl.
	Version = "v1alpha1"
	// Kind is the kind for cvoctl configurations.
	Kind = "Config"
	// APIVersion is the full API version for cvoctl.
	APIVersion = Group + "/" + Version
)

// --- Core Types ---

// Config represents a cvoctl configuration including API metadata and tool settings.
// It contains TypeMeta for API versioning information and Spec for the tool specification.
type Config struct {
	metav1.TypeMeta `json:",inline" mapstructure:",squash"`

	Spec Spec `json:"spec,omitzero" mapstructure:"spec,omitempty"`
}

// Spec defines the desired behavior of cvoctl.
type Spec struct {
	Connection Connection `json:"connection,omitzero"`
	Client     ClientSpec `json:"client,omitzero"`
	Override   Override   `json:"override,omitzero"`
	Verbose    bool       `json:"verbose,omitzero"`
}

// Connection defines how cvoctl reaches the cluster. An empty Kubeconfig
// leaves path resolution to the client: the standard loading rules in API
// mode, the CLI's own defaults in Exec mode.
type Connection struct {
	Kubeconfig string          `json:"kubeconfig,omitzero"`
	Context    string          `json:"context,omitzero"`
	Timeout    metav1.Duration `json:"timeout,omitzero"`
}

// ClientSpec defines which transport performs fetch and apply operations
// against the cluster version resource.
type ClientSpec struct {
	Mode   Mode   `             json:"mode,omitzero"`
	Binary string `default:"oc" json:"binary,omitzero"`
}

// Override tunes how component override entries are written into the
// cluster version. Group and Kind are stamped onto newly appended entries;
// Attempts and RetryDelay bound the last-applied-configuration bootstrap.
type Override struct {
	Group      string          `default:"apps/v1"    json:"group,omitzero"`
	Kind       string          `default:"Deployment" json:"kind,omitzero"`
	Attempts   int32           `                     json:"attempts,omitzero"`
	RetryDelay metav1.Duration `                     json:"retryDelay,omitzero"`
}
