package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		TypeMeta: metav1.TypeMeta{
			Kind:       Kind,
			APIVersion: APIVersion,
		},
		Spec: NewSpec(),
	}
}

// NewSpec creates a new Spec with default values.
func NewSpec() Spec {
	return Spec{
		Connection: NewConnection(),
		Client:     NewClientSpec(),
		Override:   NewOverride(),
		Verbose:    false,
	}
}

// NewConnection creates a new Connection with default values.
func NewConnection() Connection {
	return Connection{
		Kubeconfig: "",
		Context:    "",
		Timeout:    metav1.Duration{Duration: 0},
	}
}

// NewClientSpec creates a new ClientSpec with default values.
func NewClientSpec() ClientSpec {
	return ClientSpec{
		Mode:   ModeExec,
		Binary: DefaultBinary,
	}
}

// NewOverride creates a new Override with default values.
func NewOverride() Override {
	return Override{
		Group:      DefaultOverrideGroup,
		Kind:       DefaultOverrideKind,
		Attempts:   DefaultAttempts,
		RetryDelay: metav1.Duration{Duration: DefaultRetryDelay},
	}
}
