package v1alpha1

import (
	"fmt"
	"slices"
	"strings"
)

// EnumValuer is implemented by enum types that can enumerate their valid
// string values. The schema generator uses it to emit enum constraints.
type EnumValuer interface {
	ValidValues() []string
}

// --- Mode Types ---

// Mode defines how cvoctl talks to the cluster version resource.
type Mode string

const (
	// ModeExec shells out to the configured CLI binary (oc) for fetch and apply.
	ModeExec Mode = "Exec"
	// ModeAPI uses a Kubernetes dynamic client against the API server directly.
	ModeAPI Mode = "API"
)

// Set for Mode (pflag.Value interface).
func (m *Mode) Set(value string) error {
	for _, mode := range ValidModes() {
		if strings.EqualFold(value, string(mode)) {
			*m = mode

			return nil
		}
	}

	return fmt.Errorf(
		"%w: %s (valid options: %s, %s)",
		ErrInvalidMode,
		value,
		ModeExec,
		ModeAPI,
	)
}

// IsValid checks if the mode value is supported.
func (m *Mode) IsValid() bool {
	return slices.Contains(ValidModes(), *m)
}

// String returns the string representation of the Mode.
func (m *Mode) String() string {
	return string(*m)
}

// Type returns the type of the Mode.
func (m *Mode) Type() string {
	return "Mode"
}

// Default returns the default value for Mode (Exec).
func (m *Mode) Default() any {
	return ModeExec
}

// ValidValues returns all valid Mode values as strings.
func (m *Mode) ValidValues() []string {
	return []string{
		string(ModeExec),
		string(ModeAPI),
	}
}

// ValidModes returns the supported client modes.
func ValidModes() []Mode {
	return []Mode{ModeExec, ModeAPI}
}
