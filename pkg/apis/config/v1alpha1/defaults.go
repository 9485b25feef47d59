package v1alpha1

import "time"

const (
	// DefaultBinary is the default CLI binary used in Exec mode.
	DefaultBinary = "oc"
	// DefaultOverrideGroup is the group stamped onto newly appended override entries.
	DefaultOverrideGroup = "apps/v1"
	// DefaultOverrideKind is the kind stamped onto newly appended override entries.
	DefaultOverrideKind = "Deployment"
	// DefaultAttempts is the default number of fetch attempts while waiting for
	// the last-applied-configuration annotation to appear.
	DefaultAttempts int32 = 3
	// DefaultRetryDelay is the default pause between bootstrap fetch attempts.
	DefaultRetryDelay = time.Second
)
