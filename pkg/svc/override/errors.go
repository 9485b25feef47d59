package override

import "errors"

// ErrPreconditionTimeout is returned when the cluster version never gains
// the last-applied-configuration annotation within the bootstrap budget.
var ErrPreconditionTimeout = errors.New(
	"timed out waiting for the last-applied-configuration annotation",
)

// ErrUnsupportedMode is returned when the configuration names a client mode
// the factory cannot build.
var ErrUnsupportedMode = errors.New("unsupported client mode")
