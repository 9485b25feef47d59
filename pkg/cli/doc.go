// Package cli provides reusable helpers for command wiring and execution.
//
// This package is organized into subpackages for different functionality:
//
//   - cli/cmd: The cvoctl command tree (unmanage, manage, list)
//   - cli/helpers: Flag handling utilities including timing detection
//   - cli/lifecycle: Override command workflow helpers (load config, create
//     client, run the operation, report the result)
//   - cli/ui: User interface components (errorhandler)
//
// The utilities in this package follow dependency injection patterns and
// integrate with the runtime container for testability.
package cli
