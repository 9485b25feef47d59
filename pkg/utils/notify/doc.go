// Package notify renders user-facing status messages for CLI operations.
//
// Messages are styled by type (error, warning, activity, success, info,
// title) with a leading symbol and terminal color. Success messages can
// carry a timer to report per-stage and total durations.
package notify
