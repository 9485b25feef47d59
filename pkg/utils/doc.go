// Package utils provides utility packages for common operations.
//
// This package contains subpackages with utility functions used across
// the cvoctl codebase:
//
//   - envvar: Environment variable placeholder expansion in config values
//   - notify: Formatted message display with symbols, colors, and timing
//   - runner: Subprocess execution with output capture
//   - timer: Execution time tracking for single and multi-stage operations
//
// These utilities are designed to be simple, focused, and reusable across
// different parts of the application.
package utils
