// Package helpers provides common CLI utilities for command handling.
//
// Key functionality:
//   - Flag handling utilities including timing detection
//   - Timer gating so commands only print timing output when requested
package helpers
