// Package io provides utilities for input and output operations related to
// configuration management.
//
// Subpackages:
//   - configmanager: Configuration loading from defaults, cvoctl.yaml,
//     environment variables, and CLI flags
//
// For low-level path manipulation see the fsutil package.
package io
