// Package lifecycle provides override command helpers.
//
// This package contains utilities for building and executing the commands
// that edit the cluster version override list (unmanage, manage) with
// consistent messaging, timing, and error handling patterns.
package lifecycle
