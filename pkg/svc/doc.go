// Package svc provides service layer components for cvoctl.
//
// This package contains the business logic layer that coordinates between
// the CLI commands and the underlying cluster clients.
//
// Subpackages:
//   - override: The cluster version override workflow (fetch, bootstrap,
//     merge or remove, apply) and the client factory behind it
package svc
