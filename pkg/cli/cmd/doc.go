// Package cmd provides the command-line interface for cvoctl.
//
// This package contains the root command and the subcommands operating on
// the cluster version override list:
//   - unmanage: stop the cluster version operator from reconciling a workload
//   - manage: hand a workload back to the cluster version operator
//   - list: show the override entries currently present on the cluster
package cmd
