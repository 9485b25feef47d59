// Package clusterversion models the OpenShift ClusterVersion resource and
// the spec.overrides list that marks individual workloads as unmanaged.
//
// The package deliberately works on the untyped JSON document rather than a
// typed API struct: override entries written by other tooling may carry
// fields this tool does not know about, and a merge must never drop them.
package clusterversion
