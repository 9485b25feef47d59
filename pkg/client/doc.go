// Package client provides the cluster version access clients.
//
// Two interchangeable implementations cover the ways operators reach a
// cluster:
//
//   - oc: shells out to the OpenShift CLI, matching what an operator
//     would type by hand
//   - dynamic: talks to the Kubernetes API directly through a dynamic
//     client, with no binary dependency
//
// Both expose the same fetch and apply surface, so the override service
// can run against either one.
package client
