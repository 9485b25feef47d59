// Package configmanager provides configuration management for cvoctl
// v1alpha1.Config values.
//
// It layers configuration sources in priority order: constructor defaults,
// the cvoctl.yaml config file, CVOCTL_* environment variables, and CLI flags
// bound from field selectors.
package configmanager
