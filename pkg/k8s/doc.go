// Package k8s provides Kubernetes client configuration utilities.
//
// It builds REST configs from kubeconfig files (BuildRESTConfig,
// GetRESTConfig) and creates the dynamic client backing the API client
// mode (NewDynamicClient).
package k8s
