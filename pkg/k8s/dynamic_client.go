package k8s

import (
	"fmt"

	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/rest"
)

// NewDynamicClient creates a Kubernetes dynamic client for the given
// kubeconfig path and context. An empty path falls back to the standard
// loading rules, so KUBECONFIG and the default kubeconfig location keep
// working. Use this when working with unstructured resources or custom
// resource types.
func NewDynamicClient(kubeconfig, context string) (dynamic.Interface, error) {
	restConfig, err := resolveRESTConfig(kubeconfig, context)
	if err != nil {
		return nil, fmt.Errorf("failed to build rest config: %w", err)
	}

	client, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}

	return client, nil
}

func resolveRESTConfig(kubeconfig, context string) (*rest.Config, error) {
	if kubeconfig == "" {
		return GetRESTConfig(context)
	}

	return BuildRESTConfig(kubeconfig, context)
}
