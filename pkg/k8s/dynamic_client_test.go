package k8s_test

import (
	"testing"

	"github.com/cvoctl-io/cvoctl/pkg/k8s"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewDynamicClient_ValidKubeconfig tests successful creation of dynamic client.
func TestNewDynamicClient_ValidKubeconfig(t *testing.T) {
	t.Parallel()

	kubeconfigPath := writeKubeconfig(t, testKubeconfigYAML)

	client, err := k8s.NewDynamicClient(kubeconfigPath, "")

	require.NoError(t, err)
	require.NotNil(t, client)
}

// TestNewDynamicClient_WithContext tests creation of dynamic client with explicit context.
func TestNewDynamicClient_WithContext(t *testing.T) {
	t.Parallel()

	kubeconfigPath := writeKubeconfig(t, multiContextKubeconfigYAML)

	client, err := k8s.NewDynamicClient(kubeconfigPath, "custom-context")

	require.NoError(t, err)
	require.NotNil(t, client)
}

// TestNewDynamicClient_NonExistentPath tests handling of non-existent kubeconfig path.
func TestNewDynamicClient_NonExistentPath(t *testing.T) {
	t.Parallel()

	client, err := k8s.NewDynamicClient("/nonexistent/path/to/kubeconfig", "")

	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "failed to build rest config")
}

// TestNewDynamicClient_EmptyPathUsesLoadingRules tests the standard-rules fallback.
func TestNewDynamicClient_EmptyPathUsesLoadingRules(t *testing.T) {
	kubeconfigPath := writeKubeconfig(t, testKubeconfigYAML)
	t.Setenv("KUBECONFIG", kubeconfigPath)

	client, err := k8s.NewDynamicClient("", "")

	require.NoError(t, err)
	require.NotNil(t, client)
}
