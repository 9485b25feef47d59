package cmd_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/cvoctl-io/cvoctl/pkg/cli/cmd"
	"github.com/cvoctl-io/cvoctl/pkg/di"
	"github.com/cvoctl-io/cvoctl/pkg/io/configmanager"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errFetchFailed = errors.New("fetch failed")
	errFactoryBoom = errors.New("factory boom")
)

// newListHarness builds a command and config manager wired the way NewListCmd
// wires them, with output captured in a buffer.
func newListHarness(t *testing.T) (*cobra.Command, *configmanager.ConfigManager, *bytes.Buffer) {
	t.Helper()

	listCmd := &cobra.Command{Use: "list"}
	listCmd.SetContext(context.Background())

	var out bytes.Buffer

	listCmd.SetOut(&out)
	listCmd.SetErr(io.Discard)

	cfgManager := configmanager.NewCommandConfigManager(
		listCmd,
		configmanager.DefaultFieldSelectors(),
	)

	listCmd.Flags().StringP("output", "o", cmd.OutputFormatPlain, "Output format")

	flag := listCmd.Flags().Lookup("output")
	require.NotNil(t, flag)

	err := cfgManager.Viper.BindPFlag("output", flag)
	require.NoError(t, err)

	return listCmd, cfgManager, &out
}

func TestNewListCmd(t *testing.T) {
	t.Parallel()

	listCmd := cmd.NewListCmd(di.NewRuntime())

	assert.Equal(t, "list", listCmd.Use)
	assert.NotEmpty(t, listCmd.Short)
	assert.True(t, listCmd.SilenceUsage)

	outputFlag := listCmd.Flags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, cmd.OutputFormatPlain, outputFlag.DefValue)
	assert.Equal(t, "o", outputFlag.Shorthand)

	for _, name := range []string{"kubeconfig", "context", "timeout", "mode", "oc-binary", "verbose"} {
		assert.NotNil(t, listCmd.Flags().Lookup(name), "expected flag %q", name)
	}

	// Write-only knobs stay off the read command.
	assert.Nil(t, listCmd.Flags().Lookup("override-group"))
	assert.Nil(t, listCmd.Flags().Lookup("attempts"))
}

func TestHandleListRunENoOverrides(t *testing.T) {
	t.Parallel()

	listCmd, cfgManager, out := newListHarness(t)
	client := newFakeClusterClient(t, annotatedClusterVersionJSON)

	err := cmd.HandleListRunE(listCmd, cfgManager, cmd.ListDeps{
		Factory: stubFactory{client: client},
	})
	require.NoError(t, err)

	assert.Equal(t, "No overrides found.\n", out.String())
}

func TestHandleListRunEPlainEntries(t *testing.T) {
	t.Parallel()

	listCmd, cfgManager, out := newListHarness(t)
	client := newFakeClusterClient(t, overriddenClusterVersionJSON)

	err := cmd.HandleListRunE(listCmd, cfgManager, cmd.ListDeps{
		Factory: stubFactory{client: client},
	})
	require.NoError(t, err)

	assert.Equal(t,
		"openshift-console/console-operator: unmanaged (apps/v1 Deployment)\n",
		out.String())
}

func TestHandleListRunEJSONOutput(t *testing.T) {
	t.Parallel()

	listCmd, cfgManager, out := newListHarness(t)
	require.NoError(t, listCmd.Flags().Set("output", "json"))

	client := newFakeClusterClient(t, overriddenClusterVersionJSON)

	err := cmd.HandleListRunE(listCmd, cfgManager, cmd.ListDeps{
		Factory: stubFactory{client: client},
	})
	require.NoError(t, err)

	assert.JSONEq(t, `[
	  {
	    "group": "apps/v1",
	    "kind": "Deployment",
	    "name": "console-operator",
	    "namespace": "openshift-console",
	    "unmanaged": true
	  }
	]`, out.String())
}

func TestHandleListRunEJSONOutputEmpty(t *testing.T) {
	t.Parallel()

	listCmd, cfgManager, out := newListHarness(t)
	require.NoError(t, listCmd.Flags().Set("output", "json"))

	client := newFakeClusterClient(t, annotatedClusterVersionJSON)

	err := cmd.HandleListRunE(listCmd, cfgManager, cmd.ListDeps{
		Factory: stubFactory{client: client},
	})
	require.NoError(t, err)

	// An empty override list renders as an empty array, never null.
	assert.JSONEq(t, `[]`, out.String())
}

func TestHandleListRunEYAMLOutput(t *testing.T) {
	t.Parallel()

	listCmd, cfgManager, out := newListHarness(t)
	require.NoError(t, listCmd.Flags().Set("output", "yaml"))

	client := newFakeClusterClient(t, overriddenClusterVersionJSON)

	err := cmd.HandleListRunE(listCmd, cfgManager, cmd.ListDeps{
		Factory: stubFactory{client: client},
	})
	require.NoError(t, err)

	expected := "- group: apps/v1\n" +
		"  kind: Deployment\n" +
		"  name: console-operator\n" +
		"  namespace: openshift-console\n" +
		"  unmanaged: true\n"
	assert.Equal(t, expected, out.String())
}

func TestHandleListRunEEmptyFormatFallsBackToPlain(t *testing.T) {
	t.Parallel()

	// No output flag bound, so the viper lookup yields an empty string.
	listCmd := &cobra.Command{Use: "list"}
	listCmd.SetContext(context.Background())

	var out bytes.Buffer

	listCmd.SetOut(&out)
	listCmd.SetErr(io.Discard)

	cfgManager := configmanager.NewCommandConfigManager(
		listCmd,
		configmanager.DefaultFieldSelectors(),
	)
	client := newFakeClusterClient(t, annotatedClusterVersionJSON)

	err := cmd.HandleListRunE(listCmd, cfgManager, cmd.ListDeps{
		Factory: stubFactory{client: client},
	})
	require.NoError(t, err)

	assert.Equal(t, "No overrides found.\n", out.String())
}

func TestHandleListRunEUnsupportedFormat(t *testing.T) {
	t.Parallel()

	listCmd, cfgManager, _ := newListHarness(t)
	require.NoError(t, listCmd.Flags().Set("output", "table"))

	client := newFakeClusterClient(t, overriddenClusterVersionJSON)

	err := cmd.HandleListRunE(listCmd, cfgManager, cmd.ListDeps{
		Factory: stubFactory{client: client},
	})
	require.ErrorIs(t, err, cmd.ErrUnsupportedOutputFormat)
	assert.Contains(t, err.Error(), `"table"`)
}

func TestHandleListRunEFetchError(t *testing.T) {
	t.Parallel()

	listCmd, cfgManager, _ := newListHarness(t)
	client := &fakeClusterClient{fetchErr: errFetchFailed}

	err := cmd.HandleListRunE(listCmd, cfgManager, cmd.ListDeps{
		Factory: stubFactory{client: client},
	})
	require.ErrorIs(t, err, errFetchFailed)
	assert.Contains(t, err.Error(), "failed to list overrides")
}

func TestHandleListRunEFactoryError(t *testing.T) {
	t.Parallel()

	listCmd, cfgManager, _ := newListHarness(t)

	err := cmd.HandleListRunE(listCmd, cfgManager, cmd.ListDeps{
		Factory: stubFactory{err: errFactoryBoom},
	})
	require.ErrorIs(t, err, errFactoryBoom)
	assert.Contains(t, err.Error(), "failed to create cluster version client")
}
