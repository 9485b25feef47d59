package cmd_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/cvoctl-io/cvoctl/pkg/apis/config/v1alpha1"
	"github.com/cvoctl-io/cvoctl/pkg/clusterversion"
	"github.com/cvoctl-io/cvoctl/pkg/svc/override"
	"github.com/stretchr/testify/require"
	"k8s.io/cli-runtime/pkg/genericiooptions"
)

// annotatedClusterVersionJSON is a cluster version that already carries the
// last-applied-configuration annotation and has no overrides.
const annotatedClusterVersionJSON = `{
  "apiVersion": "config.openshift.io/v1",
  "kind": "ClusterVersion",
  "metadata": {
    "name": "version",
    "annotations": {
      "kubectl.kubernetes.io/last-applied-configuration": "{}"
    }
  },
  "spec": {
    "channel": "stable-4.16"
  }
}`

// overriddenClusterVersionJSON additionally carries one unmanaged override.
const overriddenClusterVersionJSON = `{
  "apiVersion": "config.openshift.io/v1",
  "kind": "ClusterVersion",
  "metadata": {
    "name": "version",
    "annotations": {
      "kubectl.kubernetes.io/last-applied-configuration": "{}"
    }
  },
  "spec": {
    "channel": "stable-4.16",
    "overrides": [
      {
        "group": "apps/v1",
        "kind": "Deployment",
        "name": "console-operator",
        "namespace": "openshift-console",
        "unmanaged": true
      }
    ]
  }
}`

// fakeClusterClient implements override.Client against an in-memory document.
type fakeClusterClient struct {
	doc      *clusterversion.Document
	fetchErr error
	applied  []*clusterversion.Document
	raws     int
}

func newFakeClusterClient(t *testing.T, source string) *fakeClusterClient {
	t.Helper()

	doc, err := clusterversion.FromJSON([]byte(source))
	require.NoError(t, err)

	return &fakeClusterClient{doc: doc}
}

func (f *fakeClusterClient) Fetch(context.Context) (*clusterversion.Document, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}

	return f.doc, nil
}

func (f *fakeClusterClient) Apply(_ context.Context, doc *clusterversion.Document) error {
	f.applied = append(f.applied, doc)

	return nil
}

func (f *fakeClusterClient) ApplyRaw(context.Context, []byte) error {
	f.raws++

	return nil
}

// stubFactory hands out a fixed client regardless of configuration.
type stubFactory struct {
	client override.Client
	err    error
}

func (s stubFactory) Create(
	*v1alpha1.Config,
	genericiooptions.IOStreams,
) (override.Client, error) {
	return s.client, s.err
}

// newOverrideService builds a quiet service around the client for action tests.
func newOverrideService(client override.Client) *override.Service {
	return override.NewService(client, override.Options{
		Attempts:   1,
		RetryDelay: time.Millisecond,
		Out:        io.Discard,
	})
}
