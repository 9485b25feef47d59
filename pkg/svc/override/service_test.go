package override_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/cvoctl-io/cvoctl/pkg/clusterversion"
	"github.com/cvoctl-io/cvoctl/pkg/svc/override"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

var (
	errFetchBoom = errors.New("fetch boom")
	errApplyBoom = errors.New("apply boom")
)

const annotatedClusterVersion = `{
  "apiVersion": "config.openshift.io/v1",
  "kind": "ClusterVersion",
  "metadata": {
    "name": "version",
    "annotations": {
      "kubectl.kubernetes.io/last-applied-configuration": "{}"
    }
  },
  "spec": {"channel": "stable-4.16"}
}`

const bareClusterVersion = `{
  "apiVersion": "config.openshift.io/v1",
  "kind": "ClusterVersion",
  "metadata": {"name": "version"},
  "spec": {"channel": "stable-4.16"}
}`

const overriddenClusterVersion = `{
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
        "group": "route.openshift.io/v1",
        "kind": "Route",
        "name": "prometheus-operator",
        "namespace": "openshift-monitoring",
        "unmanaged": false,
        "note": "placed by release tooling"
      }
    ]
  }
}`

const unannotatedOverriddenClusterVersion = `{
  "apiVersion": "config.openshift.io/v1",
  "kind": "ClusterVersion",
  "metadata": {"name": "version"},
  "spec": {
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

// fakeCluster emulates the server side of the capability surface: Fetch
// serves the stored document, applies store it back, and the last-applied
// annotation appears after an apply when annotateOnApply is set.
type fakeCluster struct {
	doc             map[string]any
	annotateOnApply bool

	fetchErr    error
	applyErr    error
	applyRawErr error

	fetchCount  int
	applyCount  int
	rawPayloads [][]byte

	lastApplied *clusterversion.Document
}

func newFakeCluster(t *testing.T, seed string, annotateOnApply bool) *fakeCluster {
	t.Helper()

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(seed), &doc))

	return &fakeCluster{doc: doc, annotateOnApply: annotateOnApply}
}

func (f *fakeCluster) Fetch(_ context.Context) (*clusterversion.Document, error) {
	f.fetchCount++

	if f.fetchErr != nil {
		return nil, f.fetchErr
	}

	data, err := json.Marshal(f.doc)
	if err != nil {
		return nil, err
	}

	return clusterversion.FromJSON(data)
}

func (f *fakeCluster) Apply(_ context.Context, doc *clusterversion.Document) error {
	f.applyCount++

	if f.applyErr != nil {
		return f.applyErr
	}

	f.lastApplied = doc
	f.doc = doc.Unstructured().Object

	if f.annotateOnApply {
		f.stampAnnotation()
	}

	return nil
}

func (f *fakeCluster) ApplyRaw(_ context.Context, data []byte) error {
	if f.applyRawErr != nil {
		return f.applyRawErr
	}

	f.rawPayloads = append(f.rawPayloads, data)

	if f.annotateOnApply {
		f.stampAnnotation()
	}

	return nil
}

func (f *fakeCluster) stampAnnotation() {
	metadata, ok := f.doc["metadata"].(map[string]any)
	if !ok {
		metadata = map[string]any{}
		f.doc["metadata"] = metadata
	}

	annotations, ok := metadata["annotations"].(map[string]any)
	if !ok {
		annotations = map[string]any{}
		metadata["annotations"] = annotations
	}

	annotations[corev1.LastAppliedConfigAnnotation] = "{}"
}

func newTestService(client override.Client) *override.Service {
	return override.NewService(client, override.Options{
		Attempts:   3,
		RetryDelay: time.Millisecond,
		Out:        io.Discard,
	})
}

func TestUnmanage_AppendsOverrideAndApplies(t *testing.T) {
	t.Parallel()

	fake := newFakeCluster(t, annotatedClusterVersion, true)
	svc := newTestService(fake)

	outcome, err := svc.Unmanage(context.Background(), "openshift-monitoring", "prometheus-operator")
	require.NoError(t, err)

	assert.True(t, outcome.Changed)
	assert.Zero(t, outcome.Bootstrapped)
	assert.Empty(t, fake.rawPayloads)
	require.Equal(t, 1, fake.applyCount)

	entries, err := clusterversion.List(fake.lastApplied)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, clusterversion.ComponentOverride{
		Group:     "apps/v1",
		Kind:      "Deployment",
		Name:      "prometheus-operator",
		Namespace: "openshift-monitoring",
		Unmanaged: true,
	}, entries[0])

	// The apply must carry the full document, not a patch.
	channel, found, err := unstructured.NestedString(
		fake.lastApplied.Unstructured().Object, "spec", "channel")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "stable-4.16", channel)
}

func TestUnmanage_IsIdempotent(t *testing.T) {
	t.Parallel()

	fake := newFakeCluster(t, annotatedClusterVersion, true)
	svc := newTestService(fake)

	first, err := svc.Unmanage(context.Background(), "openshift-monitoring", "prometheus-operator")
	require.NoError(t, err)
	require.True(t, first.Changed)

	second, err := svc.Unmanage(context.Background(), "openshift-monitoring", "prometheus-operator")
	require.NoError(t, err)

	assert.False(t, second.Changed)
	assert.Equal(t, 1, fake.applyCount, "no second apply when nothing changed")
}

func TestUnmanage_BootstrapsMissingAnnotation(t *testing.T) {
	t.Parallel()

	fake := newFakeCluster(t, bareClusterVersion, true)
	svc := newTestService(fake)

	outcome, err := svc.Unmanage(context.Background(), "openshift-monitoring", "prometheus-operator")
	require.NoError(t, err)

	assert.True(t, outcome.Changed)
	assert.Equal(t, 1, outcome.Bootstrapped)
	assert.Equal(t, 2, fake.fetchCount, "one refetch after the no-op apply")
	require.Len(t, fake.rawPayloads, 1)
	assert.JSONEq(t, bareClusterVersion, string(fake.rawPayloads[0]),
		"the no-op apply must replay the fetched document unmodified")
}

func TestUnmanage_FailsWhenAnnotationNeverAppears(t *testing.T) {
	t.Parallel()

	fake := newFakeCluster(t, bareClusterVersion, false)
	svc := newTestService(fake)

	outcome, err := svc.Unmanage(context.Background(), "openshift-monitoring", "prometheus-operator")
	require.Error(t, err)
	require.ErrorIs(t, err, override.ErrPreconditionTimeout)
	assert.Contains(t, err.Error(), "after 3 no-op applies")

	assert.Equal(t, 3, outcome.Bootstrapped)
	assert.Len(t, fake.rawPayloads, 3)
	assert.Equal(t, 4, fake.fetchCount)
	assert.Zero(t, fake.applyCount)
}

func TestUnmanage_FlipsExistingEntryInPlace(t *testing.T) {
	t.Parallel()

	fake := newFakeCluster(t, overriddenClusterVersion, true)
	svc := newTestService(fake)

	outcome, err := svc.Unmanage(context.Background(), "openshift-monitoring", "prometheus-operator")
	require.NoError(t, err)
	require.True(t, outcome.Changed)

	entries, err := clusterversion.List(fake.lastApplied)
	require.NoError(t, err)
	require.Len(t, entries, 1, "the existing entry is flipped, not duplicated")
	assert.Equal(t, "route.openshift.io/v1", entries[0].Group)
	assert.True(t, entries[0].Unmanaged)

	// Sibling fields the tool does not understand must survive the flip.
	overrides, found, err := unstructured.NestedSlice(
		fake.lastApplied.Unstructured().Object, "spec", "overrides")
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, overrides, 1)

	entry, ok := overrides[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "placed by release tooling", entry["note"])
}

func TestUnmanage_PropagatesFetchError(t *testing.T) {
	t.Parallel()

	fake := newFakeCluster(t, annotatedClusterVersion, true)
	fake.fetchErr = errFetchBoom
	svc := newTestService(fake)

	_, err := svc.Unmanage(context.Background(), "openshift-monitoring", "prometheus-operator")
	require.ErrorIs(t, err, errFetchBoom)
	assert.Zero(t, fake.applyCount)
}

func TestUnmanage_PropagatesApplyError(t *testing.T) {
	t.Parallel()

	fake := newFakeCluster(t, annotatedClusterVersion, true)
	fake.applyErr = errApplyBoom
	svc := newTestService(fake)

	outcome, err := svc.Unmanage(context.Background(), "openshift-monitoring", "prometheus-operator")
	require.ErrorIs(t, err, errApplyBoom)
	assert.False(t, outcome.Changed)
}

func TestUnmanage_ReportsBootstrapActivity(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	fake := newFakeCluster(t, bareClusterVersion, true)
	svc := override.NewService(fake, override.Options{
		Attempts:   3,
		RetryDelay: time.Millisecond,
		Out:        &out,
	})

	_, err := svc.Unmanage(context.Background(), "openshift-monitoring", "prometheus-operator")
	require.NoError(t, err)

	assert.Contains(t, out.String(),
		"► last-applied annotation missing; submitting no-op apply (attempt 1/3)")
}

func TestUnmanage_CancelledDuringRetryDelay(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fake := newFakeCluster(t, bareClusterVersion, false)
	// A delay far beyond the test runtime guarantees the cancelled context,
	// not an expired timer, wins the retry wait.
	svc := override.NewService(fake, override.Options{
		Attempts:   3,
		RetryDelay: time.Minute,
		Out:        io.Discard,
	})

	_, err := svc.Unmanage(ctx, "openshift-monitoring", "prometheus-operator")
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "bootstrap retry cancelled")
	assert.Len(t, fake.rawPayloads, 1, "cancellation lands before the second attempt")
}

func TestManage_RemovesEntryAndApplies(t *testing.T) {
	t.Parallel()

	fake := newFakeCluster(t, overriddenClusterVersion, true)
	svc := newTestService(fake)

	outcome, err := svc.Manage(context.Background(), "openshift-monitoring", "prometheus-operator")
	require.NoError(t, err)

	assert.True(t, outcome.Changed)
	require.Equal(t, 1, fake.applyCount)

	entries, err := clusterversion.List(fake.lastApplied)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestManage_IsNoOpWithoutMatch(t *testing.T) {
	t.Parallel()

	fake := newFakeCluster(t, annotatedClusterVersion, true)
	svc := newTestService(fake)

	outcome, err := svc.Manage(context.Background(), "openshift-console", "console-operator")
	require.NoError(t, err)

	assert.False(t, outcome.Changed)
	assert.Zero(t, fake.applyCount)
}

func TestManage_BootstrapsMissingAnnotation(t *testing.T) {
	t.Parallel()

	fake := newFakeCluster(t, bareClusterVersion, true)
	svc := newTestService(fake)

	outcome, err := svc.Manage(context.Background(), "openshift-monitoring", "prometheus-operator")
	require.NoError(t, err)

	assert.False(t, outcome.Changed)
	assert.Equal(t, 1, outcome.Bootstrapped)
	assert.Len(t, fake.rawPayloads, 1)
}

func TestList_ReturnsEntriesWithoutBootstrap(t *testing.T) {
	t.Parallel()

	fake := newFakeCluster(t, unannotatedOverriddenClusterVersion, false)
	svc := newTestService(fake)

	entries, err := svc.List(context.Background())
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "console-operator", entries[0].Name)
	assert.Equal(t, "openshift-console", entries[0].Namespace)
	assert.True(t, entries[0].Unmanaged)

	assert.Equal(t, 1, fake.fetchCount)
	assert.Empty(t, fake.rawPayloads, "reads must not trigger the bootstrap")
}

func TestList_PropagatesFetchError(t *testing.T) {
	t.Parallel()

	fake := newFakeCluster(t, annotatedClusterVersion, true)
	fake.fetchErr = errFetchBoom
	svc := newTestService(fake)

	_, err := svc.List(context.Background())
	require.ErrorIs(t, err, errFetchBoom)
}
