// Package dynamic accesses the cluster version through the Kubernetes API.
package dynamic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cvoctl-io/cvoctl/pkg/clusterversion"
	"github.com/sirupsen/logrus"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	k8sdynamic "k8s.io/client-go/dynamic"
	"k8s.io/kubectl/pkg/util"
)

// Client accesses the cluster version document through a dynamic client,
// with no dependency on an installed CLI binary.
type Client struct {
	resource k8sdynamic.ResourceInterface
}

// NewClient creates a cluster version client on top of a dynamic client.
func NewClient(dyn k8sdynamic.Interface) *Client {
	return &Client{resource: dyn.Resource(clusterversion.GroupVersionResource())}
}

// Fetch retrieves the cluster version document from the API server.
func (c *Client) Fetch(ctx context.Context) (*clusterversion.Document, error) {
	logrus.Debug("fetching cluster version via the API")

	obj, err := c.resource.Get(ctx, clusterversion.ResourceName, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetch cluster version: %w", err)
	}

	return clusterversion.FromUnstructured(obj), nil
}

// Apply updates the cluster version, refreshing the last-applied
// configuration annotation the same way kubectl apply does.
func (c *Client) Apply(ctx context.Context, doc *clusterversion.Document) error {
	return c.update(ctx, doc.Unstructured())
}

// ApplyRaw decodes a JSON payload and submits it through the same
// annotate-and-update path, covering the bootstrap no-op apply.
func (c *Client) ApplyRaw(ctx context.Context, data []byte) error {
	var object map[string]any

	err := json.Unmarshal(data, &object)
	if err != nil {
		return fmt.Errorf("decode cluster version payload: %w", err)
	}

	return c.update(ctx, &unstructured.Unstructured{Object: object})
}

func (c *Client) update(ctx context.Context, obj *unstructured.Unstructured) error {
	logrus.Debug("applying cluster version via the API")

	err := util.CreateApplyAnnotation(obj, unstructured.UnstructuredJSONScheme)
	if err != nil {
		return fmt.Errorf("record last applied configuration: %w", err)
	}

	_, err = c.resource.Update(ctx, obj, metav1.UpdateOptions{})
	if err != nil {
		return fmt.Errorf("update cluster version: %w", err)
	}

	return nil
}
