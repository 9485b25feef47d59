package clusterversion

import (
	"encoding/json"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

const (
	// Group is the API group of the ClusterVersion resource.
	Group = "config.openshift.io"
	// Version is the API version of the ClusterVersion resource.
	Version = "v1"
	// Resource is the plural resource name.
	Resource = "clusterversions"
	// Kind is the kind of the ClusterVersion resource.
	Kind = "ClusterVersion"
	// ListKind is the kind of the ClusterVersion list type.
	ListKind = "ClusterVersionList"
	// ResourceName is the name of the singleton ClusterVersion object.
	ResourceName = "version"
)

// GroupVersionResource identifies the clusterversions resource for dynamic clients.
func GroupVersionResource() schema.GroupVersionResource {
	return schema.GroupVersionResource{
		Group:    Group,
		Version:  Version,
		Resource: Resource,
	}
}

// GroupVersionKind identifies the ClusterVersion kind.
func GroupVersionKind() schema.GroupVersionKind {
	return schema.GroupVersionKind{
		Group:   Group,
		Version: Version,
		Kind:    Kind,
	}
}

// Document is a fetched ClusterVersion object together with the raw JSON it
// was decoded from. The raw bytes are replayed verbatim during the
// last-applied-configuration bootstrap so the server receives exactly the
// document it returned.
type Document struct {
	obj *unstructured.Unstructured
	raw []byte
}

// FromJSON decodes a ClusterVersion document from raw JSON bytes.
func FromJSON(raw []byte) (*Document, error) {
	var content map[string]any

	err := json.Unmarshal(raw, &content)
	if err != nil {
		return nil, fmt.Errorf("decode cluster version document: %w", err)
	}

	rawCopy := make([]byte, len(raw))
	copy(rawCopy, raw)

	return &Document{
		obj: &unstructured.Unstructured{Object: content},
		raw: rawCopy,
	}, nil
}

// FromUnstructured wraps an already-decoded object in a Document.
// No raw bytes are retained; Raw returns nil for such documents.
func FromUnstructured(obj *unstructured.Unstructured) *Document {
	return &Document{obj: obj}
}

// Unstructured returns the underlying object.
func (d *Document) Unstructured() *unstructured.Unstructured {
	return d.obj
}

// Raw returns the JSON bytes the document was fetched as, or nil when the
// document was constructed from an already-decoded object.
func (d *Document) Raw() []byte {
	return d.raw
}

// ToJSON serializes the current state of the document, including any
// modifications made after decoding.
func (d *Document) ToJSON() ([]byte, error) {
	data, err := json.Marshal(d.obj.Object)
	if err != nil {
		return nil, fmt.Errorf("encode cluster version document: %w", err)
	}

	return data, nil
}

// Name returns the metadata.name of the document.
func (d *Document) Name() string {
	return d.obj.GetName()
}

// HasLastAppliedAnnotation reports whether the document carries the kubectl
// last-applied-configuration annotation. The annotation must be present
// before a full-document apply, otherwise the server-side merge cannot
// detect removed fields.
func (d *Document) HasLastAppliedAnnotation() bool {
	annotations := d.obj.GetAnnotations()

	_, ok := annotations[corev1.LastAppliedConfigAnnotation]

	return ok
}

// overridesSlice returns the live spec.overrides slice, materializing the
// spec object and the overrides list when either is absent or null.
// Returns an error when an existing field has an unexpected type.
func (d *Document) overridesSlice() ([]any, error) {
	specVal, ok := d.obj.Object["spec"]
	if !ok || specVal == nil {
		specVal = map[string]any{}
		d.obj.Object["spec"] = specVal
	}

	spec, ok := specVal.(map[string]any)
	if !ok {
		return nil, ErrMalformedSpec
	}

	overridesVal, ok := spec["overrides"]
	if !ok || overridesVal == nil {
		return []any{}, nil
	}

	overrides, ok := overridesVal.([]any)
	if !ok {
		return nil, ErrMalformedOverrides
	}

	return overrides, nil
}

// setOverrides writes the overrides list back into spec.overrides.
func (d *Document) setOverrides(overrides []any) {
	spec, ok := d.obj.Object["spec"].(map[string]any)
	if !ok {
		spec = map[string]any{}
		d.obj.Object["spec"] = spec
	}

	spec["overrides"] = overrides
}
