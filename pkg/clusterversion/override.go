package clusterversion

// ComponentOverride mirrors one entry of the ClusterVersion spec.overrides
// list. An entry with Unmanaged set tells the cluster-version operator to
// stop reconciling the referenced workload.
type ComponentOverride struct {
	Group     string `json:"group"`
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	Unmanaged bool   `json:"unmanaged"`
}

// Merge ensures the document carries an override entry matching the given
// namespace and name with unmanaged set to true. It reports whether the
// document was modified.
//
// Entries are matched on namespace and name only; group and kind are not
// consulted, so an existing entry of any kind claims the match. The first
// matching entry wins and is flipped in place, preserving all its other
// fields. When no entry matches, a new one is appended at the end of the
// list carrying the entry's group and kind.
//
// An existing entry already carrying boolean true is left untouched and the
// merge reports no modification. Any other unmanaged value, including
// absent, false, or a non-boolean, is overwritten with true.
func Merge(doc *Document, entry ComponentOverride) (bool, error) {
	overrides, err := doc.overridesSlice()
	if err != nil {
		return false, err
	}

	for _, item := range overrides {
		existing, ok := item.(map[string]any)
		if !ok {
			continue
		}

		if !matches(existing, entry.Namespace, entry.Name) {
			continue
		}

		if isUnmanaged(existing) {
			return false, nil
		}

		existing["unmanaged"] = true
		doc.setOverrides(overrides)

		return true, nil
	}

	overrides = append(overrides, map[string]any{
		"group":     entry.Group,
		"kind":      entry.Kind,
		"name":      entry.Name,
		"namespace": entry.Namespace,
		"unmanaged": true,
	})
	doc.setOverrides(overrides)

	return true, nil
}

// Remove deletes every override entry matching the given namespace and name.
// It reports whether the document was modified. Entries that are not objects
// are preserved verbatim.
func Remove(doc *Document, namespace, name string) (bool, error) {
	overrides, err := doc.overridesSlice()
	if err != nil {
		return false, err
	}

	kept := make([]any, 0, len(overrides))
	removed := false

	for _, item := range overrides {
		existing, ok := item.(map[string]any)
		if ok && matches(existing, namespace, name) {
			removed = true

			continue
		}

		kept = append(kept, item)
	}

	if !removed {
		return false, nil
	}

	doc.setOverrides(kept)

	return true, nil
}

// List returns the well-formed override entries of the document in order.
// Entries that are not objects are skipped.
func List(doc *Document) ([]ComponentOverride, error) {
	overrides, err := doc.overridesSlice()
	if err != nil {
		return nil, err
	}

	entries := make([]ComponentOverride, 0, len(overrides))

	for _, item := range overrides {
		existing, ok := item.(map[string]any)
		if !ok {
			continue
		}

		entries = append(entries, ComponentOverride{
			Group:     stringField(existing, "group"),
			Kind:      stringField(existing, "kind"),
			Name:      stringField(existing, "name"),
			Namespace: stringField(existing, "namespace"),
			Unmanaged: isUnmanaged(existing),
		})
	}

	return entries, nil
}

// matches reports whether an override entry refers to the given workload.
// Only namespace and name participate in identity.
func matches(entry map[string]any, namespace, name string) bool {
	return stringField(entry, "namespace") == namespace &&
		stringField(entry, "name") == name
}

// isUnmanaged reports whether an entry is already unmanaged. Only a boolean
// true counts; absent, false, and non-boolean values do not.
func isUnmanaged(entry map[string]any) bool {
	value, ok := entry["unmanaged"].(bool)

	return ok && value
}

func stringField(entry map[string]any, key string) string {
	value, _ := entry[key].(string)

	return value
}
