package resource

import (
	apiequality "k8s.io/apimachinery/pkg/api/equality"
)

// Equal reports whether two resources carry the same user-specified
// configuration. Only the spec payload and user-set labels and annotations
// are compared; server-assigned metadata (resource version, UID, creation
// timestamp) and status are never part of the comparison, so a freshly
// parsed manifest compares equal to the live object it produced.
func Equal(a, b Resource) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.GetKind() != b.GetKind() {
		return false
	}
	if !mapsEqual(a.GetLabels(), b.GetLabels()) {
		return false
	}
	if !mapsEqual(a.GetAnnotations(), b.GetAnnotations()) {
		return false
	}
	return apiequality.Semantic.DeepEqual(a.userSpec(), b.userSpec())
}

// mapsEqual treats nil and empty maps as equivalent; the server normalizes
// absent label sets to empty ones.
func mapsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}
