package resource

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// List is an ordered collection of entities. An item is either a Resource or
// a nested *List; order is preserved through dispatch. Lists can end up
// containing themselves when callers assemble them programmatically, so the
// dispatcher guards against self-reference instead of recursing forever.
type List struct {
	metav1.TypeMeta `json:",inline"`

	Items []any `json:"items"`
}

// NewList creates a List holding the given items.
func NewList(items ...any) *List {
	return &List{
		TypeMeta: metav1.TypeMeta{APIVersion: APIVersion, Kind: "List"},
		Items:    items,
	}
}

// Append adds items to the end of the list.
func (l *List) Append(items ...any) {
	l.Items = append(l.Items, items...)
}

// Len returns the number of direct items, without flattening nested lists.
func (l *List) Len() int {
	return len(l.Items)
}

// Resources returns the resources of the list in order, flattening nested
// lists. Self-referential items are skipped.
func (l *List) Resources() []Resource {
	var out []Resource
	l.collect(&out, map[*List]bool{})
	return out
}

func (l *List) collect(out *[]Resource, seen map[*List]bool) {
	if seen[l] {
		return
	}
	seen[l] = true
	for _, item := range l.Items {
		switch v := item.(type) {
		case Resource:
			*out = append(*out, v)
		case *List:
			v.collect(out, seen)
		}
	}
}
