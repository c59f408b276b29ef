package resource

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Namespace partitions the cluster. The engine only ever creates namespaces:
// an existing namespace is left untouched and is never updated or deleted.
type Namespace struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Status NamespaceStatus `json:"status,omitempty"`
}

// NamespaceStatus carries server-assigned state.
type NamespaceStatus struct {
	Phase string `json:"phase,omitempty"`
}

// NewNamespace creates a Namespace resource with the given name.
func NewNamespace(name string) *Namespace {
	ns := &Namespace{
		TypeMeta: metav1.TypeMeta{APIVersion: APIVersion, Kind: string(KindNamespace)},
	}
	ns.Name = name
	return ns
}

// GetKind implements Resource.
func (n *Namespace) GetKind() Kind { return KindNamespace }

func (n *Namespace) userSpec() any { return struct{}{} }
