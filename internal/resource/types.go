package resource

import (
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// APIVersion is the API version stamped on every resource konverge manages.
const APIVersion = "konverge/v1alpha1"

// Kind identifies the category of a cluster resource and determines which
// reconcile handler processes it.
type Kind string

const (
	KindPod              Kind = "Pod"
	KindScaleGroup       Kind = "ScaleGroup"
	KindService          Kind = "Service"
	KindNamespace        Kind = "Namespace"
	KindRoute            Kind = "Route"
	KindBuildConfig      Kind = "BuildConfig"
	KindDeploymentConfig Kind = "DeploymentConfig"
	KindImageStream      Kind = "ImageStream"
	KindOAuthClient      Kind = "OAuthClient"
	KindTemplate         Kind = "Template"
	KindServiceAccount   Kind = "ServiceAccount"
	KindSecret           Kind = "Secret"
)

// Kinds returns every kind the engine understands, in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindPod, KindScaleGroup, KindService, KindNamespace, KindRoute,
		KindBuildConfig, KindDeploymentConfig, KindImageStream,
		KindOAuthClient, KindTemplate, KindServiceAccount, KindSecret,
	}
}

// ClusterScoped reports whether resources of the given kind live outside any
// namespace.
func (k Kind) ClusterScoped() bool {
	return k == KindNamespace || k == KindOAuthClient
}

// Reference identifies a resource by kind, namespace and name. It is used in
// errors, outcomes and log records.
type Reference struct {
	Kind      Kind   `json:"kind"`
	Namespace string `json:"namespace,omitempty"`
	Name      string `json:"name"`
}

// String renders the reference as kind/namespace/name (or kind/name for
// cluster-scoped resources).
func (r Reference) String() string {
	if r.Namespace == "" {
		return fmt.Sprintf("%s/%s", r.Kind, r.Name)
	}
	return fmt.Sprintf("%s/%s/%s", r.Kind, r.Namespace, r.Name)
}

// RefOf builds a Reference for the given resource.
func RefOf(r Resource) Reference {
	return Reference{Kind: r.GetKind(), Namespace: r.GetNamespace(), Name: r.GetName()}
}

// Resource is the interface implemented by every concrete kind. Embedding
// metav1.ObjectMeta provides the metav1.Object accessors; the unexported
// userSpec method closes the union to this package so the kind switch in the
// engine is exhaustive.
type Resource interface {
	metav1.Object

	// GetKind returns the kind tag used for handler dispatch.
	GetKind() Kind

	// userSpec returns the user-specified portion of the resource, the only
	// part that participates in desired-vs-live equality.
	userSpec() any
}
