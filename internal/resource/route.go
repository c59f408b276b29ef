package resource

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Route exposes a service on an externally reachable host name.
type Route struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec RouteSpec `json:"spec"`
}

// RouteSpec defines the user-specified configuration of a route.
type RouteSpec struct {
	Host string      `json:"host,omitempty"`
	Path string      `json:"path,omitempty"`
	To   RouteTarget `json:"to"`
	TLS  *RouteTLS   `json:"tls,omitempty"`
}

// RouteTarget names the service the route forwards to.
type RouteTarget struct {
	Kind string `json:"kind,omitempty"`
	Name string `json:"name"`
}

// RouteTLS configures TLS termination for a route.
type RouteTLS struct {
	Termination string `json:"termination"`
}

// NewRoute creates a Route with its type metadata populated.
func NewRoute() *Route {
	return &Route{
		TypeMeta: metav1.TypeMeta{APIVersion: APIVersion, Kind: string(KindRoute)},
	}
}

// GetKind implements Resource.
func (r *Route) GetKind() Kind { return KindRoute }

func (r *Route) userSpec() any { return r.Spec }
