package resource

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Service exposes a set of pods under a stable name and address.
type Service struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   ServiceSpec   `json:"spec"`
	Status ServiceStatus `json:"status,omitempty"`
}

// ServiceSpec defines the user-specified configuration of a service.
type ServiceSpec struct {
	Selector map[string]string `json:"selector,omitempty"`
	Ports    []ServicePort     `json:"ports,omitempty"`
	Type     string            `json:"type,omitempty"`
}

// ServicePort maps a service port to a target port on the selected pods.
type ServicePort struct {
	Name       string `json:"name,omitempty"`
	Port       int32  `json:"port"`
	TargetPort int32  `json:"targetPort,omitempty"`
	Protocol   string `json:"protocol,omitempty"`
}

// ServiceStatus carries server-assigned state, most notably the cluster IP
// allocated on creation. It never participates in equality.
type ServiceStatus struct {
	ClusterIP string `json:"clusterIP,omitempty"`
}

// NewService creates a Service with its type metadata populated.
func NewService() *Service {
	return &Service{
		TypeMeta: metav1.TypeMeta{APIVersion: APIVersion, Kind: string(KindService)},
	}
}

// GetKind implements Resource.
func (s *Service) GetKind() Kind { return KindService }

func (s *Service) userSpec() any { return s.Spec }
