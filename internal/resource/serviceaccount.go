package resource

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ServiceAccount is an identity pods run as.
type ServiceAccount struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	// Secrets names the secrets usable by pods running as this account.
	Secrets []string `json:"secrets,omitempty"`

	// ImagePullSecrets names the secrets used when pulling images.
	ImagePullSecrets []string `json:"imagePullSecrets,omitempty"`
}

// serviceAccountConfig bundles the user-facing parts for equality comparison.
type serviceAccountConfig struct {
	Secrets          []string
	ImagePullSecrets []string
}

// NewServiceAccount creates a ServiceAccount with its type metadata
// populated.
func NewServiceAccount() *ServiceAccount {
	return &ServiceAccount{
		TypeMeta: metav1.TypeMeta{APIVersion: APIVersion, Kind: string(KindServiceAccount)},
	}
}

// GetKind implements Resource.
func (s *ServiceAccount) GetKind() Kind { return KindServiceAccount }

func (s *ServiceAccount) userSpec() any {
	return serviceAccountConfig{Secrets: s.Secrets, ImagePullSecrets: s.ImagePullSecrets}
}
