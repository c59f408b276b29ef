package resource

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// SecretTypeOpaque is the default secret type.
const SecretTypeOpaque = "opaque"

// Secret holds sensitive key/value data referenced by pod volumes.
type Secret struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Type string `json:"type,omitempty"`

	// Data holds the secret payload. Values are base64 encoded on the wire.
	Data map[string][]byte `json:"data,omitempty"`

	// StringData is a write-only convenience for plain-text values; it is
	// folded into Data by the server.
	StringData map[string]string `json:"stringData,omitempty"`
}

// secretConfig bundles the user-facing parts for equality comparison.
type secretConfig struct {
	Type       string
	Data       map[string][]byte
	StringData map[string]string
}

// NewSecret creates a Secret with its type metadata populated.
func NewSecret() *Secret {
	return &Secret{
		TypeMeta: metav1.TypeMeta{APIVersion: APIVersion, Kind: string(KindSecret)},
		Type:     SecretTypeOpaque,
	}
}

// GetKind implements Resource.
func (s *Secret) GetKind() Kind { return KindSecret }

func (s *Secret) userSpec() any {
	return secretConfig{Type: s.Type, Data: s.Data, StringData: s.StringData}
}
