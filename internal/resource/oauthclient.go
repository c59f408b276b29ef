package resource

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// OAuthClient registers an OAuth client with the cluster's authorization
// server. OAuth clients are cluster-scoped and shared across namespaces, so
// the engine can be told to never touch one that already exists.
type OAuthClient struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec OAuthClientSpec `json:"spec"`
}

// OAuthClientSpec defines the user-specified configuration of an OAuth
// client.
type OAuthClientSpec struct {
	Secret       string   `json:"secret,omitempty"`
	RedirectURIs []string `json:"redirectURIs,omitempty"`
	GrantMethod  string   `json:"grantMethod,omitempty"` // auto, prompt
}

// NewOAuthClient creates an OAuthClient with its type metadata populated.
func NewOAuthClient() *OAuthClient {
	return &OAuthClient{
		TypeMeta: metav1.TypeMeta{APIVersion: APIVersion, Kind: string(KindOAuthClient)},
	}
}

// GetKind implements Resource.
func (o *OAuthClient) GetKind() Kind { return KindOAuthClient }

func (o *OAuthClient) userSpec() any { return o.Spec }
