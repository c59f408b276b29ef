package resource

import (
	"encoding/json"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Template is a parameterized bundle of other resources. Expanding a template
// substitutes its declared parameters into the raw objects and yields a List
// that is dispatched like any other input.
type Template struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	// Parameters declares the substitutable values referenced by Objects.
	Parameters []TemplateParameter `json:"parameters,omitempty"`

	// Objects holds the raw member resources. They stay unparsed until
	// expansion so parameter references remain intact.
	Objects []json.RawMessage `json:"objects,omitempty"`

	// ObjectLabels are merged into the labels of every expanded object.
	ObjectLabels map[string]string `json:"labels,omitempty"`
}

// TemplateParameter declares a single substitutable value.
type TemplateParameter struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Description string `json:"description,omitempty"`
	Value       string `json:"value,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

// templateConfig bundles the user-facing parts for equality comparison.
type templateConfig struct {
	Parameters   []TemplateParameter
	Objects      []json.RawMessage
	ObjectLabels map[string]string
}

// NewTemplate creates a Template with its type metadata populated.
func NewTemplate() *Template {
	return &Template{
		TypeMeta: metav1.TypeMeta{APIVersion: APIVersion, Kind: string(KindTemplate)},
	}
}

// GetKind implements Resource.
func (t *Template) GetKind() Kind { return KindTemplate }

func (t *Template) userSpec() any {
	return templateConfig{Parameters: t.Parameters, Objects: t.Objects, ObjectLabels: t.ObjectLabels}
}
