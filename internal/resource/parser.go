package resource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"

	sigsyaml "sigs.k8s.io/yaml"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ListKind is the kind tag of a manifest holding other manifests.
const ListKind = "List"

// documentSeparator matches the YAML document separator at the start of a
// line.
var documentSeparator = regexp.MustCompile(`(?m)^---\s*$`)

// Parse parses a JSON manifest into a Resource or a *List. An unknown kind
// is a validation error naming the kind.
func Parse(data []byte) (any, error) {
	var head struct {
		metav1.TypeMeta `json:",inline"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, NewValidationError(Reference{}, fmt.Sprintf("invalid manifest: %v", err), err)
	}
	if head.Kind == "" {
		return nil, NewValidationError(Reference{}, "manifest has no kind", nil)
	}

	if head.Kind == ListKind {
		return parseList(data)
	}
	return parseResource(Kind(head.Kind), data)
}

// ParseYAML parses a YAML manifest by normalizing it to JSON first. A
// multi-document stream yields a *List; a single document yields the entity
// itself.
func ParseYAML(data []byte) (any, error) {
	var entities []any
	for _, doc := range documentSeparator.Split(string(data), -1) {
		trimmed := bytes.TrimSpace([]byte(doc))
		if len(trimmed) == 0 {
			continue
		}
		jsonDoc, err := sigsyaml.YAMLToJSON(trimmed)
		if err != nil {
			return nil, NewValidationError(Reference{}, fmt.Sprintf("invalid YAML: %v", err), err)
		}
		if bytes.Equal(bytes.TrimSpace(jsonDoc), []byte("null")) {
			continue
		}
		entity, err := Parse(jsonDoc)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}

	switch len(entities) {
	case 0:
		return nil, NewValidationError(Reference{}, "no manifests found", nil)
	case 1:
		return entities[0], nil
	default:
		return NewList(entities...), nil
	}
}

func parseList(data []byte) (*List, error) {
	var raw struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, NewValidationError(Reference{}, fmt.Sprintf("invalid list manifest: %v", err), err)
	}
	list := NewList()
	for i, item := range raw.Items {
		entity, err := Parse(item)
		if err != nil {
			return nil, fmt.Errorf("list item %d: %w", i, err)
		}
		list.Append(entity)
	}
	return list, nil
}

func parseResource(kind Kind, data []byte) (Resource, error) {
	var r Resource
	switch kind {
	case KindPod:
		r = NewPod()
	case KindScaleGroup:
		r = NewScaleGroup()
	case KindService:
		r = NewService()
	case KindNamespace:
		r = NewNamespace("")
	case KindRoute:
		r = NewRoute()
	case KindBuildConfig:
		r = NewBuildConfig()
	case KindDeploymentConfig:
		r = NewDeploymentConfig()
	case KindImageStream:
		r = NewImageStream()
	case KindOAuthClient:
		r = NewOAuthClient()
	case KindTemplate:
		r = NewTemplate()
	case KindServiceAccount:
		r = NewServiceAccount()
	case KindSecret:
		r = NewSecret()
	default:
		return nil, NewValidationError(Reference{Kind: kind}, fmt.Sprintf("unknown kind %q", kind), nil)
	}

	if err := json.Unmarshal(data, r); err != nil {
		return nil, NewValidationError(Reference{Kind: kind}, fmt.Sprintf("invalid %s manifest: %v", kind, err), err)
	}
	return r, nil
}

// MarshalJSONIndent serializes an entity (a Resource or a *List) the way the
// artifact log and the render command emit it.
func MarshalJSONIndent(entity any) ([]byte, error) {
	return json.MarshalIndent(entity, "", "  ")
}
