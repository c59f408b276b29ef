package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SingleResource(t *testing.T) {
	data := []byte(`{
		"apiVersion": "konverge/v1alpha1",
		"kind": "Pod",
		"metadata": {"name": "web-1", "namespace": "apps"},
		"spec": {"containers": [{"name": "main", "image": "nginx:latest"}]}
	}`)

	entity, err := Parse(data)
	require.NoError(t, err)

	pod, ok := entity.(*Pod)
	require.True(t, ok)
	assert.Equal(t, "web-1", pod.GetName())
	assert.Equal(t, "apps", pod.GetNamespace())
	assert.Equal(t, KindPod, pod.GetKind())
	assert.Equal(t, "nginx:latest", pod.Spec.Containers[0].Image)
}

func TestParse_List(t *testing.T) {
	data := []byte(`{
		"apiVersion": "konverge/v1alpha1",
		"kind": "List",
		"items": [
			{"apiVersion": "konverge/v1alpha1", "kind": "Service", "metadata": {"name": "web"}},
			{"apiVersion": "konverge/v1alpha1", "kind": "List", "items": [
				{"apiVersion": "konverge/v1alpha1", "kind": "Secret", "metadata": {"name": "tls-cert"}}
			]}
		]
	}`)

	entity, err := Parse(data)
	require.NoError(t, err)

	list, ok := entity.(*List)
	require.True(t, ok)
	assert.Equal(t, 2, list.Len())

	// Flattening preserves document order across nesting levels.
	resources := list.Resources()
	require.Len(t, resources, 2)
	assert.Equal(t, "web", resources[0].GetName())
	assert.Equal(t, KindSecret, resources[1].GetKind())
}

func TestParse_UnknownKind(t *testing.T) {
	_, err := Parse([]byte(`{"apiVersion": "konverge/v1alpha1", "kind": "Gadget", "metadata": {"name": "x"}}`))
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "Gadget")
}

func TestParse_MissingKind(t *testing.T) {
	_, err := Parse([]byte(`{"metadata": {"name": "x"}}`))
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestParseYAML_SingleDocument(t *testing.T) {
	data := []byte(`apiVersion: konverge/v1alpha1
kind: Secret
metadata:
  name: tls-cert
type: opaque
stringData:
  cert: pem-goes-here
`)

	entity, err := ParseYAML(data)
	require.NoError(t, err)

	secret, ok := entity.(*Secret)
	require.True(t, ok)
	assert.Equal(t, "tls-cert", secret.GetName())
	assert.Equal(t, "pem-goes-here", secret.StringData["cert"])
}

func TestParseYAML_MultiDocumentStream(t *testing.T) {
	data := []byte(`---
apiVersion: konverge/v1alpha1
kind: Service
metadata:
  name: web
spec:
  ports:
    - port: 80
---
# comment-only documents are skipped
---
apiVersion: konverge/v1alpha1
kind: Namespace
metadata:
  name: apps
`)

	entity, err := ParseYAML(data)
	require.NoError(t, err)

	list, ok := entity.(*List)
	require.True(t, ok)
	resources := list.Resources()
	require.Len(t, resources, 2)
	assert.Equal(t, KindService, resources[0].GetKind())
	assert.Equal(t, KindNamespace, resources[1].GetKind())
}

func TestParseYAML_EmptyInput(t *testing.T) {
	_, err := ParseYAML([]byte("---\n---\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no manifests")
}

func TestList_ResourcesSkipsSelfReference(t *testing.T) {
	svc := NewService()
	svc.ObjectMeta.Name = "web"

	list := NewList(svc)
	list.Append(list)

	resources := list.Resources()
	require.Len(t, resources, 1)
	assert.Equal(t, "web", resources[0].GetName())
}
