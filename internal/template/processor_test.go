package template

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"konverge/internal/resource"
)

func testTemplate(objects ...string) *resource.Template {
	t := resource.NewTemplate()
	t.ObjectMeta.Name = "app"
	for _, obj := range objects {
		t.Objects = append(t.Objects, json.RawMessage(obj))
	}
	return t
}

func TestProcess_SubstitutesStringReferences(t *testing.T) {
	tpl := testTemplate(`{
		"apiVersion": "konverge/v1alpha1",
		"kind": "Pod",
		"metadata": {"name": "${APP}-runner"},
		"spec": {"containers": [{"name": "main", "image": "registry/${APP}:${TAG}"}]}
	}`)
	tpl.Parameters = []resource.TemplateParameter{
		{Name: "APP", Value: "web"},
		{Name: "TAG", Value: "v2"},
	}

	list, err := Process(tpl, Options{})
	require.NoError(t, err)
	require.Equal(t, 1, list.Len())

	pod := list.Resources()[0].(*resource.Pod)
	assert.Equal(t, "web-runner", pod.GetName())
	assert.Equal(t, "registry/web:v2", pod.Spec.Containers[0].Image)
}

func TestProcess_RawReferenceSplicesUnquoted(t *testing.T) {
	tpl := testTemplate(`{
		"apiVersion": "konverge/v1alpha1",
		"kind": "Service",
		"metadata": {"name": "web"},
		"spec": {"ports": [{"port": "${{PORT}}"}]}
	}`)
	tpl.Parameters = []resource.TemplateParameter{{Name: "PORT", Value: "8080"}}

	list, err := Process(tpl, Options{})
	require.NoError(t, err)

	svc := list.Resources()[0].(*resource.Service)
	assert.Equal(t, int32(8080), svc.Spec.Ports[0].Port)
}

func TestProcess_UndeclaredReferenceLeftIntact(t *testing.T) {
	tpl := testTemplate(`{
		"apiVersion": "konverge/v1alpha1",
		"kind": "Service",
		"metadata": {"name": "web", "labels": {"tier": "${TIER}"}}
	}`)

	list, err := Process(tpl, Options{})
	require.NoError(t, err)

	svc := list.Resources()[0]
	assert.Equal(t, "${TIER}", svc.GetLabels()["tier"])
}

func TestProcess_StrictModeFailsOnUndeclaredReference(t *testing.T) {
	tpl := testTemplate(`{
		"apiVersion": "konverge/v1alpha1",
		"kind": "Service",
		"metadata": {"name": "${MISSING}"}
	}`)

	_, err := Process(tpl, Options{FailOnMissing: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MISSING")

	re, ok := resource.AsReconcileError(err)
	require.True(t, ok)
	assert.Equal(t, resource.ErrorTypeTemplate, re.Type)
}

func TestProcess_StrictModeFailsOnEmptyValue(t *testing.T) {
	tpl := testTemplate(`{
		"apiVersion": "konverge/v1alpha1",
		"kind": "Service",
		"metadata": {"name": "${APP}"}
	}`)
	tpl.Parameters = []resource.TemplateParameter{{Name: "APP", Required: true}}

	_, err := Process(tpl, Options{FailOnMissing: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP")
}

func TestProcess_EmptyValueSubstitutedInLaxMode(t *testing.T) {
	tpl := testTemplate(`{
		"apiVersion": "konverge/v1alpha1",
		"kind": "Service",
		"metadata": {"name": "web", "labels": {"tier": "x${TIER}x"}}
	}`)
	tpl.Parameters = []resource.TemplateParameter{{Name: "TIER"}}

	list, err := Process(tpl, Options{})
	require.NoError(t, err)
	assert.Equal(t, "xx", list.Resources()[0].GetLabels()["tier"])
}

func TestProcess_MergesObjectLabels(t *testing.T) {
	tpl := testTemplate(`{
		"apiVersion": "konverge/v1alpha1",
		"kind": "Service",
		"metadata": {"name": "web", "labels": {"tier": "frontend"}}
	}`)
	tpl.ObjectLabels = map[string]string{"template": "app", "tier": "overridden"}

	list, err := Process(tpl, Options{})
	require.NoError(t, err)

	labels := list.Resources()[0].GetLabels()
	assert.Equal(t, "app", labels["template"])
	assert.Equal(t, "overridden", labels["tier"])
}

func TestProcess_UnnamedParameterRejected(t *testing.T) {
	tpl := testTemplate()
	tpl.Parameters = []resource.TemplateParameter{{Value: "orphan"}}

	_, err := Process(tpl, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no name")
}

func TestProcess_InvalidExpandedObjectRejected(t *testing.T) {
	tpl := testTemplate(`{"apiVersion": "konverge/v1alpha1", "kind": "Gadget", "metadata": {"name": "x"}}`)

	_, err := Process(tpl, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Gadget")
}
