package bundle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"konverge/internal/resource"
)

func writeBundle(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestLoad_RendersAndParsesTemplates(t *testing.T) {
	dir := writeBundle(t, map[string]string{
		"Bundle.yaml": "name: webapp\nversion: 1.2.0\n",
		"values.yaml": "image: nginx\ntag: latest\nreplicas: 3\n",
		"templates/scalegroup.yaml": `apiVersion: konverge/v1alpha1
kind: ScaleGroup
metadata:
  name: {{ .Bundle.Name }}-workers
spec:
  replicas: {{ .Values.replicas }}
  template:
    spec:
      containers:
        - name: main
          image: {{ .Values.image }}:{{ .Values.tag }}
`,
		"templates/service.yaml": `apiVersion: konverge/v1alpha1
kind: Service
metadata:
  name: {{ .Bundle.Name | upper | lower }}
spec:
  ports:
    - port: 80
`,
	})

	b, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "webapp", b.Meta.Name)
	assert.Equal(t, "1.2.0", b.Meta.Version)

	resources := b.Resources.Resources()
	require.Len(t, resources, 2)

	// WalkDir visits files in lexical order.
	group := resources[0].(*resource.ScaleGroup)
	assert.Equal(t, "webapp-workers", group.GetName())
	assert.Equal(t, int32(3), group.Spec.Replicas)
	assert.Equal(t, "nginx:latest", group.Spec.Template.Spec.Containers[0].Image)

	svc := resources[1].(*resource.Service)
	assert.Equal(t, "webapp", svc.GetName())
}

func TestLoad_StampsStandardLabels(t *testing.T) {
	dir := writeBundle(t, map[string]string{
		"Bundle.yaml": "name: webapp\nversion: 1.2.0\n",
		"templates/service.yaml": `apiVersion: konverge/v1alpha1
kind: Service
metadata:
  name: web
  labels:
    tier: frontend
`,
	})

	b, err := Load(dir)
	require.NoError(t, err)

	labels := b.Resources.Resources()[0].GetLabels()
	assert.Equal(t, "webapp", labels[LabelBundle])
	assert.Equal(t, "1.2.0", labels[LabelVersion])
	assert.Equal(t, ManagedByValue, labels[LabelManagedBy])
	assert.Equal(t, "frontend", labels["tier"])
}

func TestLoad_WorksWithoutValues(t *testing.T) {
	dir := writeBundle(t, map[string]string{
		"Bundle.yaml": "name: minimal\nversion: 0.1.0\n",
		"templates/ns.yaml": `apiVersion: konverge/v1alpha1
kind: Namespace
metadata:
  name: minimal
`,
	})

	b, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, b.Resources.Resources(), 1)
}

func TestLoad_MissingValueFailsRendering(t *testing.T) {
	dir := writeBundle(t, map[string]string{
		"Bundle.yaml": "name: webapp\nversion: 1.0.0\n",
		"templates/service.yaml": `apiVersion: konverge/v1alpha1
kind: Service
metadata:
  name: {{ .Values.app }}
`,
	})

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service.yaml")
}

func TestLoad_RejectsUnnamedBundle(t *testing.T) {
	dir := writeBundle(t, map[string]string{
		"Bundle.yaml": "version: 1.0.0\n",
	})

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no name")
}
