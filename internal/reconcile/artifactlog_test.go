package reconcile

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"konverge/internal/resource"
)

func testArtifactLog(t *testing.T) (*ArtifactLog, string) {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewArtifactLog(dir, "", logger), dir
}

func TestArtifactLog_WritesResourceAsJSON(t *testing.T) {
	log, dir := testArtifactLog(t)

	svc := testService("web", 80)
	svc.SetNamespace("apps")
	log.Record("created Service", "apps", svc)

	data, err := os.ReadFile(filepath.Join(dir, "apps", "service-web.json"))
	require.NoError(t, err)

	entity, err := resource.Parse(data)
	require.NoError(t, err)
	parsed := entity.(*resource.Service)
	assert.Equal(t, "web", parsed.GetName())
	assert.Equal(t, int32(80), parsed.Spec.Ports[0].Port)
}

func TestArtifactLog_NeverOverwrites(t *testing.T) {
	log, dir := testArtifactLog(t)

	log.Record("created Service", "apps", testService("web", 80))
	log.Record("updated Service", "apps", testService("web", 8080))
	log.Record("updated Service", "apps", testService("web", 9090))

	// Each write lands in its own file; the first is preserved as written.
	for _, name := range []string{"service-web.json", "service-web-1.json", "service-web-2.json"} {
		_, err := os.Stat(filepath.Join(dir, "apps", name))
		assert.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "apps", "service-web.json"))
	require.NoError(t, err)
	first := mustParseService(t, data)
	assert.Equal(t, int32(80), first.Spec.Ports[0].Port)
}

func mustParseService(t *testing.T, data []byte) *resource.Service {
	t.Helper()
	entity, err := resource.Parse(data)
	require.NoError(t, err)
	return entity.(*resource.Service)
}

func TestArtifactLog_ClusterScopedResourcesShareADirectory(t *testing.T) {
	log, dir := testArtifactLog(t)

	log.Record("created Namespace", "", resource.NewNamespace("apps"))

	_, err := os.Stat(filepath.Join(dir, "_cluster", "namespace-apps.json"))
	assert.NoError(t, err)
}

func TestArtifactLog_SkipsUnnamedResources(t *testing.T) {
	log, dir := testArtifactLog(t)

	log.Record("created Service", "apps", resource.NewService())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
