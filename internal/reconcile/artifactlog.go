package reconcile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"konverge/internal/resource"
)

// clusterScopeDir holds artifacts of resources that have no namespace.
const clusterScopeDir = "_cluster"

// ArtifactLog persists every resource actually sent to the cluster as a JSON
// file, for audit and debugging. Existing entries are never overwritten: a
// colliding path gets a numeric suffix. Write failures are logged and
// swallowed; the apply batch never aborts over its audit trail.
type ArtifactLog struct {
	dir     string
	baseDir string
	logger  *slog.Logger
}

// NewArtifactLog creates an artifact log rooted at dir. When baseDir is
// non-empty, logged locations are reported relative to it.
func NewArtifactLog(dir, baseDir string, logger *slog.Logger) *ArtifactLog {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArtifactLog{dir: dir, baseDir: baseDir, logger: logger}
}

// Record writes the resource under <namespace>/<kind-lowercase>-<name>.json.
func (a *ArtifactLog) Record(message, namespace string, r resource.Resource) {
	if r.GetName() == "" {
		a.logger.Warn("not logging artifact for resource with no name", "kind", r.GetKind())
		return
	}

	nsDir := namespace
	if nsDir == "" {
		nsDir = clusterScopeDir
	}
	dir := filepath.Join(a.dir, nsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		a.logger.Warn("failed to create artifact directory", "dir", dir, "error", err)
		return
	}

	data, err := resource.MarshalJSONIndent(r)
	if err != nil {
		a.logger.Warn("failed to serialize artifact",
			"kind", r.GetKind(), "name", r.GetName(), "error", err)
		return
	}

	base := strings.ToLower(string(r.GetKind())) + "-" + r.GetName()
	path, err := a.writeUnique(dir, base, data)
	if err != nil {
		a.logger.Warn("failed to write artifact", "path", path, "error", err)
		return
	}

	a.logger.Info(message, "artifact", a.displayPath(path))
}

// writeUnique writes data to <dir>/<base>.json, appending -1, -2, … until a
// free path is found. Creation is exclusive so concurrent writers cannot
// clobber each other.
func (a *ArtifactLog) writeUnique(dir, base string, data []byte) (string, error) {
	path := filepath.Join(dir, base+".json")
	for idx := 1; ; idx++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			_, werr := f.Write(data)
			if cerr := f.Close(); werr == nil {
				werr = cerr
			}
			return path, werr
		}
		if !os.IsExist(err) {
			return path, err
		}
		path = filepath.Join(dir, fmt.Sprintf("%s-%d.json", base, idx))
	}
}

func (a *ArtifactLog) displayPath(path string) string {
	if a.baseDir == "" {
		return path
	}
	rel, err := filepath.Rel(a.baseDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
