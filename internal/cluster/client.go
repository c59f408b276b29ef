// Package cluster defines the client contract the apply engine drives, plus
// an in-memory implementation used by tests and dry runs. The real transport
// (authentication, HTTP, serialization) lives behind the Client interface.
package cluster

import (
	"context"
	"errors"

	"konverge/internal/resource"
)

// ErrNotFound signals that a resource does not exist. Absence is a normal
// reconcile outcome, not a failure; implementations must wrap this sentinel
// so callers can test for it with IsNotFound.
var ErrNotFound = errors.New("resource not found")

// IsNotFound reports whether err means the requested resource is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Client is the cluster API surface the engine consumes. Calls may block on
// network I/O; bounding individual call latency is the implementation's
// responsibility. Namespace is ignored for cluster-scoped kinds.
type Client interface {
	// Get fetches the live resource, or an ErrNotFound-wrapping error when
	// it is absent.
	Get(ctx context.Context, kind resource.Kind, namespace, name string) (resource.Resource, error)

	// Create creates the resource and returns the stored object including
	// server-assigned metadata.
	Create(ctx context.Context, namespace string, r resource.Resource) (resource.Resource, error)

	// Replace swaps the live resource for r in a single call and returns the
	// stored object.
	Replace(ctx context.Context, namespace, name string, r resource.Resource) (resource.Resource, error)

	// Delete removes the resource. Deleting an absent resource is an error.
	Delete(ctx context.Context, kind resource.Kind, namespace, name string) error

	// DeleteManagedPods removes the pods managed by the named scale group so
	// they respawn from the current template.
	DeleteManagedPods(ctx context.Context, namespace, scaleGroup string) error
}

// TemplateProcessor is an optional capability: a client that can expand
// templates server-side implements it. The engine falls back to local
// expansion when the client does not.
type TemplateProcessor interface {
	// ProcessTemplate expands the template's parameters into its objects and
	// returns the resulting list.
	ProcessTemplate(ctx context.Context, namespace string, t *resource.Template) (*resource.List, error)
}
