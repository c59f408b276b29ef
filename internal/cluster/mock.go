package cluster

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"konverge/internal/resource"
	"konverge/internal/template"
)

// Call records one operation the mock received, in arrival order.
type Call struct {
	Op        string
	Kind      resource.Kind
	Namespace string
	Name      string
}

// String renders the call the way ordering assertions compare it.
func (c Call) String() string {
	return fmt.Sprintf("%s(%s/%s/%s)", c.Op, c.Kind, c.Namespace, c.Name)
}

// Mock is an in-memory Client for tests. It stores resources per kind and
// namespace, records every call in order, and can be told to fail specific
// operations.
type Mock struct {
	mu sync.RWMutex

	objects map[string]resource.Resource
	calls   []Call
	fail    map[string]bool

	resourceVersion int
}

// NewMock creates an empty mock cluster.
func NewMock() *Mock {
	return &Mock{
		objects: make(map[string]resource.Resource),
		fail:    make(map[string]bool),
	}
}

func key(kind resource.Kind, namespace, name string) string {
	if kind.ClusterScoped() {
		namespace = ""
	}
	return string(kind) + "|" + namespace + "|" + name
}

// Seed stores resources directly, bypassing the journal. Namespaces are taken
// from the resources themselves.
func (m *Mock) Seed(resources ...resource.Resource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range resources {
		m.resourceVersion++
		r.SetResourceVersion(fmt.Sprintf("%d", m.resourceVersion))
		m.objects[key(r.GetKind(), r.GetNamespace(), r.GetName())] = r
	}
}

// FailOn makes the named operation (Get, Create, Replace, Delete,
// DeleteManagedPods, ProcessTemplate) return an error.
func (m *Mock) FailOn(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail[op] = true
}

// Calls returns a copy of the journal.
func (m *Mock) Calls() []Call {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// MutatingCalls returns the journal without Get entries.
func (m *Mock) MutatingCalls() []Call {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Call
	for _, c := range m.calls {
		if c.Op != "Get" {
			out = append(out, c)
		}
	}
	return out
}

// CallNames returns the journal as "Op Kind Name" strings, handy for ordering
// assertions.
func (m *Mock) CallNames() []string {
	var out []string
	for _, c := range m.Calls() {
		out = append(out, fmt.Sprintf("%s %s %s", c.Op, c.Kind, c.Name))
	}
	return out
}

// Reset clears the journal but keeps the stored objects.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Stored returns the live resource, or nil when absent.
func (m *Mock) Stored(kind resource.Kind, namespace, name string) resource.Resource {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.objects[key(kind, namespace, name)]
}

func (m *Mock) record(op string, kind resource.Kind, namespace, name string) error {
	m.calls = append(m.calls, Call{Op: op, Kind: kind, Namespace: namespace, Name: name})
	if m.fail[op] {
		return fmt.Errorf("mock %s failed", strings.ToLower(op))
	}
	return nil
}

// Get implements Client.
func (m *Mock) Get(ctx context.Context, kind resource.Kind, namespace, name string) (resource.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("Get", kind, namespace, name); err != nil {
		return nil, err
	}
	r, ok := m.objects[key(kind, namespace, name)]
	if !ok {
		return nil, fmt.Errorf("%s %q: %w", kind, name, ErrNotFound)
	}
	return r, nil
}

// Create implements Client.
func (m *Mock) Create(ctx context.Context, namespace string, r resource.Resource) (resource.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("Create", r.GetKind(), namespace, r.GetName()); err != nil {
		return nil, err
	}
	k := key(r.GetKind(), namespace, r.GetName())
	if _, exists := m.objects[k]; exists {
		return nil, fmt.Errorf("%s %q already exists", r.GetKind(), r.GetName())
	}
	m.resourceVersion++
	r.SetResourceVersion(fmt.Sprintf("%d", m.resourceVersion))
	m.objects[k] = r
	return r, nil
}

// Replace implements Client.
func (m *Mock) Replace(ctx context.Context, namespace, name string, r resource.Resource) (resource.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("Replace", r.GetKind(), namespace, name); err != nil {
		return nil, err
	}
	k := key(r.GetKind(), namespace, name)
	if _, exists := m.objects[k]; !exists {
		return nil, fmt.Errorf("%s %q: %w", r.GetKind(), name, ErrNotFound)
	}
	m.resourceVersion++
	r.SetResourceVersion(fmt.Sprintf("%d", m.resourceVersion))
	m.objects[k] = r
	return r, nil
}

// Delete implements Client.
func (m *Mock) Delete(ctx context.Context, kind resource.Kind, namespace, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("Delete", kind, namespace, name); err != nil {
		return err
	}
	k := key(kind, namespace, name)
	if _, exists := m.objects[k]; !exists {
		return fmt.Errorf("%s %q: %w", kind, name, ErrNotFound)
	}
	delete(m.objects, k)
	return nil
}

// DeleteManagedPods implements Client.
func (m *Mock) DeleteManagedPods(ctx context.Context, namespace, scaleGroup string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("DeleteManagedPods", resource.KindScaleGroup, namespace, scaleGroup); err != nil {
		return err
	}
	return nil
}

// ProcessTemplate implements TemplateProcessor by expanding locally, which is
// what the real server does with the template's stored parameters.
func (m *Mock) ProcessTemplate(ctx context.Context, namespace string, t *resource.Template) (*resource.List, error) {
	m.mu.Lock()
	err := m.record("ProcessTemplate", resource.KindTemplate, namespace, t.GetName())
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return template.Process(t, template.Options{})
}
