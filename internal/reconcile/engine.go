package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"konverge/internal/cluster"
	"konverge/internal/resource"
)

// Config assembles an Engine.
type Config struct {
	// Client is the cluster API the engine drives. Required.
	Client cluster.Client

	// Policy governs the reconcile decisions. Zero value means everything
	// off; use DefaultPolicy for the stock behavior.
	Policy Policy

	// Logger receives the engine's structured log records. Defaults to
	// slog.Default().
	Logger *slog.Logger

	// ArtifactDir, when set, enables the artifact log: every resource sent
	// to the cluster is persisted beneath it.
	ArtifactDir string

	// BaseDir makes artifact locations in log output relative to it.
	BaseDir string
}

// ApplyOptions carries the per-invocation values of one apply batch.
type ApplyOptions struct {
	// Namespace overrides the namespace of every namespaced resource in the
	// batch. When empty, each resource's own namespace is used, falling back
	// to the policy default.
	Namespace string

	// Source is a human-readable provenance label naming where the
	// manifests came from. Used only for logging.
	Source string
}

type handler func(ctx context.Context, op *operation, r resource.Resource) error

// Engine applies desired-state manifests to a cluster, kind by kind.
type Engine struct {
	client    cluster.Client
	policy    Policy
	logger    *slog.Logger
	artifacts *ArtifactLog
	handlers  map[resource.Kind]handler
}

// operation is the mutable state of a single apply batch.
type operation struct {
	opts    ApplyOptions
	result  *Result
	visited map[*resource.List]bool
}

// New creates an Engine from cfg.
func New(cfg Config) (*Engine, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("reconcile: no cluster client configured")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{
		client: cfg.Client,
		policy: cfg.Policy,
		logger: logger,
	}
	if cfg.ArtifactDir != "" {
		e.artifacts = NewArtifactLog(cfg.ArtifactDir, cfg.BaseDir, logger)
	}

	e.handlers = map[resource.Kind]handler{
		resource.KindPod:              e.applyPod,
		resource.KindScaleGroup:       e.applyScaleGroup,
		resource.KindService:          e.applyService,
		resource.KindNamespace:        e.applyNamespace,
		resource.KindRoute:            e.applyRoute,
		resource.KindBuildConfig:      e.applyBuildConfig,
		resource.KindDeploymentConfig: e.applyDeploymentConfig,
		resource.KindImageStream:      e.applyImageStream,
		resource.KindOAuthClient:      e.applyOAuthClient,
		resource.KindTemplate:         e.applyTemplate,
		resource.KindServiceAccount:   e.applyServiceAccount,
		resource.KindSecret:           e.applySecret,
	}
	return e, nil
}

// Apply converges the cluster to the given entity, which is either a
// resource.Resource or a *resource.List (possibly nested). The returned
// Result holds one outcome per resource in processing order; the error is
// non-nil when the batch was aborted.
func (e *Engine) Apply(ctx context.Context, entity any, opts ApplyOptions) (*Result, error) {
	start := time.Now()
	op := &operation{
		opts:    opts,
		result:  &Result{Source: opts.Source},
		visited: make(map[*resource.List]bool),
	}
	err := e.apply(ctx, op, entity)
	op.result.Duration = time.Since(start)
	return op.result, err
}

// ApplyJSON parses and applies a JSON manifest.
func (e *Engine) ApplyJSON(ctx context.Context, data []byte, opts ApplyOptions) (*Result, error) {
	entity, err := resource.Parse(data)
	if err != nil {
		return &Result{Source: opts.Source}, err
	}
	return e.Apply(ctx, entity, opts)
}

// ApplyYAML parses and applies a YAML manifest via JSON normalization.
func (e *Engine) ApplyYAML(ctx context.Context, data []byte, opts ApplyOptions) (*Result, error) {
	entity, err := resource.ParseYAML(data)
	if err != nil {
		return &Result{Source: opts.Source}, err
	}
	return e.Apply(ctx, entity, opts)
}

// ApplyFile applies a manifest file, dispatching on its extension. The file
// path becomes the provenance label unless opts already carries one.
func (e *Engine) ApplyFile(ctx context.Context, path string, opts ApplyOptions) (*Result, error) {
	if opts.Source == "" {
		opts.Source = path
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return &Result{Source: opts.Source}, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return e.ApplyJSON(ctx, data, opts)
	case ".yaml", ".yml":
		return e.ApplyYAML(ctx, data, opts)
	default:
		return &Result{Source: opts.Source}, fmt.Errorf("unknown file type %q", filepath.Ext(path))
	}
}

// EnsureNamespace creates the named namespace if it does not exist yet.
func (e *Engine) EnsureNamespace(ctx context.Context, name string, opts ApplyOptions) (*Result, error) {
	return e.Apply(ctx, resource.NewNamespace(name), opts)
}

// apply flattens lists and routes resources to their kind handler. A list
// element that is (directly or transitively) the list itself is skipped with
// a warning instead of recursing forever.
func (e *Engine) apply(ctx context.Context, op *operation, entity any) error {
	switch v := entity.(type) {
	case nil:
		return nil
	case *resource.List:
		if op.visited[v] {
			e.logger.Warn("skipping self-referential list element", "source", op.opts.Source)
			return nil
		}
		op.visited[v] = true
		for _, item := range v.Items {
			if err := e.apply(ctx, op, item); err != nil {
				return err
			}
		}
		return nil
	case resource.Resource:
		return e.applyResource(ctx, op, v)
	default:
		err := resource.NewValidationError(resource.Reference{},
			fmt.Sprintf("unknown entity type %T from %s", entity, op.opts.Source), nil)
		op.result.record(resource.Reference{}, ActionFailed, err.Message, err)
		e.logger.Error("cannot apply entity", "type", fmt.Sprintf("%T", entity), "source", op.opts.Source)
		return err
	}
}

func (e *Engine) applyResource(ctx context.Context, op *operation, r resource.Resource) error {
	h, ok := e.handlers[r.GetKind()]
	if !ok {
		ref := resource.RefOf(r)
		err := resource.NewValidationError(ref, fmt.Sprintf("unknown kind %q", r.GetKind()), nil)
		return e.validationFailure(op, ref, err)
	}
	return h(ctx, op, r)
}

// namespaceFor resolves the namespace a resource is reconciled in: the
// request namespace wins over the resource's own, which wins over the policy
// default. Cluster-scoped kinds have no namespace.
func (e *Engine) namespaceFor(op *operation, r resource.Resource) string {
	if r.GetKind().ClusterScoped() {
		return ""
	}
	if op.opts.Namespace != "" {
		return op.opts.Namespace
	}
	if ns := r.GetNamespace(); ns != "" {
		return ns
	}
	return e.policy.DefaultNamespace
}

// gate applies the policy's mode flags. It returns a skip reason when the
// kind must not be touched in the current mode.
func (e *Engine) gate(kind resource.Kind) (string, bool) {
	switch {
	case e.policy.ServicesOnly && kind != resource.KindService:
		return "services-only mode", true
	case e.policy.IgnoreServices && kind == resource.KindService:
		return "service processing disabled", true
	case kind == resource.KindOAuthClient && !e.policy.SupportOAuthClients:
		return "OAuth client support disabled", true
	}
	return "", false
}

// validationFailure records a validation error. Validation errors abort the
// batch regardless of StopOnError: they mean the input itself is broken.
func (e *Engine) validationFailure(op *operation, ref resource.Reference, err *resource.ReconcileError) error {
	e.logger.Error("validation failed",
		"kind", ref.Kind, "name", ref.Name, "namespace", ref.Namespace,
		"source", op.opts.Source, "error", err.Message)
	op.result.record(ref, ActionFailed, err.Message, err)
	return err
}

// clusterFailure records a failed cluster call and aborts the batch only
// when the policy says so.
func (e *Engine) clusterFailure(op *operation, ref resource.Reference, message string, cause error) error {
	err := resource.NewClusterError(ref, fmt.Sprintf("%s: %v", message, cause), cause)
	e.logger.Error(message,
		"kind", ref.Kind, "name", ref.Name, "namespace", ref.Namespace,
		"source", op.opts.Source, "error", cause)
	op.result.record(ref, ActionFailed, message, err)
	if e.policy.StopOnError {
		return err
	}
	return nil
}

func (e *Engine) skip(op *operation, ref resource.Reference, reason string) {
	e.logger.Debug("skipping resource",
		"kind", ref.Kind, "name", ref.Name, "namespace", ref.Namespace,
		"source", op.opts.Source, "reason", reason)
	op.result.record(ref, ActionSkipped, reason, nil)
}

func (e *Engine) logArtifact(message, namespace string, r resource.Resource) {
	if e.artifacts == nil {
		return
	}
	e.artifacts.Record(message, namespace, r)
}
