package reconcile

import (
	"context"
	"fmt"

	"konverge/internal/cluster"
	"konverge/internal/resource"
	"konverge/internal/template"
)

// kindOptions captures the per-kind deviations from the uniform reconcile
// algorithm.
type kindOptions struct {
	// createOnly limits the kind to creation: an existing resource is left
	// untouched, never diffed or replaced. Namespaces work this way.
	createOnly bool

	// forceRecreate turns every in-place update into delete-then-create.
	// Template objects cannot be replaced upstream.
	forceRecreate bool

	// podSpec extracts the embedded pod spec of a pod-bearing kind for
	// dependency validation before creation. Nil for other kinds.
	podSpec func(resource.Resource) *resource.PodSpec

	// afterReplace runs after a successful in-place update, e.g. the scale
	// group pod cascade.
	afterReplace func(ctx context.Context, op *operation, namespace string, r resource.Resource) error
}

// reconcile runs the uniform algorithm: gate on mode flags, validate the
// name, look up the live object, then create, recreate, replace or do
// nothing.
func (e *Engine) reconcile(ctx context.Context, op *operation, r resource.Resource, kopts kindOptions) error {
	kind := r.GetKind()
	namespace := e.namespaceFor(op, r)
	ref := resource.Reference{Kind: kind, Namespace: namespace, Name: r.GetName()}

	if reason, skipped := e.gate(kind); skipped {
		e.skip(op, ref, reason)
		return nil
	}

	if r.GetName() == "" {
		err := resource.NewValidationError(ref,
			fmt.Sprintf("no name for %s from %s", kind, op.opts.Source), nil)
		return e.validationFailure(op, ref, err)
	}

	live, err := e.client.Get(ctx, kind, namespace, r.GetName())
	if err != nil && !cluster.IsNotFound(err) {
		return e.clusterFailure(op, ref, "failed to look up resource", err)
	}

	if live == nil {
		if !e.policy.AllowCreate {
			e.logger.Warn("creation disabled, not creating resource",
				"kind", kind, "name", ref.Name, "namespace", namespace, "source", op.opts.Source)
			op.result.record(ref, ActionSkipped, "creation disabled", nil)
			return nil
		}
		return e.create(ctx, op, ref, r, kopts, ActionCreated)
	}

	if kind == resource.KindOAuthClient && e.policy.IgnoreRunningOAuthClients {
		e.logger.Info("not touching running OAuth client shared across namespaces", "name", ref.Name)
		op.result.record(ref, ActionSkipped, "already running", nil)
		return nil
	}

	if kopts.createOnly {
		e.logger.Debug("resource already exists, leaving it untouched",
			"kind", kind, "name", ref.Name, "namespace", namespace)
		op.result.record(ref, ActionUnchanged, "", nil)
		return nil
	}

	if resource.Equal(r, live) {
		e.logger.Info("resource unchanged",
			"kind", kind, "name", ref.Name, "namespace", namespace, "source", op.opts.Source)
		op.result.record(ref, ActionUnchanged, "", nil)
		return nil
	}

	if e.policy.Recreate || kopts.forceRecreate {
		e.logger.Info("recreating resource",
			"kind", kind, "name", ref.Name, "namespace", namespace, "source", op.opts.Source)
		if err := e.client.Delete(ctx, kind, namespace, ref.Name); err != nil {
			return e.clusterFailure(op, ref, "failed to delete resource for recreation", err)
		}
		return e.create(ctx, op, ref, r, kopts, ActionRecreated)
	}

	return e.replace(ctx, op, ref, r, live, kopts)
}

// create issues the create call, preceded by dependency validation for
// pod-bearing kinds. The created object, including server-assigned metadata,
// goes to the artifact log.
func (e *Engine) create(ctx context.Context, op *operation, ref resource.Reference, r resource.Resource, kopts kindOptions, action Action) error {
	if kopts.podSpec != nil {
		if spec := kopts.podSpec(r); spec != nil {
			if err := e.validatePodSpec(ctx, ref.Namespace, spec); err != nil {
				if err.Type == resource.ErrorTypeValidation {
					return e.validationFailure(op, ref, err)
				}
				return e.clusterFailure(op, ref, "dependency check failed", err.Cause)
			}
		}
	}

	if !ref.Kind.ClusterScoped() {
		r.SetNamespace(ref.Namespace)
	}
	e.logger.Info("creating resource",
		"kind", ref.Kind, "name", ref.Name, "namespace", ref.Namespace, "source", op.opts.Source)
	created, err := e.client.Create(ctx, ref.Namespace, r)
	if err != nil {
		return e.clusterFailure(op, ref, "failed to create resource", err)
	}
	e.logArtifact(fmt.Sprintf("created %s", ref.Kind), ref.Namespace, created)
	op.result.record(ref, action, "", nil)
	return nil
}

// replace updates the live resource in place, carrying over its resource
// version so the server accepts the write.
func (e *Engine) replace(ctx context.Context, op *operation, ref resource.Reference, r, live resource.Resource, kopts kindOptions) error {
	if !ref.Kind.ClusterScoped() {
		r.SetNamespace(ref.Namespace)
	}
	r.SetResourceVersion(live.GetResourceVersion())

	e.logger.Info("updating resource",
		"kind", ref.Kind, "name", ref.Name, "namespace", ref.Namespace, "source", op.opts.Source)
	updated, err := e.client.Replace(ctx, ref.Namespace, ref.Name, r)
	if err != nil {
		return e.clusterFailure(op, ref, "failed to update resource", err)
	}
	e.logArtifact(fmt.Sprintf("updated %s", ref.Kind), ref.Namespace, updated)

	if kopts.afterReplace != nil {
		if err := kopts.afterReplace(ctx, op, ref.Namespace, r); err != nil {
			return err
		}
	}
	op.result.record(ref, ActionUpdated, "", nil)
	return nil
}

func (e *Engine) applyPod(ctx context.Context, op *operation, r resource.Resource) error {
	return e.reconcile(ctx, op, r, kindOptions{
		podSpec: func(r resource.Resource) *resource.PodSpec {
			return &r.(*resource.Pod).Spec
		},
	})
}

func (e *Engine) applyScaleGroup(ctx context.Context, op *operation, r resource.Resource) error {
	return e.reconcile(ctx, op, r, kindOptions{
		podSpec: func(r resource.Resource) *resource.PodSpec {
			return r.(*resource.ScaleGroup).PodTemplate()
		},
		afterReplace: e.cascadeScaleGroupPods,
	})
}

// cascadeScaleGroupPods removes the pods spawned from the old template after
// an in-place update, so the new configuration actually takes effect.
func (e *Engine) cascadeScaleGroupPods(ctx context.Context, op *operation, namespace string, r resource.Resource) error {
	ref := resource.Reference{Kind: resource.KindScaleGroup, Namespace: namespace, Name: r.GetName()}
	if !e.policy.DeletePodsOnScaleGroupUpdate {
		e.logger.Warn("not deleting pods, they may still run the old configuration",
			"scaleGroup", r.GetName(), "namespace", namespace)
		return nil
	}
	e.logger.Info("deleting managed pods so they respawn with the new template",
		"scaleGroup", r.GetName(), "namespace", namespace)
	if err := e.client.DeleteManagedPods(ctx, namespace, r.GetName()); err != nil {
		return e.clusterFailure(op, ref, "failed to delete managed pods", err)
	}
	return nil
}

func (e *Engine) applyService(ctx context.Context, op *operation, r resource.Resource) error {
	return e.reconcile(ctx, op, r, kindOptions{})
}

func (e *Engine) applyNamespace(ctx context.Context, op *operation, r resource.Resource) error {
	return e.reconcile(ctx, op, r, kindOptions{createOnly: true})
}

func (e *Engine) applyRoute(ctx context.Context, op *operation, r resource.Resource) error {
	return e.reconcile(ctx, op, r, kindOptions{})
}

func (e *Engine) applyBuildConfig(ctx context.Context, op *operation, r resource.Resource) error {
	return e.reconcile(ctx, op, r, kindOptions{})
}

func (e *Engine) applyDeploymentConfig(ctx context.Context, op *operation, r resource.Resource) error {
	return e.reconcile(ctx, op, r, kindOptions{})
}

func (e *Engine) applyImageStream(ctx context.Context, op *operation, r resource.Resource) error {
	return e.reconcile(ctx, op, r, kindOptions{})
}

func (e *Engine) applyOAuthClient(ctx context.Context, op *operation, r resource.Resource) error {
	return e.reconcile(ctx, op, r, kindOptions{})
}

func (e *Engine) applyServiceAccount(ctx context.Context, op *operation, r resource.Resource) error {
	return e.reconcile(ctx, op, r, kindOptions{})
}

func (e *Engine) applySecret(ctx context.Context, op *operation, r resource.Resource) error {
	return e.reconcile(ctx, op, r, kindOptions{})
}

// applyTemplate reconciles the template object (unless templates are
// processed locally), expands it, and feeds the expansion back through the
// dispatcher. An expansion failure aborts this template only; siblings in
// the batch still apply.
func (e *Engine) applyTemplate(ctx context.Context, op *operation, r resource.Resource) error {
	t := r.(*resource.Template)
	namespace := e.namespaceFor(op, t)
	ref := resource.Reference{Kind: resource.KindTemplate, Namespace: namespace, Name: t.GetName()}

	if !e.policy.ProcessTemplatesLocally {
		if err := e.reconcile(ctx, op, t, kindOptions{forceRecreate: true}); err != nil {
			return err
		}
	}

	list, err := e.expandTemplate(ctx, namespace, t)
	if err != nil {
		e.logger.Error("template expansion failed",
			"name", t.GetName(), "namespace", namespace, "source", op.opts.Source, "error", err)
		op.result.record(ref, ActionFailed, "template expansion failed", err)
		return nil
	}
	e.logger.Debug("template expanded",
		"name", t.GetName(), "namespace", namespace, "objects", list.Len())
	return e.apply(ctx, op, list)
}

func (e *Engine) expandTemplate(ctx context.Context, namespace string, t *resource.Template) (*resource.List, error) {
	if !e.policy.ProcessTemplatesLocally {
		if tp, ok := e.client.(cluster.TemplateProcessor); ok {
			return tp.ProcessTemplate(ctx, namespace, t)
		}
		e.logger.Debug("cluster client cannot process templates, expanding locally",
			"name", t.GetName())
	}
	return template.Process(t, template.Options{FailOnMissing: e.policy.FailOnMissingParameter})
}
