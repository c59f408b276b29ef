package reconcile

import (
	"context"
	"fmt"

	"konverge/internal/cluster"
	"konverge/internal/resource"
)

// validatePodSpec verifies that the dependencies of a pod-bearing spec are
// available before the resource is created: every secret-type volume must
// reference a Secret that exists in the target namespace. The check runs
// once, before the mutating call; it is never retried.
func (e *Engine) validatePodSpec(ctx context.Context, namespace string, spec *resource.PodSpec) *resource.ReconcileError {
	for _, volume := range spec.Volumes {
		if volume.Secret == nil || volume.Secret.SecretName == "" {
			continue
		}
		name := volume.Secret.SecretName
		ref := resource.Reference{Kind: resource.KindSecret, Namespace: namespace, Name: name}

		_, err := e.client.Get(ctx, resource.KindSecret, namespace, name)
		switch {
		case err == nil:
			continue
		case cluster.IsNotFound(err):
			return resource.NewValidationError(ref,
				fmt.Sprintf("secret %q referenced by volume %q does not exist in namespace %q",
					name, volume.Name, namespace), err)
		default:
			return resource.NewClusterError(ref,
				fmt.Sprintf("failed to check secret %q: %v", name, err), err)
		}
	}
	return nil
}
