package reconcile

// Policy holds the knobs governing one apply batch. It is treated as
// immutable for the duration of a batch; construct a new engine to change it.
type Policy struct {
	// StopOnError aborts the batch at the first failed cluster operation.
	// When false, failures are logged and recorded in the result while the
	// remaining entities are still applied. Validation errors ignore this
	// flag: they always fail the offending resource.
	StopOnError bool

	// AllowCreate permits creating resources that are absent from the
	// cluster. When false an absent resource is skipped with a warning.
	AllowCreate bool

	// Recreate replaces changed resources by deleting and recreating them
	// instead of updating in place.
	Recreate bool

	// ServicesOnly processes only Service resources, so services can be
	// converged across several bundles before any workloads move.
	ServicesOnly bool

	// IgnoreServices skips Service resources entirely, useful when
	// recreating workloads without churning service addresses.
	IgnoreServices bool

	// SupportOAuthClients is the master switch for OAuthClient
	// reconciliation; without it the kind is skipped.
	SupportOAuthClients bool

	// IgnoreRunningOAuthClients leaves an existing OAuthClient untouched.
	// OAuth clients are shared across namespaces, so one bundle should not
	// reconfigure a client another bundle is relying on.
	IgnoreRunningOAuthClients bool

	// ProcessTemplatesLocally expands templates without any cluster call.
	// Otherwise the template object is reconciled into the cluster and
	// expansion is delegated to the cluster when the client supports it.
	ProcessTemplatesLocally bool

	// FailOnMissingParameter aborts template expansion when a referenced
	// parameter has no value.
	FailOnMissingParameter bool

	// DeletePodsOnScaleGroupUpdate deletes a scale group's managed pods
	// after an in-place update so they respawn with the new template.
	// When false the engine warns that existing pods may still run the old
	// configuration.
	DeletePodsOnScaleGroupUpdate bool

	// DefaultNamespace is used when neither the apply options nor the
	// resource itself name one.
	DefaultNamespace string
}

// DefaultPolicy returns the stock policy: stop on the first cluster failure,
// allow creation, update in place, leave running OAuth clients alone, and
// respawn pods after scale group updates.
func DefaultPolicy() Policy {
	return Policy{
		StopOnError:                  true,
		AllowCreate:                  true,
		IgnoreRunningOAuthClients:    true,
		DeletePodsOnScaleGroupUpdate: true,
		DefaultNamespace:             "default",
	}
}
