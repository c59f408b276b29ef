// Package reconcile converges live cluster state to a desired set of
// resource manifests.
//
// The engine is synchronous and single-threaded per invocation: entities are
// processed strictly in input order, one resource's full reconcile cycle
// completing before the next begins. Policy is an immutable value captured at
// construction, so one engine is safe to share across concurrent batches.
//
// Recreate is two sequential calls with no transaction between them; a crash
// between the delete and the create leaves the resource absent. That gap is
// accepted rather than hidden.
package reconcile
