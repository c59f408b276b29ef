// Package resource defines the typed model for the cluster resources konverge
// reconciles.
//
// This package defines:
//   - Kind, the closed set of resource kinds the engine understands
//   - Resource, the interface every concrete kind implements
//   - List, an ordered collection of resources or nested lists
//   - Parse and ParseYAML, the manifest loaders (YAML is normalized to JSON)
//   - ReconcileError, the structured error type shared across the engine
//
// The kind set is closed on purpose: reconciliation is dispatched through a
// per-kind handler table, so an unknown kind is a validation error rather
// than a silently ignored document.
package resource
