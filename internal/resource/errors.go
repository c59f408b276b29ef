package resource

import (
	"errors"
	"fmt"
)

// ErrorType categorizes a reconcile error.
type ErrorType string

const (
	// ErrorTypeValidation marks malformed input: a missing name, an unknown
	// kind, a secret dependency that does not exist. Always fatal for the
	// offending resource regardless of policy.
	ErrorTypeValidation ErrorType = "validation"

	// ErrorTypeCluster marks a failed cluster API call. Whether it aborts
	// the batch is policy-controlled.
	ErrorTypeCluster ErrorType = "cluster"

	// ErrorTypeTemplate marks a failed template expansion. It aborts the
	// expansion of that template only.
	ErrorTypeTemplate ErrorType = "template"
)

// ReconcileError is the structured error produced by the apply engine.
type ReconcileError struct {
	Type    ErrorType `json:"type"`
	Ref     Reference `json:"resource"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

// Error implements the error interface.
func (e *ReconcileError) Error() string {
	if e.Ref.Name == "" && e.Ref.Kind == "" {
		return fmt.Sprintf("[%s] %s", e.Type, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Ref, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ReconcileError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error for the given resource.
func NewValidationError(ref Reference, message string, cause error) *ReconcileError {
	return &ReconcileError{Type: ErrorTypeValidation, Ref: ref, Message: message, Cause: cause}
}

// NewClusterError creates a cluster operation error for the given resource.
func NewClusterError(ref Reference, message string, cause error) *ReconcileError {
	return &ReconcileError{Type: ErrorTypeCluster, Ref: ref, Message: message, Cause: cause}
}

// NewTemplateError creates a template expansion error.
func NewTemplateError(ref Reference, message string, cause error) *ReconcileError {
	return &ReconcileError{Type: ErrorTypeTemplate, Ref: ref, Message: message, Cause: cause}
}

// AsReconcileError extracts a ReconcileError from err's chain.
func AsReconcileError(err error) (*ReconcileError, bool) {
	var re *ReconcileError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	re, ok := AsReconcileError(err)
	return ok && re.Type == ErrorTypeValidation
}

// IsClusterError reports whether err is a cluster operation error.
func IsClusterError(err error) bool {
	re, ok := AsReconcileError(err)
	return ok && re.Type == ErrorTypeCluster
}
