package chart

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownKind is returned when no builder is registered for a kind.
	ErrUnknownKind = errors.New("chart: unknown chart kind")
	// ErrNoContainer is returned by operations that need a mounted container.
	ErrNoContainer = errors.New("chart: container not mounted")
	// ErrDisposed is returned when a disposed lifecycle is used again.
	ErrDisposed = errors.New("chart: lifecycle disposed")
	// ErrInstanceNotFound is returned by engines for unknown instance handles.
	ErrInstanceNotFound = errors.New("chart: instance not found")
)

// ValidationError lists every issue found while validating chart input.
// Rendering is suppressed until the input is corrected.
type ValidationError struct {
	Kind   Kind
	Issues []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "chart: validation failed"
	}
	return fmt.Sprintf("chart: %s validation failed: %s", e.Kind, strings.Join(e.Issues, "; "))
}

// ApplyError wraps an engine rejection of a final option tree.
type ApplyError struct {
	InstanceID string
	Err        error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("chart: apply option to instance %s: %v", e.InstanceID, e.Err)
}

func (e *ApplyError) Unwrap() error { return e.Err }

// IsValidationError reports whether err carries a *ValidationError.
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
