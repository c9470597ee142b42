package seiz

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrNotInitialized   = errors.New("simulator not initialized")
	ErrEmptyGraph       = errors.New("graph has no nodes")
	ErrRunCancelled     = errors.New("run cancelled")
)

// ModelError provides structured error information for simulator operations.
type ModelError struct {
	Op      string // Operation that failed (e.g., "New", "Run")
	Field   string // Parameter name (if applicable)
	Cause   error  // Underlying error
	Context string // Additional context
}

// Error implements the error interface.
func (e *ModelError) Error() string {
	if e.Field != "" {
		if e.Context != "" {
			return fmt.Sprintf("%s: field %s (%s): %v", e.Op, e.Field, e.Context, e.Cause)
		}
		return fmt.Sprintf("%s: field %s: %v", e.Op, e.Field, e.Cause)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s (%s): %v", e.Op, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ModelError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *ModelError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}
