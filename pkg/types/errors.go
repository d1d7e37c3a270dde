// Package types defines error types
package types

import (
	"errors"
	"fmt"
)

// Predefined errors
var (
	// ErrInvalidConfiguration indicates an invalid pool configuration
	ErrInvalidConfiguration = errors.New("invalid pool configuration")

	// ErrPoolShuttingDown indicates the pool no longer accepts tasks
	ErrPoolShuttingDown = errors.New("pool is shutting down")

	// ErrNilTask indicates a nil task was submitted
	ErrNilTask = errors.New("task cannot be nil")

	// ErrTaskPanicked indicates a task panicked during execution
	ErrTaskPanicked = errors.New("task panicked")
)

// PoolError represents an error in pool processing
type PoolError struct {
	// Operation is the name of the operation where the error occurred
	Operation string

	// Cause is the underlying error
	Cause error

	// Context contains error context information
	Context map[string]interface{}
}

// Error implements the error interface
func (e *PoolError) Error() string {
	return fmt.Sprintf("pool error in operation %s: %v", e.Operation, e.Cause)
}

// Unwrap returns the underlying error
func (e *PoolError) Unwrap() error {
	return e.Cause
}

// Is checks if the error is a specific error
func (e *PoolError) Is(target error) bool {
	return errors.Is(e.Cause, target)
}

// NewPoolError creates a new pool error
func NewPoolError(operation string, cause error) *PoolError {
	return &PoolError{
		Operation: operation,
		Cause:     cause,
		Context:   make(map[string]interface{}),
	}
}

// WithContext adds error context
func (e *PoolError) WithContext(key string, value interface{}) *PoolError {
	e.Context[key] = value
	return e
}
