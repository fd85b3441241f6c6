package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// StateError indicates an operation that is invalid for the
	// resource's current lifecycle state (e.g. publish with no draft)
	StateError struct {
		Message string
	}

	// StoreError indicates an underlying storage call failed
	StoreError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string   { return e.Message }
func (e *ValidationError) Error() string { return e.Message }
func (e *StateError) Error() string      { return e.Message }
func (e *StoreError) Error() string      { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int   { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }
func (e *StateError) StatusCode() int      { return http.StatusConflict }
func (e *StoreError) StatusCode() int      { return http.StatusBadGateway }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
	ErrValidation = errors.New("validation failed")
	ErrState      = errors.New("invalid state")
	ErrStore      = errors.New("store failure")
)

// Is allows errors.Is() to match typed errors against their sentinels
func (e *NotFoundError) Is(target error) bool   { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
func (e *StateError) Is(target error) bool      { return target == ErrState }
func (e *StoreError) Is(target error) bool      { return target == ErrStore }

// ConflictError represents a uniqueness violation with details about the
// existing resource (e.g. a duplicate slug).
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (project, version, file)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
