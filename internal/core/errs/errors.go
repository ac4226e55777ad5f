package errs

import "errors"

// Sentinel errors for the domain layer.
// The store wraps low-level failures (like SQLite errors) with these so the
// API layer can distinguish them without knowing the storage implementation.

var (
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("resource not found")

	// ErrConstraint is returned when a write violates a referential or
	// uniqueness constraint enforced by the store.
	ErrConstraint = errors.New("constraint violated")

	// ErrInvalidInput is returned when the input provided is invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSystem is returned when an unexpected system error occurs.
	ErrSystem = errors.New("system error")
)
