package domain

import "errors"

// Sentinel errors for the asset library engine. Callers match them with
// errors.Is after unwrapping.
var (
	// ErrNotFound indicates an unknown asset id on update/remove/get.
	ErrNotFound = errors.New("asset not found")

	// ErrAlreadyExists indicates a duplicate id on add. The catalog treats
	// this as a redirect to update rather than a hard failure.
	ErrAlreadyExists = errors.New("asset already exists")

	// ErrInvalidArgument indicates a malformed id or an empty required field.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIntegrityViolation indicates an operation that would corrupt the
	// library, e.g. a group assignment that creates a cycle.
	ErrIntegrityViolation = errors.New("integrity violation")

	// ErrIOFailure indicates a disk read or write error.
	ErrIOFailure = errors.New("i/o failure")
)
