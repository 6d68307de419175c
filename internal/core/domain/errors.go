package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyDraft indicates a draft with no fields was submitted.
	// Submitting an empty draft never reaches the store.
	ErrEmptyDraft = errors.New("draft has no fields")

	// ErrUnknownCollection indicates a collection outside the configured set.
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrUnsupportedBackend indicates an unknown store backend in settings.
	ErrUnsupportedBackend = errors.New("unsupported store backend")

	// ErrStoreUnavailable indicates the document store is not configured or unreachable.
	ErrStoreUnavailable = errors.New("document store unavailable")

	// ErrPermissionDenied indicates the store rejected the credentials.
	ErrPermissionDenied = errors.New("permission denied")
)
