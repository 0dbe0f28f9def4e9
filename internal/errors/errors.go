// Package errors provides centralized error handling for tempo.
//
// This package defines sentinel errors used for programmatic error
// categorization throughout the application. All error types can be
// checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
var (
	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrCloudNotConfigured indicates that no cloud sync endpoint has been
	// configured. Sync operations report this inside a Result rather than
	// failing the caller.
	ErrCloudNotConfigured = errors.New("cloud sync not configured")

	// ErrNotifierNotConfigured indicates that a webhook notifier is missing
	// its URL, token, or chat id.
	ErrNotifierNotConfigured = errors.New("notifier not configured")

	// ErrInvalidInput indicates that a caller-supplied value failed
	// validation, such as an unknown flag value.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrInvalidConfig indicates that a configuration value is outside its
	// accepted range and could not be clamped.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrCorruptState indicates that a persisted value could not be decoded.
	// The key-value store treats this as "missing" and falls back to the
	// caller's default; the sentinel exists for logging and tests.
	ErrCorruptState = errors.New("corrupted state value")

	// ErrStoreClosed indicates that an operation was attempted on a closed
	// key-value store.
	ErrStoreClosed = errors.New("store is closed")

	// ErrRemoteStatus indicates that a remote endpoint answered with a
	// non-success HTTP status.
	ErrRemoteStatus = errors.New("remote returned non-success status")
)

// Is reports whether any error in err's chain matches target.
// Re-exported so callers don't need to import both this package and
// the standard library errors package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
