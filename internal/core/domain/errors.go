package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidColumn indicates a column selector outside A-Z.
	ErrInvalidColumn = fmt.Errorf("%w: column must be a single letter A-Z", ErrInvalidInput)

	// ErrEmptyTable indicates an upload source contained no rows.
	ErrEmptyTable = fmt.Errorf("%w: table is empty", ErrInvalidInput)

	// Configuration Errors.

	// ErrConfigMissing indicates a required secret or setting is not configured.
	// No provider call is attempted when this is returned.
	ErrConfigMissing = errors.New("configuration missing")

	// Authentication Errors.

	// ErrAuthRequired indicates no usable credentials could be obtained.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthCancelled indicates the interactive authorization flow was aborted.
	ErrAuthCancelled = errors.New("authorization cancelled")

	// ErrCorruptCredentials indicates a stored credential record could not be
	// decoded. It is treated as absent so the next call re-authorizes.
	ErrCorruptCredentials = errors.New("corrupt credentials")

	// ErrTokenRefreshFailed indicates token refresh operation failed.
	ErrTokenRefreshFailed = errors.New("token refresh failed")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)

// ProviderError is a non-success response from an external provider.
// It is never retried; the tool boundary turns it into an error result.
type ProviderError struct {
	// Provider is the display name, e.g. "Apollo" or "Google".
	Provider string
	// StatusCode is the HTTP status, 0 when unknown.
	StatusCode int
	// Reason is the provider's human-readable explanation.
	Reason string
	// Err is the underlying transport error, if any.
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s API error: %s", e.Provider, e.Reason)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsProviderError reports whether err wraps a ProviderError.
func IsProviderError(err error) bool {
	var perr *ProviderError
	return errors.As(err, &perr)
}
