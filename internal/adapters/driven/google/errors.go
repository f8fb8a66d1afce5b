package google

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
)

// ProviderName is the provider label used in error messages.
const ProviderName = "Google"

// IsUnauthorized returns true if the error indicates invalid credentials.
func IsUnauthorized(err error) bool {
	return statusCode(err) == http.StatusUnauthorized
}

func statusCode(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	var perr *domain.ProviderError
	if errors.As(err, &perr) {
		return perr.StatusCode
	}
	return 0
}

// rejectionHook reports access tokens the API refused.
type rejectionHook struct {
	onUnauthorized func()
}

// wrap converts err with WrapError after notifying the hook of a 401.
func (h *rejectionHook) wrap(err error) error {
	if h.onUnauthorized != nil && IsUnauthorized(err) {
		h.onUnauthorized()
	}
	return WrapError(err)
}

// WrapError converts a Google API failure into a *domain.ProviderError.
//
// Credential errors raised by the token source are returned unchanged so
// callers can still tell "not authorized" apart from a provider rejection.
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	if domain.IsProviderError(err) ||
		errors.Is(err, domain.ErrAuthRequired) ||
		errors.Is(err, domain.ErrAuthCancelled) ||
		errors.Is(err, domain.ErrConfigMissing) {
		return err
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return &domain.ProviderError{Provider: ProviderName, Reason: err.Error(), Err: err}
	}

	reason := gerr.Message
	if reason == "" {
		reason = http.StatusText(gerr.Code)
	}
	if reason == "" {
		reason = fmt.Sprintf("status %d", gerr.Code)
	}

	wrapped := error(gerr)
	if gerr.Code == http.StatusTooManyRequests {
		wrapped = fmt.Errorf("%w: %w", domain.ErrRateLimited, gerr)
	}

	return &domain.ProviderError{
		Provider:   ProviderName,
		StatusCode: gerr.Code,
		Reason:     reason,
		Err:        wrapped,
	}
}
