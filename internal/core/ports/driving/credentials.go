package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
)

// CredentialStatus describes the stored credentials without changing them.
type CredentialStatus struct {
	State  domain.CredentialState
	Expiry time.Time
	Scopes []string
}

// CredentialService manages the OAuth credential lifecycle.
type CredentialService interface {
	// Token returns a usable record, refreshing or re-authorizing as needed.
	Token(ctx context.Context) (*domain.CredentialRecord, error)

	// Status reports the current credential state. It never refreshes.
	Status(ctx context.Context) (CredentialStatus, error)

	// Login runs the interactive flow unconditionally and persists the result.
	Login(ctx context.Context) (*domain.CredentialRecord, error)

	// Invalidate drops the cached record so the next call reloads from the store.
	Invalidate()
}
