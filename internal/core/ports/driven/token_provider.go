package driven

import (
	"context"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
)

// Authorizer runs the interactive OAuth flow.
// It blocks until the user grants access, the flow fails, or ctx ends.
type Authorizer interface {
	Authorize(ctx context.Context) (*domain.CredentialRecord, error)
}

// TokenRefresher exchanges a refresh token for a new access token.
// The returned record may omit the refresh token; callers merge it with
// CredentialRecord.Apply.
type TokenRefresher interface {
	Refresh(ctx context.Context, rec domain.CredentialRecord) (*domain.CredentialRecord, error)
}

// TokenProvider provides access tokens for authenticated API calls.
// Implementations handle refresh and re-authorization transparently.
type TokenProvider interface {
	// Token returns a usable credential record.
	Token(ctx context.Context) (*domain.CredentialRecord, error)
}
