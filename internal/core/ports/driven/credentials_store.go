package driven

import (
	"context"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
)

// CredentialStore persists the spreadsheet provider's OAuth credentials.
// There is a single record per installation.
type CredentialStore interface {
	// Load retrieves the stored record.
	// Returns nil, nil if nothing has been stored yet.
	Load(ctx context.Context) (*domain.CredentialRecord, error)

	// Save stores the record, replacing any previous one.
	Save(ctx context.Context, rec domain.CredentialRecord) error
}
