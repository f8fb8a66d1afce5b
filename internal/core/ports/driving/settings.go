package driving

import "github.com/custodia-labs/toolbridge/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves the resolved settings, environment overrides included.
	Get() (*domain.Settings, error)

	// SetApolloKey stores the people provider API key.
	SetApolloKey(key string) error

	// SetCredentialBackend selects where OAuth credentials are persisted.
	SetCredentialBackend(backend domain.CredentialBackend) error

	// Path returns the configuration file path.
	Path() string
}
