package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
	"github.com/custodia-labs/toolbridge/internal/core/ports/driven"
	"github.com/custodia-labs/toolbridge/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyApolloAPIKey      = "apollo.api_key"
	keyApolloBaseURL     = "apollo.base_url"
	keyApolloRate        = "apollo.rate_per_second"
	keyGoogleSecrets     = "google.client_secrets"
	keyGoogleTokenFile   = "google.token_file"
	keyGoogleRate        = "google.rate_per_second"
	keyGoogleScopes      = "google.scopes"
	keyCredentialBackend = "credentials.backend"
	keyLogFile           = "log.file"
	keyLogVerbose        = "log.verbose"
	keyTransportTimeout  = "transport.timeout_seconds"
)

// Environment variables that override the config file.
const (
	EnvApolloAPIKey = "APOLLO_API_KEY"
	EnvHome         = "TOOLBRIDGE_HOME"
)

// SettingsService resolves settings from the config store, environment
// overrides, and defaults, in that order of precedence: env, file, default.
type SettingsService struct {
	configStore driven.ConfigStore
	homeDir     string
	getenv      func(string) string
}

// NewSettingsService creates a new settings service. homeDir roots the
// default file locations.
func NewSettingsService(configStore driven.ConfigStore, homeDir string) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		homeDir:     homeDir,
		getenv:      os.Getenv,
	}
}

// WithEnv replaces the environment lookup. Used by tests.
func (s *SettingsService) WithEnv(getenv func(string) string) *SettingsService {
	s.getenv = getenv
	return s
}

// Get retrieves the resolved settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	settings := domain.DefaultSettings(s.homeDir)

	settings.Apollo.APIKey = s.configStore.GetString(keyApolloAPIKey)
	if key := strings.TrimSpace(s.getenv(EnvApolloAPIKey)); key != "" {
		settings.Apollo.APIKey = key
	}
	settings.Apollo.BaseURL = s.getString(keyApolloBaseURL, settings.Apollo.BaseURL)
	settings.Apollo.RatePerSecond = s.getFloat(keyApolloRate, settings.Apollo.RatePerSecond)

	settings.Google.ClientSecretsPath = s.getString(keyGoogleSecrets, settings.Google.ClientSecretsPath)
	settings.Google.TokenPath = s.getString(keyGoogleTokenFile, settings.Google.TokenPath)
	settings.Google.RatePerSecond = s.getFloat(keyGoogleRate, settings.Google.RatePerSecond)
	if scopes := s.configStore.GetStringSlice(keyGoogleScopes); len(scopes) > 0 {
		settings.Google.Scopes = scopes
	}

	if val := s.configStore.GetString(keyCredentialBackend); val != "" {
		backend := domain.CredentialBackend(val)
		if !backend.IsValid() {
			return nil, fmt.Errorf("%w: credentials.backend %q", domain.ErrInvalidInput, val)
		}
		settings.Credentials.Backend = backend
	}

	settings.Log.File = s.getString(keyLogFile, settings.Log.File)
	settings.Log.Verbose = s.configStore.GetBool(keyLogVerbose)

	if secs := s.configStore.GetInt(keyTransportTimeout); secs > 0 {
		settings.Transport.Timeout = time.Duration(secs) * time.Second
	}

	return &settings, nil
}

// SetApolloKey stores the people provider API key.
func (s *SettingsService) SetApolloKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: API key is empty", domain.ErrInvalidInput)
	}
	if err := s.configStore.Set(keyApolloAPIKey, key); err != nil {
		return fmt.Errorf("save apollo api_key: %w", err)
	}
	return nil
}

// SetCredentialBackend selects where OAuth credentials are persisted.
func (s *SettingsService) SetCredentialBackend(backend domain.CredentialBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: unknown credential backend %q", domain.ErrInvalidInput, backend)
	}
	if err := s.configStore.Set(keyCredentialBackend, string(backend)); err != nil {
		return fmt.Errorf("save credentials backend: %w", err)
	}
	return nil
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// ResolveHome returns the toolbridge home directory: $TOOLBRIDGE_HOME when
// set, otherwise ~/.toolbridge.
func ResolveHome(getenv func(string) string) (string, error) {
	if dir := getenv(EnvHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".toolbridge"), nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}
