package cli

import (
	"context"
	"sync"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
	"github.com/custodia-labs/toolbridge/internal/core/ports/driving"
	"github.com/custodia-labs/toolbridge/internal/core/shape"
)

type mockSettingsService struct {
	settings   domain.Settings
	err        error
	apolloKey  string
	backend    domain.CredentialBackend
	setErr     error
	configPath string
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) SetApolloKey(key string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.apolloKey = key
	return nil
}

func (m *mockSettingsService) SetCredentialBackend(backend domain.CredentialBackend) error {
	if !backend.IsValid() {
		return domain.ErrInvalidInput
	}
	m.backend = backend
	return nil
}

func (m *mockSettingsService) Path() string {
	return m.configPath
}

type mockCredentialService struct {
	mu          sync.Mutex
	status      driving.CredentialStatus
	loginErr    error
	logins      int
	invalidated int
}

func (m *mockCredentialService) Token(_ context.Context) (*domain.CredentialRecord, error) {
	return &domain.CredentialRecord{AccessToken: "token"}, nil
}

func (m *mockCredentialService) Status(_ context.Context) (driving.CredentialStatus, error) {
	return m.status, nil
}

func (m *mockCredentialService) Login(_ context.Context) (*domain.CredentialRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logins++
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	m.status = driving.CredentialStatus{State: domain.CredentialValid}
	return &domain.CredentialRecord{AccessToken: "token"}, nil
}

func (m *mockCredentialService) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidated++
}

func (m *mockCredentialService) invalidations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.invalidated
}

type mockPeopleService struct{}

func (mockPeopleService) SearchPeople(
	context.Context, *shape.ParameterSet, []string,
) (*driving.PeopleSearchResult, error) {
	return &driving.PeopleSearchResult{}, nil
}

func (mockPeopleService) EnrichPerson(context.Context, *shape.ParameterSet, []string) (*driving.PersonResult, error) {
	return &driving.PersonResult{}, nil
}

func (mockPeopleService) SearchCompanies(
	context.Context, *shape.ParameterSet, []string,
) (*driving.CompanySearchResult, error) {
	return &driving.CompanySearchResult{}, nil
}

// setupTestServices installs mocks and returns them with a restore func.
func setupTestServices() (*mockSettingsService, *mockCredentialService, func()) {
	oldSettings := settingsService
	oldCredentials := credentialService
	oldPeople := peopleService
	oldSheets := sheetsService
	oldWatch := watchCredentials

	settings := &mockSettingsService{
		settings:   domain.DefaultSettings("/home/test/.toolbridge"),
		configPath: "/home/test/.toolbridge/config.toml",
	}
	creds := &mockCredentialService{status: driving.CredentialStatus{State: domain.CredentialAbsent}}

	SetServices(&Services{
		Settings:    settings,
		Credentials: creds,
		People:      mockPeopleService{},
	})
	resetCommandContexts(rootCmd)

	return settings, creds, func() {
		settingsService = oldSettings
		credentialService = oldCredentials
		peopleService = oldPeople
		sheetsService = oldSheets
		watchCredentials = oldWatch
		resetCommandContexts(rootCmd)
	}
}

// resetCommandContexts clears contexts left by earlier Execute calls.
// Cobra only hands the caller's context to a subcommand whose context is nil.
func resetCommandContexts(cmd *cobra.Command) {
	for _, sub := range cmd.Commands() {
		sub.SetContext(nil) //nolint:staticcheck // nil re-enables context inheritance
		resetCommandContexts(sub)
	}
}
