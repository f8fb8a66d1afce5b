// Package cli provides the command-line interface for toolbridge.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/toolbridge/internal/core/ports/driving"
)

// version is set by Execute from the build-time version string.
var version = "dev"

// Services holds the core services the commands drive.
type Services struct {
	Settings    driving.SettingsService
	Credentials driving.CredentialService
	People      driving.PeopleService
	Sheets      driving.SheetsService

	// WatchCredentials reports external changes to the credential store.
	// Nil when the configured backend cannot be watched.
	WatchCredentials func(ctx context.Context, onChange func()) error
}

var (
	settingsService   driving.SettingsService
	credentialService driving.CredentialService
	peopleService     driving.PeopleService
	sheetsService     driving.SheetsService
	watchCredentials  func(ctx context.Context, onChange func()) error
)

// errNotConfigured is returned when a command runs without its service.
var errNotConfigured = errors.New("service not configured")

var rootCmd = &cobra.Command{
	Use:   "toolbridge",
	Short: "MCP tools for people search and spreadsheets",
	Long: `toolbridge exposes people and company search and spreadsheet
operations as Model Context Protocol tools.

Run 'toolbridge serve' from an MCP client configuration, authorize the
spreadsheet account once with 'toolbridge auth login', and store the people
search API key with 'toolbridge config set-apollo-key'.`,
	SilenceUsage: true,
}

// SetServices injects the services used by the commands.
func SetServices(s *Services) {
	settingsService = s.Settings
	credentialService = s.Credentials
	peopleService = s.People
	sheetsService = s.Sheets
	watchCredentials = s.WatchCredentials
}

// Execute runs the root command.
func Execute(ctx context.Context, v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.ExecuteContext(ctx)
}
