// Command toolbridge serves people search and spreadsheet tools over MCP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/toolbridge/internal/adapters/driven/apollo"
	configfile "github.com/custodia-labs/toolbridge/internal/adapters/driven/config/file"
	"github.com/custodia-labs/toolbridge/internal/adapters/driven/google"
	"github.com/custodia-labs/toolbridge/internal/adapters/driven/oauth"
	"github.com/custodia-labs/toolbridge/internal/adapters/driven/ratelimit"
	"github.com/custodia-labs/toolbridge/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/toolbridge/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/toolbridge/internal/adapters/driven/table"
	"github.com/custodia-labs/toolbridge/internal/adapters/driving/cli"
	"github.com/custodia-labs/toolbridge/internal/core/domain"
	"github.com/custodia-labs/toolbridge/internal/core/ports/driven"
	"github.com/custodia-labs/toolbridge/internal/core/services"
	"github.com/custodia-labs/toolbridge/internal/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// credentialProvider keys the OAuth row in the SQLite backend.
const credentialProvider = "google"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	home, err := services.ResolveHome(os.Getenv)
	if err != nil {
		return err
	}

	configStore, err := configfile.NewConfigStore(home)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore, home)

	settings, err := settingsService.Get()
	if err != nil {
		return err
	}
	logger.SetVerbose(settings.Log.Verbose)

	credStore, watch, closeStore, err := openCredentialStore(settings)
	if err != nil {
		return err
	}
	defer closeStore()

	flow := oauth.NewFlow(settings.Google.ClientSecretsPath, settings.Google.Scopes)
	credentials := services.NewCredentialManager(credStore, flow, flow)

	googleClient := google.NewHTTPClient(
		google.NewTokenSource(ctx, credentials),
		ratelimit.New(ratelimit.Config{RequestsPerSecond: settings.Google.RatePerSecond}),
		settings.Transport.Timeout,
	)
	sheetsAPI, err := google.NewSheets(ctx, googleClient)
	if err != nil {
		return fmt.Errorf("create sheets client: %w", err)
	}
	driveAPI, err := google.NewDrive(ctx, googleClient)
	if err != nil {
		return fmt.Errorf("create drive client: %w", err)
	}
	sheetsAPI.OnUnauthorized(credentials.ExpireAccessToken)
	driveAPI.OnUnauthorized(credentials.ExpireAccessToken)

	apolloClient := apollo.NewClient(
		settings.Apollo,
		ratelimit.New(ratelimit.Config{RequestsPerSecond: settings.Apollo.RatePerSecond}),
		settings.Transport.Timeout,
	)

	cli.SetServices(&cli.Services{
		Settings:         settingsService,
		Credentials:      credentials,
		People:           services.NewPeopleService(apolloClient),
		Sheets:           services.NewSheetsService(sheetsAPI, driveAPI, table.NewCSVReader()),
		WatchCredentials: watch,
	})

	return cli.Execute(ctx, version)
}

// openCredentialStore opens the configured credential backend. The watch
// func is nil for backends without change notification.
func openCredentialStore(
	settings *domain.Settings,
) (driven.CredentialStore, func(context.Context, func()) error, func(), error) {
	switch settings.Credentials.Backend {
	case domain.CredentialBackendSQLite:
		store, err := sqlite.NewStore(settings.Credentials.DataDir)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open credential database: %w", err)
		}
		closeStore := func() {
			if err := store.Close(); err != nil {
				logger.Warn("close credential database: %v", err)
			}
		}
		return store.CredentialStore(credentialProvider), nil, closeStore, nil
	default:
		store := file.NewCredentialStore(settings.Google.TokenPath)
		return store, store.Watch, func() {}, nil
	}
}
