package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/toolbridge/internal/adapters/driving/mcp"
	"github.com/custodia-labs/toolbridge/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server.

By default the server speaks JSON-RPC over stdio, so nothing but protocol
messages is written to stdout. Logs go to the configured log file.

Use --port to serve streamable HTTP instead, for example to test with the
MCP Inspector.

Examples:
  # Stdio mode (default, for desktop MCP clients)
  toolbridge serve

  # HTTP mode
  toolbridge serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "toolbridge": {
        "command": "/path/to/toolbridge",
        "args": ["serve"]
      }
    }
  }`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		People:      peopleService,
		Sheets:      sheetsService,
		Credentials: credentialService,
	})
	if err != nil {
		return err
	}

	closeLog, err := openServeLog()
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	watchCredentialStore(ctx)

	logger.Info("toolbridge %s starting", version)
	if port > 0 {
		addr := fmt.Sprintf("127.0.0.1:%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}

// openServeLog points the logger at the configured log file.
func openServeLog() (func(), error) {
	if settingsService == nil {
		return func() {}, nil
	}
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.Log.File == "" {
		return func() {}, nil
	}

	f, err := logger.OpenFile(settings.Log.File)
	if err != nil {
		return nil, err
	}
	return func() {
		logger.SetOutput(os.Stderr)
		f.Close()
	}, nil
}

// watchCredentialStore drops cached credentials whenever another process
// rewrites the store, so the next tool call reloads them.
func watchCredentialStore(ctx context.Context) {
	if watchCredentials == nil || credentialService == nil {
		return
	}
	if err := watchCredentials(ctx, credentialService.Invalidate); err != nil {
		logger.Warn("credential store will not be watched: %v", err)
	}
}
