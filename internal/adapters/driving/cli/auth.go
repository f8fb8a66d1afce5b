package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/toolbridge/internal/core/ports/driving"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage spreadsheet account authorization",
	Long: `Authorize toolbridge to use a spreadsheet account and inspect the
stored credentials.

Authorization needs an OAuth client file (client_secrets.json) downloaded
from the provider console. Its location is set by google.client_secrets in
the config file.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize in the browser and store the credentials",
	Long: `Run the browser authorization flow unconditionally and store the
resulting credentials, replacing any that exist.

The authorization URL is also printed, for machines without a browser.`,
	Args: cobra.NoArgs,
	RunE: runAuthLogin,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the stored credentials",
	Args:  cobra.NoArgs,
	RunE:  runAuthStatus,
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	if credentialService == nil {
		return fmt.Errorf("credentials: %w", errNotConfigured)
	}

	if _, err := credentialService.Login(cmd.Context()); err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}
	cmd.Println(okStyle.Render("Authorization complete."))

	return printAuthStatus(cmd)
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	if credentialService == nil {
		return fmt.Errorf("credentials: %w", errNotConfigured)
	}
	return printAuthStatus(cmd)
}

func printAuthStatus(cmd *cobra.Command) error {
	status, err := credentialService.Status(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading credentials: %w", err)
	}
	cmd.Println(renderAuthStatus(status))
	return nil
}

func renderAuthStatus(status driving.CredentialStatus) string {
	lines := []string{
		headingStyle.Render("Spreadsheet credentials"),
		field("State", stateStyle(status.State).Render(status.State.Description())),
	}
	if !status.Expiry.IsZero() {
		lines = append(lines, field("Expires", status.Expiry.Local().Format(time.RFC1123)))
	}
	if len(status.Scopes) > 0 {
		lines = append(lines, field("Scopes", strings.Join(status.Scopes, ", ")))
	}
	if status.State.RequiresAuthorization() {
		lines = append(lines, "", "Run 'toolbridge auth login' to authorize.")
	}
	return strings.Join(lines, "\n")
}
