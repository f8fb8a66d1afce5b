package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change configuration",
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetApolloKeyCmd = &cobra.Command{
	Use:   "set-apollo-key [key]",
	Short: "Store the people search API key",
	Long: `Store the people search API key in the config file.

Without an argument the key is read from the terminal without echo. The
APOLLO_API_KEY environment variable overrides the stored key.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigSetApolloKey,
}

var configSetBackendCmd = &cobra.Command{
	Use:   "set-backend <file|sqlite>",
	Short: "Choose where OAuth credentials are stored",
	Long: `Choose where OAuth credentials are stored.

  file    - JSON token file (google.token_file), shared with other tools
  sqlite  - credentials table in the local database`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigSetBackend,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetApolloKeyCmd)
	configCmd.AddCommand(configSetBackendCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings: %w", errNotConfigured)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	apiKey := "(not set)"
	if settings.Apollo.IsConfigured() {
		apiKey = maskAPIKey(settings.Apollo.APIKey)
	}

	lines := []string{
		field("Config file", settingsService.Path()),
		"",
		headingStyle.Render("[apollo]"),
		field("API key", apiKey),
		field("Base URL", settings.Apollo.BaseURL),
		field("Rate", formatRate(settings.Apollo.RatePerSecond)),
		"",
		headingStyle.Render("[google]"),
		field("Client secrets", settings.Google.ClientSecretsPath),
		field("Token file", settings.Google.TokenPath),
		field("Scopes", strings.Join(settings.Google.Scopes, ", ")),
		field("Rate", formatRate(settings.Google.RatePerSecond)),
		"",
		headingStyle.Render("[credentials]"),
		field("Backend", string(settings.Credentials.Backend)),
		field("Data dir", settings.Credentials.DataDir),
		"",
		headingStyle.Render("[log]"),
		field("File", settings.Log.File),
		field("Verbose", strconv.FormatBool(settings.Log.Verbose)),
		"",
		headingStyle.Render("[transport]"),
		field("Timeout", settings.Transport.Timeout.String()),
	}
	cmd.Println(strings.Join(lines, "\n"))
	return nil
}

func runConfigSetApolloKey(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings: %w", errNotConfigured)
	}

	var key string
	if len(args) == 1 {
		key = args[0]
	} else {
		var err error
		key, err = readSecret(cmd, "API key: ")
		if err != nil {
			return fmt.Errorf("reading API key: %w", err)
		}
	}

	if err := settingsService.SetApolloKey(key); err != nil {
		return err
	}
	cmd.Printf("API key saved to %s\n", settingsService.Path())
	return nil
}

func runConfigSetBackend(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings: %w", errNotConfigured)
	}

	backend := domain.CredentialBackend(strings.ToLower(args[0]))
	if err := settingsService.SetCredentialBackend(backend); err != nil {
		return err
	}
	cmd.Printf("Credential backend set to %s\n", backend)
	return nil
}

// readSecret reads one line without echo when stdin is a terminal, and a
// plain line otherwise.
func readSecret(cmd *cobra.Command, prompt string) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), prompt)
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(secret)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func formatRate(perSecond float64) string {
	if perSecond <= 0 {
		return "unlimited"
	}
	return strconv.FormatFloat(perSecond, 'f', -1, 64) + "/s"
}
