package domain

import "time"

// CredentialBackend selects where OAuth credentials are persisted.
type CredentialBackend string

// Available credential backends.
const (
	// CredentialBackendFile stores a JSON token file.
	CredentialBackendFile CredentialBackend = "file"
	// CredentialBackendSQLite stores credentials in the local SQLite database.
	CredentialBackendSQLite CredentialBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b CredentialBackend) IsValid() bool {
	return b == CredentialBackendFile || b == CredentialBackendSQLite
}

// Settings is the resolved application configuration.
type Settings struct {
	Apollo      ApolloSettings
	Google      GoogleSettings
	Credentials CredentialSettings
	Log         LogSettings
	Transport   TransportSettings
}

// ApolloSettings configures the people/company data provider.
type ApolloSettings struct {
	APIKey        string
	BaseURL       string
	RatePerSecond float64
}

// IsConfigured returns true if an API key is available.
func (s ApolloSettings) IsConfigured() bool {
	return s.APIKey != ""
}

// GoogleSettings configures the spreadsheet provider.
type GoogleSettings struct {
	// ClientSecretsPath is the OAuth client JSON downloaded from the console.
	ClientSecretsPath string
	// TokenPath is the token file used by the file credential backend.
	TokenPath     string
	RatePerSecond float64
	Scopes        []string
}

// CredentialSettings configures credential persistence.
type CredentialSettings struct {
	Backend CredentialBackend
	// DataDir holds the SQLite database for the sqlite backend.
	DataDir string
}

// LogSettings configures the log sink.
type LogSettings struct {
	File    string
	Verbose bool
}

// TransportSettings configures provider calls.
type TransportSettings struct {
	Timeout time.Duration
}

// Default values for settings not present in the config file.
const (
	DefaultApolloBaseURL       = "https://api.apollo.io/api/v1"
	DefaultApolloRatePerSecond = 5.0
	DefaultGoogleRatePerSecond = 8.0
	DefaultTransportTimeout    = 30 * time.Second
)

// DefaultGoogleScopes are the OAuth scopes requested for the spreadsheet tools.
var DefaultGoogleScopes = []string{
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/drive.readonly",
}

// DefaultSettings returns settings rooted at homeDir.
func DefaultSettings(homeDir string) Settings {
	return Settings{
		Apollo: ApolloSettings{
			BaseURL:       DefaultApolloBaseURL,
			RatePerSecond: DefaultApolloRatePerSecond,
		},
		Google: GoogleSettings{
			ClientSecretsPath: homeDir + "/client_secrets.json",
			TokenPath:         homeDir + "/token.json",
			RatePerSecond:     DefaultGoogleRatePerSecond,
			Scopes:            append([]string(nil), DefaultGoogleScopes...),
		},
		Credentials: CredentialSettings{
			Backend: CredentialBackendFile,
			DataDir: homeDir + "/data",
		},
		Log: LogSettings{
			File: homeDir + "/toolbridge.log",
		},
		Transport: TransportSettings{
			Timeout: DefaultTransportTimeout,
		},
	}
}
