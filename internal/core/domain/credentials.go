package domain

import "time"

// ExpiryDelta is how early a token is considered expired, so a request
// started just before expiry does not reach the provider with a dead token.
const ExpiryDelta = 10 * time.Second

// CredentialRecord stores the OAuth tokens used for the spreadsheet provider.
// It is created by the interactive authorization flow, persisted to a
// CredentialStore, and mutated in place by refresh.
type CredentialRecord struct {
	// AccessToken is the bearer token for API access.
	AccessToken string `json:"access_token"`
	// RefreshToken is used to obtain new access tokens.
	RefreshToken string `json:"refresh_token,omitempty"`
	// TokenType is typically "Bearer".
	TokenType string `json:"token_type,omitempty"`
	// Expiry is when the access token expires. Zero means it never does.
	Expiry time.Time `json:"expiry,omitempty"`
	// Scopes are the OAuth scopes the token was granted for.
	Scopes []string `json:"scopes,omitempty"`
}

// IsExpired returns true if the access token has expired at now.
func (c *CredentialRecord) IsExpired(now time.Time) bool {
	if c.Expiry.IsZero() {
		return false
	}
	return !now.Before(c.Expiry.Add(-ExpiryDelta))
}

// HasRefreshToken returns true if a refresh token is available.
func (c *CredentialRecord) HasRefreshToken() bool {
	return c != nil && c.RefreshToken != ""
}

// Apply copies refreshed token fields into c. An empty refresh token in
// fresh keeps the existing one, since providers usually omit it on refresh.
func (c *CredentialRecord) Apply(fresh CredentialRecord) {
	c.AccessToken = fresh.AccessToken
	c.Expiry = fresh.Expiry
	if fresh.TokenType != "" {
		c.TokenType = fresh.TokenType
	}
	if fresh.RefreshToken != "" {
		c.RefreshToken = fresh.RefreshToken
	}
}

// CredentialState is the lifecycle state of stored credentials.
type CredentialState string

// Credential lifecycle states.
const (
	// CredentialAbsent means there is no stored record.
	CredentialAbsent CredentialState = "absent"
	// CredentialValid means the stored record can be used as-is.
	CredentialValid CredentialState = "valid"
	// CredentialExpiredRefreshable means the record expired but can be refreshed.
	CredentialExpiredRefreshable CredentialState = "expired_refreshable"
	// CredentialExpiredTerminal means the record expired and cannot be refreshed.
	CredentialExpiredTerminal CredentialState = "expired_terminal"
)

// ClassifyCredentials derives the lifecycle state of rec at now.
// A record without an access token counts as absent.
func ClassifyCredentials(rec *CredentialRecord, now time.Time) CredentialState {
	switch {
	case rec == nil || rec.AccessToken == "":
		return CredentialAbsent
	case !rec.IsExpired(now):
		return CredentialValid
	case rec.HasRefreshToken():
		return CredentialExpiredRefreshable
	default:
		return CredentialExpiredTerminal
	}
}

// RequiresAuthorization returns true if the state can only be left through
// the interactive authorization flow.
func (s CredentialState) RequiresAuthorization() bool {
	return s == CredentialAbsent || s == CredentialExpiredTerminal
}

// Description returns a human-readable description of the state.
func (s CredentialState) Description() string {
	switch s {
	case CredentialAbsent:
		return "No stored credentials"
	case CredentialValid:
		return "Valid"
	case CredentialExpiredRefreshable:
		return "Expired (will refresh on next use)"
	case CredentialExpiredTerminal:
		return "Expired (re-authorization required)"
	default:
		return "Unknown"
	}
}
